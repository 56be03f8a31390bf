package user

import (
	"net/mail"
	"strings"

	"shareit/internal/pkg/errs"
)

var ErrInvalidEmail = errs.New("invalid email address")

type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Email{}, ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return Email{}, errs.Mark(errs.Wrap(err, "parse email"), ErrInvalidEmail)
	}
	return Email{value: trimmed}, nil
}

func ReconstructEmail(raw string) Email {
	return Email{value: raw}
}

func (e Email) String() string { return e.value }

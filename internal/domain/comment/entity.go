package comment

import (
	"strings"
	"time"

	"shareit/internal/pkg/errs"
)

const maxTextLength = 1024

var (
	ErrBlankText   = errs.New("comment text must not be blank")
	ErrTextTooLong = errs.New("comment text exceeds the maximum length")
)

type Comment struct {
	id       int64
	text     string
	itemID   int64
	authorID int64
	created  time.Time
}

// NewComment validates the text and stamps the comment with the server-side
// creation instant.
func NewComment(text string, itemID, authorID int64, created time.Time) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankText
	}
	if len([]rune(text)) > maxTextLength {
		return nil, ErrTextTooLong
	}
	return &Comment{
		text:     text,
		itemID:   itemID,
		authorID: authorID,
		created:  created,
	}, nil
}

func Reconstruct(id int64, text string, itemID, authorID int64, created time.Time) *Comment {
	return &Comment{
		id:       id,
		text:     text,
		itemID:   itemID,
		authorID: authorID,
		created:  created,
	}
}

func (c *Comment) ID() int64          { return c.id }
func (c *Comment) Text() string       { return c.text }
func (c *Comment) ItemID() int64      { return c.itemID }
func (c *Comment) AuthorID() int64    { return c.authorID }
func (c *Comment) Created() time.Time { return c.created }

package user

type User struct {
	id    int64
	name  string
	email Email
}

func NewUser(name string, email Email) *User {
	return &User{name: name, email: email}
}

func Reconstruct(id int64, name string, email Email) *User {
	return &User{id: id, name: name, email: email}
}

func (u *User) ID() int64    { return u.id }
func (u *User) Name() string { return u.name }
func (u *User) Email() Email { return u.email }

// Update applies a partial update. Nil fields are left untouched.
func (u *User) Update(name *string, email *Email) {
	if name != nil && *name != "" {
		u.name = *name
	}
	if email != nil {
		u.email = *email
	}
}

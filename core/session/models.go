package session

import (
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/coursebook/core"
)

type Role string

// Roles
const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

var Roles = []Role{RoleStudent, RoleFaculty, RoleAdmin}

// Session is the transient identity of one logged in user.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

func (s Session) IsStudent() bool { return s.Role == RoleStudent }
func (s Session) IsFaculty() bool { return s.Role == RoleFaculty }
func (s Session) IsAdmin() bool   { return s.Role == RoleAdmin }

func (s Session) HasAnyRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if s.Role == role {
			return true
		}
	}
	return false
}

// MailAddress returns the session email as a mail.Address, if it is a valid one.
func (s Session) MailAddress() (mail.Address, bool) {
	addr, err := mail.ParseAddress(s.Email)
	if err != nil {
		return mail.Address{}, false
	}
	return *addr, true
}

// Login contains the information submitted by the login form.
type Login struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student faculty admin"`
}

func (l *Login) Validate(validate *validator.Validate) error {
	l.Email = core.Normalize(l.Email)
	l.Role = core.Normalize(l.Role)
	return validate.Struct(l)
}

// Registration contains the information submitted by the registration form.
type Registration struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required,pwdminlen"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,oneof=student faculty admin"`
}

func (r *Registration) Validate(validate *validator.Validate) error {
	core.TrimFields(&r.Name)
	r.Email = core.Normalize(r.Email)
	r.Role = core.Normalize(r.Role)
	return validate.Struct(r)
}

// Account is the profile of a registered user.
type Account struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/coursebook/core"
)

type Course struct {
	ID          int       `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Instructor  string    `json:"instructor"`
	Schedule    string    `json:"schedule"`
	Capacity    int       `json:"capacity"`
	Enrolled    int       `json:"enrolled"`
	Credits     int       `json:"credits"`
	Fee         string    `json:"fee"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// SeatsLeft returns the number of seats still open for enrollment.
func (c Course) SeatsLeft() int {
	if c.Enrolled >= c.Capacity {
		return 0
	}
	return c.Capacity - c.Enrolled
}

func (c Course) IsFull() bool {
	return c.Enrolled >= c.Capacity
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Instructor  string `json:"instructor" validate:"required"`
	Schedule    string `json:"schedule" validate:"required"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
	Credits     int    `json:"credits" validate:"required,min=1"`
	Fee         string `json:"fee" validate:"required"`
	Description string `json:"description"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	core.TrimFields(&nc.Code, &nc.Name, &nc.Instructor, &nc.Schedule, &nc.Fee, &nc.Description)
	return validate.Struct(nc)
}

// UpdateCourse defines the information replacing an existing Course's mutable fields.
// The enrolled count is not part of it: only enrollments move it.
type UpdateCourse struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Instructor  string `json:"instructor" validate:"required"`
	Schedule    string `json:"schedule" validate:"required"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
	Credits     int    `json:"credits" validate:"required,min=1"`
	Fee         string `json:"fee" validate:"required"`
	Description string `json:"description"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	core.TrimFields(&uc.Code, &uc.Name, &uc.Instructor, &uc.Schedule, &uc.Fee, &uc.Description)
	return validate.Struct(uc)
}

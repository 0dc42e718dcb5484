package course

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/coursebook/core"
)

var (
	// errors
	ErrNotFound              = errors.New("course not found")
	ErrFull                  = errors.New("this course has reached maximum capacity")
	ErrCapacityBelowEnrolled = errors.New("capacity cannot be lower than the number of enrolled students")
)

type (
	Repository interface {
		// CreateCourse assigns a fresh ID to the Course and stores it.
		CreateCourse(course Course) (Course, error)
		// QueryAllCourses returns all Courses in insertion order.
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id int) (Course, error)
		// UpdateCourse replaces the mutable fields of the stored Course, keeping its Enrolled count.
		// It fails with ErrCapacityBelowEnrolled if the new Capacity cannot hold the current Enrolled count.
		UpdateCourse(course Course) (Course, error)
		// DeleteCoursesByID removes the Courses and any enrollment held in them. Unknown IDs are ignored.
		DeleteCoursesByID(ids ...int) error
	}

	Service interface {
		Create(nc NewCourse) (Course, error)
		QueryAll() ([]Course, error)
		GetByID(id int) (Course, error)
		Update(id int, uc UpdateCourse) (Course, error)
		Delete(ids ...int) error
	}

	service struct {
		repo     Repository
		validate *validator.Validate
		logger   core.Logger
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) Service {
	return &service{
		repo:     repo,
		validate: validate,
		logger:   logger,
	}
}

func (svc *service) Create(nc NewCourse) (Course, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, err
	}

	now := time.Now().UTC()
	c, err := svc.repo.CreateCourse(Course{
		Code:        nc.Code,
		Name:        nc.Name,
		Instructor:  nc.Instructor,
		Schedule:    nc.Schedule,
		Capacity:    nc.Capacity,
		Enrolled:    0,
		Credits:     nc.Credits,
		Fee:         nc.Fee,
		Description: nc.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return Course{}, err
	}
	svc.logger.Info(fmt.Sprintf("course %d (%s) created", c.ID, c.Code))
	return c, nil
}

func (svc *service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *service) GetByID(id int) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *service) Update(id int, uc UpdateCourse) (Course, error) {
	if err := uc.Validate(svc.validate); err != nil {
		return Course{}, err
	}

	c, err := svc.repo.UpdateCourse(Course{
		ID:          id,
		Code:        uc.Code,
		Name:        uc.Name,
		Instructor:  uc.Instructor,
		Schedule:    uc.Schedule,
		Capacity:    uc.Capacity,
		Credits:     uc.Credits,
		Fee:         uc.Fee,
		Description: uc.Description,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if err == ErrCapacityBelowEnrolled {
			return Course{}, core.NewFieldError("capacity", err.Error())
		}
		return Course{}, err
	}
	svc.logger.Info(fmt.Sprintf("course %d (%s) updated", c.ID, c.Code))
	return c, nil
}

func (svc *service) Delete(ids ...int) error {
	if err := svc.repo.DeleteCoursesByID(ids...); err != nil {
		return err
	}
	svc.logger.Info(fmt.Sprintf("courses %v deleted", ids))
	return nil
}

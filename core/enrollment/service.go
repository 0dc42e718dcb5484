package enrollment

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/coursebook/core"
	"github.com/trezcool/coursebook/core/course"
	"github.com/trezcool/coursebook/core/session"
)

var (
	// errors
	ErrAlreadyEnrolled = errors.New("you are already enrolled in this course")
	ErrCourseFull      = course.ErrFull
)

type (
	Repository interface {
		// EnrollSeat stores the record and takes a seat in its course as one step.
		// It fails with session.ErrNotFound if the session is closed, ErrAlreadyEnrolled
		// if the session already holds the course, course.ErrNotFound or ErrCourseFull.
		EnrollSeat(e Enrollment) (course.Course, error)
		// DropSeat removes a record and gives its seat back as one step.
		// It reports whether a seat was given back.
		DropSeat(sessionID string, courseID int) (course.Course, bool, error)
		// QueryEnrollments returns the records of a session in insertion order.
		QueryEnrollments(sessionID string) ([]Enrollment, error)
		// QueryRecentEnrollments returns at most limit records, newest first.
		QueryRecentEnrollments(limit int) ([]Enrollment, error)
	}

	// Ledger holds, per session, the courses the session has joined.
	// Enrolling takes a seat in the course and dropping gives it back.
	Ledger interface {
		Enroll(sess session.Session, courseID int) (course.Course, error)
		Drop(sess session.Session, courseID int) error
		ListFor(sess session.Session) ([]course.Course, error)
		DropAll(sess session.Session) error
		Recent(limit int) ([]RecentEnrollment, error)
	}

	ledger struct {
		repo    Repository
		courses course.Repository
		mailSvc core.EmailService
		logger  core.Logger
	}
)

var _ Ledger = (*ledger)(nil) // interface compliance check

// NewLedger returns a Ledger. mailSvc may be nil, in which case no notification is sent.
func NewLedger(repo Repository, courses course.Repository, mailSvc core.EmailService, logger core.Logger) Ledger {
	return &ledger{
		repo:    repo,
		courses: courses,
		mailSvc: mailSvc,
		logger:  logger,
	}
}

func (l *ledger) Enroll(sess session.Session, courseID int) (course.Course, error) {
	c, err := l.repo.EnrollSeat(Enrollment{
		SessionID:  sess.ID,
		Email:      sess.Email,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	})
	if err != nil {
		return course.Course{}, err
	}

	l.logger.Info(fmt.Sprintf("enrolled in course %d (%d/%d)", c.ID, c.Enrolled, c.Capacity), sess)
	l.notify(sess, enrolledSubject, enrolledTmpl, c)
	return c, nil
}

func (l *ledger) Drop(sess session.Session, courseID int) error {
	c, dropped, err := l.drop(sess, courseID)
	if err != nil {
		return err
	}
	if dropped {
		l.notify(sess, droppedSubject, droppedTmpl, c)
	}
	return nil
}

func (l *ledger) drop(sess session.Session, courseID int) (course.Course, bool, error) {
	c, ok, err := l.repo.DropSeat(sess.ID, courseID)
	if err != nil {
		return course.Course{}, false, errors.Wrap(err, "releasing seat")
	}
	if ok {
		l.logger.Info(fmt.Sprintf("dropped course %d (%d/%d)", c.ID, c.Enrolled, c.Capacity), sess)
	}
	return c, ok, nil
}

func (l *ledger) ListFor(sess session.Session) ([]course.Course, error) {
	records, err := l.repo.QueryEnrollments(sess.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}

	courses := make([]course.Course, 0, len(records))
	for _, e := range records {
		c, err := l.courses.GetCourseByID(e.CourseID)
		if err != nil {
			if errors.Cause(err) == course.ErrNotFound {
				continue
			}
			return nil, errors.Wrap(err, "finding course by ID")
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// DropAll drops every course held by the session, silently.
func (l *ledger) DropAll(sess session.Session) error {
	records, err := l.repo.QueryEnrollments(sess.ID)
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	for _, e := range records {
		if _, _, err := l.drop(sess, e.CourseID); err != nil {
			return errors.Wrapf(err, "dropping course %d", e.CourseID)
		}
	}
	return nil
}

// Recent returns the latest records joined with their course, newest first.
func (l *ledger) Recent(limit int) ([]RecentEnrollment, error) {
	records, err := l.repo.QueryRecentEnrollments(limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent enrollments")
	}

	recent := make([]RecentEnrollment, 0, len(records))
	for _, e := range records {
		c, err := l.courses.GetCourseByID(e.CourseID)
		if err != nil {
			if errors.Cause(err) == course.ErrNotFound {
				continue
			}
			return nil, errors.Wrap(err, "finding course by ID")
		}
		recent = append(recent, RecentEnrollment{
			Email:      e.Email,
			CourseID:   c.ID,
			CourseCode: c.Code,
			CourseName: c.Name,
			EnrolledAt: e.EnrolledAt,
		})
	}
	return recent, nil
}

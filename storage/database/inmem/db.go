package inmemdb

import (
	"sync"

	"github.com/trezcool/coursebook/core/course"
	"github.com/trezcool/coursebook/core/enrollment"
	"github.com/trezcool/coursebook/core/session"
)

// DB is an in-memory store. Everything it holds is lost when the process exits.
// When locking more than one table, lock them in this order: course, enrollment, session.
type (
	DB struct {
		course     *courseTable
		enrollment *enrollmentTable
		session    *sessionTable
	}

	courseTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*course.Course
	}

	enrollmentTable struct {
		sync.RWMutex
		seq   int
		table map[enrollmentKey]*enrollmentRow
	}

	enrollmentKey struct {
		sessionID string
		courseID  int
	}

	enrollmentRow struct {
		seq int // insertion order
		enrollment.Enrollment
	}

	sessionTable struct {
		sync.RWMutex
		table map[string]*session.Session
	}
)

func Open() (*DB, error) {
	db := &DB{
		course:     &courseTable{table: make(map[int]*course.Course)},
		enrollment: &enrollmentTable{table: make(map[enrollmentKey]*enrollmentRow)},
		session:    &sessionTable{table: make(map[string]*session.Session)},
	}
	return db, nil
}

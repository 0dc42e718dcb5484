package inmemdb

import (
	"fmt"
	"sort"

	"github.com/trezcool/coursebook/core"
	"github.com/trezcool/coursebook/core/course"
	"github.com/trezcool/coursebook/core/enrollment"
	"github.com/trezcool/coursebook/core/session"
)

type enrollmentRepository struct {
	db *DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) EnrollSeat(e enrollment.Enrollment) (course.Course, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()
	repo.db.enrollment.Lock()
	defer repo.db.enrollment.Unlock()
	repo.db.session.RLock()
	defer repo.db.session.RUnlock()

	if _, ok := repo.db.session.table[e.SessionID]; !ok {
		return course.Course{}, session.ErrNotFound
	}
	key := enrollmentKey{sessionID: e.SessionID, courseID: e.CourseID}
	if _, ok := repo.db.enrollment.table[key]; ok {
		return course.Course{}, enrollment.ErrAlreadyEnrolled
	}
	c, ok := repo.db.course.table[e.CourseID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	if c.IsFull() {
		return course.Course{}, enrollment.ErrCourseFull
	}

	c.Enrolled++
	repo.db.enrollment.seq++
	repo.db.enrollment.table[key] = &enrollmentRow{seq: repo.db.enrollment.seq, Enrollment: e}
	return *c, nil
}

func (repo *enrollmentRepository) DropSeat(sessionID string, courseID int) (course.Course, bool, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()
	repo.db.enrollment.Lock()
	defer repo.db.enrollment.Unlock()

	key := enrollmentKey{sessionID: sessionID, courseID: courseID}
	if _, ok := repo.db.enrollment.table[key]; !ok {
		return course.Course{}, false, nil
	}
	c, ok := repo.db.course.table[courseID]
	if !ok {
		// deleting a course deletes its records too
		delete(repo.db.enrollment.table, key)
		return course.Course{}, false, nil
	}
	if c.Enrolled == 0 {
		// a seat is held, so the count cannot be zero
		return course.Course{}, false, core.NewShutdownError(fmt.Sprintf("course %d: releasing a seat of an empty course", courseID))
	}

	c.Enrolled--
	delete(repo.db.enrollment.table, key)
	return *c, true, nil
}

func (repo *enrollmentRepository) QueryEnrollments(sessionID string) ([]enrollment.Enrollment, error) {
	repo.db.enrollment.RLock()
	defer repo.db.enrollment.RUnlock()

	rows := make([]*enrollmentRow, 0)
	for key, row := range repo.db.enrollment.table {
		if key.sessionID == sessionID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	return records(rows), nil
}

func (repo *enrollmentRepository) QueryRecentEnrollments(limit int) ([]enrollment.Enrollment, error) {
	repo.db.enrollment.RLock()
	defer repo.db.enrollment.RUnlock()

	rows := make([]*enrollmentRow, 0, len(repo.db.enrollment.table))
	for _, row := range repo.db.enrollment.table {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return records(rows), nil
}

func records(rows []*enrollmentRow) []enrollment.Enrollment {
	records := make([]enrollment.Enrollment, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Enrollment)
	}
	return records
}

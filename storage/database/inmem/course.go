package inmemdb

import (
	"sort"

	"github.com/trezcool/coursebook/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

// query returns the courses ordered by ID, which is their insertion order.
func (repo *courseRepository) query() []course.Course {
	courses := make([]course.Course, 0, len(repo.db.course.table))
	for _, c := range repo.db.course.table {
		courses = append(courses, *c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}

func (repo *courseRepository) CreateCourse(c course.Course) (course.Course, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	repo.db.course.pkCount++
	c.ID = repo.db.course.pkCount
	repo.db.course.table[c.ID] = &c
	return c, nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()
	return repo.query(), nil
}

func (repo *courseRepository) GetCourseByID(id int) (course.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	if c, ok := repo.db.course.table[id]; ok {
		return *c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) UpdateCourse(c course.Course) (course.Course, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	origCourse, ok := repo.db.course.table[c.ID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	if c.Capacity < origCourse.Enrolled {
		return course.Course{}, course.ErrCapacityBelowEnrolled
	}
	origCourse.Code = c.Code
	origCourse.Name = c.Name
	origCourse.Instructor = c.Instructor
	origCourse.Schedule = c.Schedule
	origCourse.Capacity = c.Capacity
	origCourse.Credits = c.Credits
	origCourse.Fee = c.Fee
	origCourse.Description = c.Description
	origCourse.UpdatedAt = c.UpdatedAt
	return *origCourse, nil
}

func (repo *courseRepository) DeleteCoursesByID(ids ...int) error {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()
	repo.db.enrollment.Lock()
	defer repo.db.enrollment.Unlock()

	deleted := make(map[int]bool, len(ids))
	for _, id := range ids {
		delete(repo.db.course.table, id)
		deleted[id] = true
	}
	for key := range repo.db.enrollment.table {
		if deleted[key.courseID] {
			delete(repo.db.enrollment.table, key)
		}
	}
	return nil
}

package inmemdb

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/coursebook/core/course"
)

// SampleCourses returns the catalog a fresh deployment starts with.
func SampleCourses() []course.Course {
	now := time.Now().UTC()
	return []course.Course{
		{
			Code:        "CS101",
			Name:        "Introduction to Programming",
			Instructor:  "Dr. Sarah Johnson",
			Schedule:    "Mon, Wed, Fri 10:00 AM - 11:30 AM",
			Capacity:    50,
			Enrolled:    35,
			Credits:     3,
			Fee:         "$500",
			Description: "Learn the fundamentals of programming using Python. Perfect for beginners.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Code:        "CS201",
			Name:        "Data Structures & Algorithms",
			Instructor:  "Prof. Michael Chen",
			Schedule:    "Tue, Thu 2:00 PM - 3:30 PM",
			Capacity:    40,
			Enrolled:    38,
			Credits:     4,
			Fee:         "$650",
			Description: "Advanced concepts in data structures and algorithmic problem-solving.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Code:        "CS301",
			Name:        "Database Management Systems",
			Instructor:  "Dr. Emily Rodriguez",
			Schedule:    "Mon, Wed 1:00 PM - 2:30 PM",
			Capacity:    45,
			Enrolled:    30,
			Credits:     3,
			Fee:         "$550",
			Description: "Design, implement, and manage relational databases.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Code:        "CS401",
			Name:        "Web Development",
			Instructor:  "Mr. James Wilson",
			Schedule:    "Tue, Thu 10:00 AM - 11:30 AM",
			Capacity:    35,
			Enrolled:    25,
			Credits:     3,
			Fee:         "$600",
			Description: "Build modern web applications using React, Node.js, and databases.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// Seed stores the sample catalog.
func Seed(repo course.Repository) ([]course.Course, error) {
	samples := SampleCourses()
	courses := make([]course.Course, 0, len(samples))
	for _, c := range samples {
		created, err := repo.CreateCourse(c)
		if err != nil {
			return nil, errors.Wrapf(err, "seeding course %s", c.Code)
		}
		courses = append(courses, created)
	}
	return courses, nil
}

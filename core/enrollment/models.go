package enrollment

import "time"

// Enrollment records that a session holds a seat in a course.
type Enrollment struct {
	SessionID  string    `json:"session_id"`
	Email      string    `json:"email"`
	CourseID   int       `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"` // UTC
}

// RecentEnrollment is a record joined with its course, as listed on the admin dashboard.
type RecentEnrollment struct {
	Email      string    `json:"email"`
	CourseID   int       `json:"course_id"`
	CourseCode string    `json:"course_code"`
	CourseName string    `json:"course_name"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// NewEnrollment contains the information submitted by the enroll action.
type NewEnrollment struct {
	CourseID int `json:"course_id" validate:"required"`
}

// DefaultRecentLimit is the number of records listed when RecentQuery has no Limit.
const DefaultRecentLimit = 10

// RecentQuery contains the query parameters of the recent enrollments listing.
type RecentQuery struct {
	Limit int `json:"limit" query:"limit" validate:"omitempty,min=1,max=100"`
}

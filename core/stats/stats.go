// Package stats derives the dashboard counters from the catalog and the ledger.
// Nothing is cached: every summary is computed from the courses it is given.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/trezcool/coursebook/core/course"
	"github.com/trezcool/coursebook/core/session"
)

// CatalogSummary holds the catalog wide counters.
type CatalogSummary struct {
	TotalCourses   int `json:"total_courses"`
	TotalCapacity  int `json:"total_capacity"`
	TotalEnrolled  int `json:"total_enrolled"`
	AvailableSeats int `json:"available_seats"`
	FullCourses    int `json:"full_courses"`
	EnrollmentRate int `json:"enrollment_rate"` // % of seats filled
}

// SessionSummary holds the counters of one session's enrolled courses.
type SessionSummary struct {
	EnrolledCourses int `json:"enrolled_courses"`
	TotalCredits    int `json:"total_credits"`
}

// CourseUtilization is the fill rate of one course.
type CourseUtilization struct {
	ID         int    `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Enrolled   int    `json:"enrolled"`
	Capacity   int    `json:"capacity"`
	Percentage int    `json:"percentage"`
}

// UserSummary counts the open sessions.
type UserSummary struct {
	TotalStudents int `json:"total_students"`
	TotalFaculty  int `json:"total_faculty"`
	TotalAdmins   int `json:"total_admins"`
	ActiveUsers   int `json:"active_users"`
}

// RevenueSummary holds the fees collected over the seats taken.
type RevenueSummary struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	UnpricedCourses int             `json:"unpriced_courses"` // fee could not be read
}

var feeReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

func Catalog(courses []course.Course) CatalogSummary {
	sum := CatalogSummary{TotalCourses: len(courses)}
	for _, c := range courses {
		sum.TotalCapacity += c.Capacity
		sum.TotalEnrolled += c.Enrolled
		sum.AvailableSeats += c.Capacity - c.Enrolled
		if c.IsFull() {
			sum.FullCourses++
		}
	}
	sum.EnrollmentRate = percentage(sum.TotalEnrolled, sum.TotalCapacity)
	return sum
}

func Session(enrolled []course.Course) SessionSummary {
	sum := SessionSummary{EnrolledCourses: len(enrolled)}
	for _, c := range enrolled {
		sum.TotalCredits += c.Credits
	}
	return sum
}

func Users(byRole map[session.Role]int) UserSummary {
	sum := UserSummary{
		TotalStudents: byRole[session.RoleStudent],
		TotalFaculty:  byRole[session.RoleFaculty],
		TotalAdmins:   byRole[session.RoleAdmin],
	}
	for _, n := range byRole {
		sum.ActiveUsers += n
	}
	return sum
}

// Revenue sums fee times enrolled over the catalog.
// Courses whose fee cannot be read count as unpriced and add nothing.
func Revenue(courses []course.Course) RevenueSummary {
	sum := RevenueSummary{TotalRevenue: decimal.Zero}
	for _, c := range courses {
		fee, err := ParseFee(c.Fee)
		if err != nil {
			sum.UnpricedCourses++
			continue
		}
		sum.TotalRevenue = sum.TotalRevenue.Add(fee.Mul(decimal.New(int64(c.Enrolled), 0)))
	}
	return sum
}

// ParseFee reads a fee written as a dollar amount, such as "$1,250.50" or "500".
func ParseFee(fee string) (decimal.Decimal, error) {
	return decimal.NewFromString(feeReplacer.Replace(strings.TrimSpace(fee)))
}

// Utilization returns the fill rate of every course, fullest first.
// Courses with the same rate keep their catalog order.
func Utilization(courses []course.Course) []CourseUtilization {
	rows := make([]CourseUtilization, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, CourseUtilization{
			ID:         c.ID,
			Code:       c.Code,
			Name:       c.Name,
			Enrolled:   c.Enrolled,
			Capacity:   c.Capacity,
			Percentage: percentage(c.Enrolled, c.Capacity),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Percentage > rows[j].Percentage })
	return rows
}

// percentage returns part/total as a rounded percentage; 0 when total is 0.
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

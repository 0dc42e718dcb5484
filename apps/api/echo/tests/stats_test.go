package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/coursebook/core/session"
	"github.com/trezcool/coursebook/core/stats"
	inmemdb "github.com/trezcool/coursebook/storage/database/inmem"
	"github.com/trezcool/coursebook/tests"
)

func Test_statsApi(t *testing.T) {
	app := setup(t)
	student := testutil.OpenSession(t, app.sessRepo, "hero@test.cd", session.RoleStudent)
	faculty := testutil.OpenSession(t, app.sessRepo, "prof@test.cd", session.RoleFaculty)
	admin := testutil.OpenSession(t, app.sessRepo, "admin@test.cd", session.RoleAdmin)

	courses, err := inmemdb.Seed(app.courseRepo)
	require.NoError(t, err)

	catalog := stats.CatalogSummary{
		TotalCourses:   4,
		TotalCapacity:  170,
		TotalEnrolled:  128,
		AvailableSeats: 42,
		EnrollmentRate: 75,
	}

	run(t, app, []httpTest{
		{name: "catalog: session required", path: "/v1/stats/catalog", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingSession)},
		{
			name: "catalog: not for students", path: "/v1/stats/catalog", sessID: student.ID,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "catalog: faculty", path: "/v1/stats/catalog", sessID: faculty.ID, wantCode: http.StatusOK, wantData: marchallObj(t, catalog)},
		{name: "catalog: admin", path: "/v1/stats/catalog", sessID: admin.ID, wantCode: http.StatusOK, wantData: marchallObj(t, catalog)},
		{
			name: "courses: admin only", path: "/v1/stats/courses", sessID: faculty.ID,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "courses: admin", path: "/v1/stats/courses", sessID: admin.ID, wantCode: http.StatusOK,
			wantData: marchallObj(t, stats.Utilization(courses)),
		},
		{
			name: "enrollments: students only", path: "/v1/stats/enrollments", sessID: admin.ID,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "enrollments: nothing yet", path: "/v1/stats/enrollments", sessID: student.ID,
			wantCode: http.StatusOK, wantData: marchallObj(t, stats.SessionSummary{}),
		},
	})

	// CS201 (4 credits) fills up: 39/40 then 40/40
	other := testutil.OpenSession(t, app.sessRepo, "other@test.cd", session.RoleStudent)
	for _, sess := range []session.Session{student, other} {
		_, err := app.ledger.Enroll(sess, courses[1].ID)
		require.NoError(t, err)
	}
	_, err = app.ledger.Enroll(student, courses[0].ID)
	require.NoError(t, err)

	catalog.TotalEnrolled = 131
	catalog.AvailableSeats = 39
	catalog.FullCourses = 1
	catalog.EnrollmentRate = 77 // 77.06

	run(t, app, []httpTest{
		{name: "catalog: after enrollments", path: "/v1/stats/catalog", sessID: admin.ID, wantCode: http.StatusOK, wantData: marchallObj(t, catalog)},
		{
			name: "enrollments: after enrollments", path: "/v1/stats/enrollments", sessID: student.ID,
			wantCode: http.StatusOK, wantData: marchallObj(t, stats.SessionSummary{EnrolledCourses: 2, TotalCredits: 7}),
		},
	})
}

func Test_statsApi_admin(t *testing.T) {
	app := setup(t)
	hero := testutil.OpenSession(t, app.sessRepo, "hero@test.cd", session.RoleStudent)
	other := testutil.OpenSession(t, app.sessRepo, "other@test.cd", session.RoleStudent)
	faculty := testutil.OpenSession(t, app.sessRepo, "prof@test.cd", session.RoleFaculty)
	admin := testutil.OpenSession(t, app.sessRepo, "admin@test.cd", session.RoleAdmin)

	courses, err := inmemdb.Seed(app.courseRepo)
	require.NoError(t, err)

	run(t, app, []httpTest{
		{
			name: "users: admin only", path: "/v1/stats/users", sessID: faculty.ID,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "users: admin", path: "/v1/stats/users", sessID: admin.ID, wantCode: http.StatusOK,
			wantData: marchallObj(t, stats.UserSummary{TotalStudents: 2, TotalFaculty: 1, TotalAdmins: 1, ActiveUsers: 4}),
		},
		{
			name: "revenue: admin only", path: "/v1/stats/revenue", sessID: hero.ID,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "revenue: admin", path: "/v1/stats/revenue", sessID: admin.ID, wantCode: http.StatusOK,
			wantData: []byte(`{"total_revenue": "73700", "unpriced_courses": 0}`),
		},
		{
			name: "recent: admin only", path: "/v1/stats/enrollments/recent", sessID: faculty.ID,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "recent: nothing yet", path: "/v1/stats/enrollments/recent", sessID: admin.ID,
			wantCode: http.StatusOK, wantData: marchallList(t),
		},
		{
			name: "recent: limit too high", path: "/v1/stats/enrollments/recent?limit=101", sessID: admin.ID,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"limit": "limit must be 100 or less"}),
		},
	})

	for _, step := range []struct {
		sess     session.Session
		courseID int
	}{{hero, courses[0].ID}, {other, courses[1].ID}, {hero, courses[2].ID}} {
		_, err := app.ledger.Enroll(step.sess, step.courseID)
		require.NoError(t, err)
	}
	recent, err := app.ledger.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, "CS301", recent[0].CourseCode)

	run(t, app, []httpTest{
		{
			name: "recent: limit", path: "/v1/stats/enrollments/recent?limit=2", sessID: admin.ID,
			wantCode: http.StatusOK, wantData: marchallList(t, recent[0], recent[1]),
		},
		{
			name: "recent: default limit", path: "/v1/stats/enrollments/recent", sessID: admin.ID,
			wantCode: http.StatusOK, wantData: marchallList(t, recent[0], recent[1], recent[2]),
		},
		{
			name: "revenue: after enrollments", path: "/v1/stats/revenue", sessID: admin.ID, wantCode: http.StatusOK,
			wantData: []byte(`{"total_revenue": "75400", "unpriced_courses": 0}`), // + 500 + 650 + 550
		},
		// logging out drops the session from the counters and gives its seats back
		{name: "hero logs out", method: http.MethodDelete, path: "/v1/sessions", sessID: hero.ID, wantCode: http.StatusNoContent},
		{
			name: "users: after logout", path: "/v1/stats/users", sessID: admin.ID, wantCode: http.StatusOK,
			wantData: marchallObj(t, stats.UserSummary{TotalStudents: 1, TotalFaculty: 1, TotalAdmins: 1, ActiveUsers: 3}),
		},
		{
			name: "recent: after logout", path: "/v1/stats/enrollments/recent", sessID: admin.ID,
			wantCode: http.StatusOK, wantData: marchallList(t, recent[1]),
		},
		{
			name: "revenue: after logout", path: "/v1/stats/revenue", sessID: admin.ID, wantCode: http.StatusOK,
			wantData: []byte(`{"total_revenue": "74350", "unpriced_courses": 0}`),
		},
	})
}

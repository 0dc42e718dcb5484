package tests

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/coursebook/core/course"
	"github.com/trezcool/coursebook/core/session"
	"github.com/trezcool/coursebook/tests"
)

func coursePath(id int) string {
	return "/v1/courses/" + strconv.Itoa(id)
}

func Test_courseApi_query(t *testing.T) {
	app := setup(t)
	student := testutil.OpenSession(t, app.sessRepo, "hero@test.cd", session.RoleStudent)
	admin := testutil.OpenSession(t, app.sessRepo, "admin@test.cd", session.RoleAdmin)

	run(t, app, []httpTest{
		{name: "session required", path: "/v1/courses", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingSession)},
		{name: "empty catalog", path: "/v1/courses", sessID: student.ID, wantCode: http.StatusOK, wantData: marchallList(t)},
	})

	c1 := testutil.CreateCourse(t, app.courseRepo, "CS101", 50, 35)
	c2 := testutil.CreateCourse(t, app.courseRepo, "CS201", 40, 38)

	run(t, app, []httpTest{
		{name: "student", path: "/v1/courses", sessID: student.ID, wantCode: http.StatusOK, wantData: marchallList(t, c1, c2)},
		{name: "admin", path: "/v1/courses", sessID: admin.ID, wantCode: http.StatusOK, wantData: marchallList(t, c1, c2)},
		{name: "get one", path: coursePath(c2.ID), sessID: student.ID, wantCode: http.StatusOK, wantData: marchallObj(t, c2)},
		{
			name: "get unknown", path: coursePath(100), sessID: student.ID,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "course not found"}),
		},
		{
			name: "get malformed id", path: "/v1/courses/abc", sessID: student.ID,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	})
}

func Test_courseApi_create(t *testing.T) {
	app := setup(t)
	student := testutil.OpenSession(t, app.sessRepo, "hero@test.cd", session.RoleStudent)
	faculty := testutil.OpenSession(t, app.sessRepo, "prof@test.cd", session.RoleFaculty)

	valid := []byte(`{
		"code": "CS101",
		"name": "Introduction to Programming",
		"instructor": "Dr. Sarah Johnson",
		"schedule": "Mon, Wed, Fri 10:00 AM - 11:30 AM",
		"capacity": 50,
		"credits": 3,
		"fee": "$500",
		"description": "Learn the fundamentals of programming using Python."
	}`)

	run(t, app, []httpTest{
		{
			name: "session required", method: http.MethodPost, path: "/v1/courses", body: valid,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingSession),
		},
		{
			name: "faculty required", method: http.MethodPost, path: "/v1/courses", body: valid, sessID: student.ID,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "empty form", method: http.MethodPost, path: "/v1/courses", body: []byte(`{}`), sessID: faculty.ID,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"code":       "this field is required",
				"name":       "this field is required",
				"instructor": "this field is required",
				"schedule":   "this field is required",
				"capacity":   "this field is required",
				"credits":    "this field is required",
				"fee":        "this field is required",
			}),
		},
	})

	courses, err := app.courseRepo.QueryAllCourses()
	require.NoError(t, err)
	require.Empty(t, courses)

	req, rec := newSessionRequest(http.MethodPost, "/v1/courses", faculty.ID, valid)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created course.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "CS101", created.Code)
	assert.Equal(t, 50, created.Capacity)
	assert.Equal(t, 0, created.Enrolled)

	courses, err = app.courseRepo.QueryAllCourses()
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, created.ID, courses[0].ID)
	assert.Equal(t, "Dr. Sarah Johnson", courses[0].Instructor)
}

func Test_courseApi_update(t *testing.T) {
	app := setup(t)
	student := testutil.OpenSession(t, app.sessRepo, "hero@test.cd", session.RoleStudent)
	faculty := testutil.OpenSession(t, app.sessRepo, "prof@test.cd", session.RoleFaculty)
	c := testutil.CreateCourse(t, app.courseRepo, "CS201", 40, 38)

	body := func(capacity int) []byte {
		return marchallObj(t, course.UpdateCourse{
			Code:       "CS202",
			Name:       "Algorithms II",
			Instructor: "Prof. Michael Chen",
			Schedule:   "Tue, Thu 2:00 PM - 3:30 PM",
			Capacity:   capacity,
			Credits:    4,
			Fee:        "$650",
		})
	}

	run(t, app, []httpTest{
		{
			name: "faculty required", method: http.MethodPut, path: coursePath(c.ID), body: body(45), sessID: student.ID,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "unknown course", method: http.MethodPut, path: coursePath(100), body: body(45), sessID: faculty.ID,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "course not found"}),
		},
		{
			name: "capacity below enrolled", method: http.MethodPut, path: coursePath(c.ID), body: body(30), sessID: faculty.ID,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"capacity": course.ErrCapacityBelowEnrolled.Error()}),
		},
	})
	assert.Equal(t, c, getCourse(t, app, c.ID), "failed updates must not mutate")

	req, rec := newSessionRequest(http.MethodPut, coursePath(c.ID), faculty.ID, body(45))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := getCourse(t, app, c.ID)
	assert.Equal(t, "CS202", updated.Code)
	assert.Equal(t, 45, updated.Capacity)
	assert.Equal(t, 38, updated.Enrolled)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, updated)}, rec)
}

func Test_courseApi_destroy(t *testing.T) {
	app := setup(t)
	student := testutil.OpenSession(t, app.sessRepo, "hero@test.cd", session.RoleStudent)
	faculty := testutil.OpenSession(t, app.sessRepo, "prof@test.cd", session.RoleFaculty)
	c1 := testutil.CreateCourse(t, app.courseRepo, "CS101", 50, 35)
	c2 := testutil.CreateCourse(t, app.courseRepo, "CS201", 40, 38)
	_, err := app.ledger.Enroll(student, c1.ID)
	require.NoError(t, err)

	run(t, app, []httpTest{
		{
			name: "faculty required", method: http.MethodDelete, path: coursePath(c1.ID), sessID: student.ID,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "delete", method: http.MethodDelete, path: coursePath(c1.ID), sessID: faculty.ID, wantCode: http.StatusNoContent},
		{name: "delete again", method: http.MethodDelete, path: coursePath(c1.ID), sessID: faculty.ID, wantCode: http.StatusNoContent},
		{name: "list", path: "/v1/courses", sessID: faculty.ID, wantCode: http.StatusOK, wantData: marchallList(t, c2)},
		{name: "enrollment is gone", path: "/v1/enrollments", sessID: student.ID, wantCode: http.StatusOK, wantData: marchallList(t)},
	})
}

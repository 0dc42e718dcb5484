package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/trezcool/coursebook/apps/api/echo"
	"github.com/trezcool/coursebook/core/course"
	"github.com/trezcool/coursebook/core/enrollment"
	"github.com/trezcool/coursebook/core/session"
	emailsvc "github.com/trezcool/coursebook/services/email"
	inmemdb "github.com/trezcool/coursebook/storage/database/inmem"
	"github.com/trezcool/coursebook/tests"
)

var (
	errMissingSession = httpErr{Error: "session not found"}
	errForbidden      = httpErr{Error: "permission denied"}
)

type testApp struct {
	*Server
	courseRepo course.Repository
	sessRepo   session.Repository
	ledger     enrollment.Ledger
	mailSvc    *emailsvc.ConsoleServiceMock
}

// setup wires a Server over a fresh store. wrap decorates the enrollment repository.
func setup(t *testing.T, wrap ...func(enrollment.Repository) enrollment.Repository) testApp {
	// set up DB & repos
	db, err := inmemdb.Open()
	require.NoError(t, err)
	courseRepo := inmemdb.NewCourseRepository(db)
	sessRepo := inmemdb.NewSessionRepository(db)
	enrollRepo := inmemdb.NewEnrollmentRepository(db)
	for _, w := range wrap {
		enrollRepo = w(enrollRepo)
	}

	// set up services
	conf := testutil.Config()
	logger := testutil.NewLogger(conf)
	validate, translator := testutil.NewValidator()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	ledger := enrollment.NewLedger(enrollRepo, courseRepo, mailSvc, logger)

	// set up server
	server := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		SessionSvc: session.NewService(sessRepo, validate, logger),
		CourseSvc:  course.NewService(courseRepo, validate, logger),
		Ledger:     ledger,
		Validate:   validate,
		Translator: translator,
	})
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })

	return testApp{
		Server:     server,
		courseRepo: courseRepo,
		sessRepo:   sessRepo,
		ledger:     ledger,
		mailSvc:    mailSvc,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	sessID   string
	wantCode int
	wantData []byte
}

func newSessionRequest(method, path, sessID string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if sessID != "" {
		req.Header.Set("X-Session-ID", sessID)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newSessionRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if len(b1) == 0 && len(b2) == 0 {
		return true, nil
	}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// run executes table tests in order; each may depend on the state left by the previous ones.
func run(t *testing.T, app testApp, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newSessionRequest(method, tt.path, tt.sessID, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func getCourse(t *testing.T, app testApp, id int) course.Course {
	c, err := app.courseRepo.GetCourseByID(id)
	require.NoError(t, err)
	return c
}

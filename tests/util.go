package testutil

import (
	"io"
	"log"
	"net/mail"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/coursebook/core"
	"github.com/trezcool/coursebook/core/course"
	"github.com/trezcool/coursebook/core/session"
	logsvc "github.com/trezcool/coursebook/services/logger"
)

// Config returns a TEST configuration that does not read the environment.
func Config() *core.Config {
	conf := &core.Config{
		AppName:          "Coursebook",
		Env:              "TEST",
		Build:            "test",
		TestMode:         true,
		DefaultFromEmail: mail.Address{Name: "Coursebook", Address: "noreply@localhost"},
	}
	conf.Server.Host = "localhost"
	conf.Server.Addr = ":0"
	conf.Server.ShutdownTimeout = time.Second
	conf.Server.DisableReqLogs = true
	return conf
}

// NewLogger returns a disabled RollbarLogger writing nowhere.
func NewLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)
	return logger
}

func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	session.InitValidators(validate, translator)
	return validate, translator
}

func CreateCourse(t *testing.T, repo course.Repository, code string, capacity, enrolled int, credits ...int) course.Course {
	crdts := 3
	if len(credits) > 0 {
		crdts = credits[0]
	}
	now := time.Now().UTC()
	c, err := repo.CreateCourse(course.Course{
		Code:       code,
		Name:       "Course " + code,
		Instructor: "Dr. Test",
		Schedule:   "Mon 10:00 AM - 11:30 AM",
		Capacity:   capacity,
		Enrolled:   enrolled,
		Credits:    crdts,
		Fee:        "$500",
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

func OpenSession(t *testing.T, repo session.Repository, email string, role session.Role) session.Session {
	sess, err := repo.CreateSession(session.Session{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	return sess
}

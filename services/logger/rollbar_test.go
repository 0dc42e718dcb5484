package logsvc

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/coursebook/core"
	"github.com/trezcool/coursebook/core/session"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)

	student := session.Session{ID: "s1", Email: "hero@test.cd", Role: session.RoleStudent}
	other := session.Session{ID: "s2", Email: "other@test.cd", Role: session.RoleStudent}

	logger.Info("enrolled", student, other)
	logger.Error("boom", errors.New("db down"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"INFO: enrolled (student hero@test.cd)",
		"ERROR: boom",
		"db down",
	}, lines)
}

func TestRollbarLogger_report(t *testing.T) {
	logger := RollbarLogger{}
	sess := session.Session{ID: "s1", Role: session.RoleAdmin}
	err := errors.New("oops")

	extra, actor := logger.report("msg", []interface{}{err, sess, map[string]interface{}{"k": 1}})
	assert.Equal(t, []interface{}{"msg", err, map[string]interface{}{"k": 1}}, extra)
	if assert.NotNil(t, actor) {
		assert.Equal(t, sess, *actor)
	}

	extra, actor = logger.report("msg", nil)
	assert.Equal(t, []interface{}{"msg"}, extra)
	assert.Nil(t, actor)
}

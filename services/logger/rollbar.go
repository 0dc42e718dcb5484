package logsvc

import (
	"fmt"
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/coursebook/core"
	"github.com/trezcool/coursebook/core/session"
)

type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// report splits the acting Session (if any) out of args, sets it as the Rollbar person
// and returns what is left, msg first.
// expected args: error | map[string]interface{} | session.Session
func (l RollbarLogger) report(msg string, args []interface{}) (extra []interface{}, actor *session.Session) {
	extra = make([]interface{}, 0, len(args)+1)
	extra = append(extra, msg)
	for _, arg := range args {
		sess, ok := arg.(session.Session)
		switch {
		case !ok:
			extra = append(extra, arg)
		case actor == nil: // first one wins
			actor = &sess
		}
	}

	if actor != nil {
		rollbar.SetPerson(actor.ID, string(actor.Role), actor.Email)
	} else {
		rollbar.ClearPerson()
	}
	return extra, actor
}

func (l RollbarLogger) print(level string, extra []interface{}, actor *session.Session) {
	line := fmt.Sprintf("%s: %v", level, extra[0])
	if actor != nil {
		line += fmt.Sprintf(" (%s %s)", actor.Role, actor.Email)
	}
	l.std.Println(line)
	for _, arg := range extra[1:] {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	extra, actor := l.report(msg, args)
	rollbar.Debug(extra...)
	l.print("DEBUG", extra, actor)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	extra, actor := l.report(msg, args)
	rollbar.Info(extra...)
	l.print("INFO", extra, actor)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	extra, actor := l.report(msg, args)
	rollbar.Warning(extra...)
	l.print("WARN", extra, actor)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	extra, actor := l.report(msg, args)
	rollbar.Error(extra...)
	l.print("ERROR", extra, actor)
}

// Fatal reports, waits for Rollbar to flush, then exits.
func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	extra, actor := l.report(msg, args)
	rollbar.Critical(extra...)
	l.print("FATAL", extra, actor)
	rollbar.Wait()
	l.std.Fatal(msg)
}

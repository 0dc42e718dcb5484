package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/coursebook/core/session"
)

const (
	sessionHeader     = "X-Session-ID"
	contextSessionKey = "session"
)

// sessionMiddleware loads the Session named by the X-Session-ID header into the context.
func sessionMiddleware(svc session.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id := ctx.Request().Header.Get(sessionHeader)
			if id == "" {
				return errUnauthorized
			}
			sess, err := svc.Get(id)
			if err != nil {
				if errors.Cause(err) == session.ErrNotFound {
					return errUnauthorized
				}
				return errors.Wrap(err, "finding session by ID")
			}
			ctx.Set(contextSessionKey, sess)
			return next(ctx)
		}
	}
}

func roleMiddleware(roles ...session.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess, err := getContextSession(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context session")
			}
			if sess.HasAnyRole(roles...) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

func getContextSession(ctx echo.Context) (session.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(session.Session); ok {
		return sess, nil
	}
	return session.Session{}, errUnauthorized
}

// pathID parses an integer path parameter. A malformed ID cannot name anything: not found.
func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

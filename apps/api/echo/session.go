package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/coursebook/core/enrollment"
	"github.com/trezcool/coursebook/core/session"
)

type sessionApi struct {
	service session.Service
	ledger  enrollment.Ledger
}

func registerSessionAPI(g *echo.Group, authed echo.MiddlewareFunc, svc session.Service, ledger enrollment.Ledger) {
	api := sessionApi{service: svc, ledger: ledger}

	g.POST("/sessions", api.login)
	g.POST("/accounts", api.register)
	g.GET("/sessions/me", api.retrieve, authed)
	g.DELETE("/sessions", api.logout, authed)
}

func (api *sessionApi) login(ctx echo.Context) error {
	var data session.Login
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding data")
	}

	sess, err := api.service.Login(data)
	if err != nil {
		return errors.Wrap(err, "opening session")
	}
	return ctx.JSON(http.StatusCreated, sess)
}

func (api *sessionApi) register(ctx echo.Context) error {
	var data session.Registration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding data")
	}

	acc, err := api.service.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering account")
	}
	return ctx.JSON(http.StatusCreated, acc)
}

func (api *sessionApi) retrieve(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	return ctx.JSON(http.StatusOK, sess)
}

// logout closes the session and gives back the seats it held.
// The session is closed first so that no enrollment can land after DropAll.
func (api *sessionApi) logout(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}

	if err := api.service.Close(sess.ID); err != nil {
		return errors.Wrap(err, "closing session")
	}
	if err := api.ledger.DropAll(sess); err != nil {
		return errors.Wrap(err, "dropping enrollments")
	}
	return ctx.NoContent(http.StatusNoContent)
}

package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/coursebook/core/enrollment"
	"github.com/trezcool/coursebook/core/session"
)

type enrollmentApi struct {
	ledger   enrollment.Ledger
	validate *validator.Validate
}

func registerEnrollmentAPI(g *echo.Group, authed echo.MiddlewareFunc, ledger enrollment.Ledger, validate *validator.Validate) {
	api := enrollmentApi{ledger: ledger, validate: validate}
	studentOnly := roleMiddleware(session.RoleStudent)

	g.GET("/enrollments", api.query, authed, studentOnly)
	g.POST("/enrollments", api.create, authed, studentOnly)
	g.DELETE("/enrollments/:course_id", api.destroy, authed, studentOnly)
}

func (api *enrollmentApi) query(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}

	courses, err := api.ledger.ListFor(sess)
	if err != nil {
		return errors.Wrap(err, "listing enrolled courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *enrollmentApi) create(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}

	var data enrollment.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding data")
	}
	if err := api.validate.Struct(data); err != nil {
		return errors.Wrap(err, "validating data")
	}

	c, err := api.ledger.Enroll(sess, data.CourseID)
	if err != nil {
		return errors.Wrapf(err, "enrolling in course %d", data.CourseID)
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *enrollmentApi) destroy(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	courseID, err := pathID(ctx, "course_id")
	if err != nil {
		return err
	}

	if err := api.ledger.Drop(sess, courseID); err != nil {
		return errors.Wrapf(err, "dropping course %d", courseID)
	}
	return ctx.NoContent(http.StatusNoContent)
}

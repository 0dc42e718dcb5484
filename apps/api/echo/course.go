package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/coursebook/core/course"
	"github.com/trezcool/coursebook/core/session"
)

type courseApi struct {
	service course.Service
}

func registerCourseAPI(g *echo.Group, authed echo.MiddlewareFunc, svc course.Service) {
	api := courseApi{service: svc}
	facultyOnly := roleMiddleware(session.RoleFaculty)

	g.GET("/courses", api.query, authed)
	g.POST("/courses", api.create, authed, facultyOnly)
	g.GET("/courses/:id", api.retrieve, authed)
	g.PUT("/courses/:id", api.update, authed, facultyOnly)
	g.DELETE("/courses/:id", api.destroy, authed, facultyOnly)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.service.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding data")
	}

	c, err := api.service.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	c, err := api.service.GetByID(id)
	if err != nil {
		return errors.Wrapf(err, "getting course %d", id)
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding data")
	}

	c, err := api.service.Update(id, data)
	if err != nil {
		return errors.Wrapf(err, "updating course %d", id)
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := api.service.Delete(id); err != nil {
		return errors.Wrapf(err, "deleting course %d", id)
	}
	return ctx.NoContent(http.StatusNoContent)
}

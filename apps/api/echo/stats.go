package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/coursebook/core/course"
	"github.com/trezcool/coursebook/core/enrollment"
	"github.com/trezcool/coursebook/core/session"
	"github.com/trezcool/coursebook/core/stats"
)

// statsApi serves the dashboard counters. They are derived on every read.
type statsApi struct {
	courses  course.Service
	sessions session.Service
	ledger   enrollment.Ledger
	validate *validator.Validate
}

func registerStatsAPI(
	g *echo.Group,
	authed echo.MiddlewareFunc,
	courses course.Service,
	sessions session.Service,
	ledger enrollment.Ledger,
	validate *validator.Validate,
) {
	api := statsApi{courses: courses, sessions: sessions, ledger: ledger, validate: validate}
	adminOnly := roleMiddleware(session.RoleAdmin)

	g.GET("/stats/catalog", api.catalog, authed, roleMiddleware(session.RoleFaculty, session.RoleAdmin))
	g.GET("/stats/courses", api.utilization, authed, adminOnly)
	g.GET("/stats/users", api.users, authed, adminOnly)
	g.GET("/stats/revenue", api.revenue, authed, adminOnly)
	g.GET("/stats/enrollments", api.enrollments, authed, roleMiddleware(session.RoleStudent))
	g.GET("/stats/enrollments/recent", api.recentEnrollments, authed, adminOnly)
}

func (api *statsApi) catalog(ctx echo.Context) error {
	courses, err := api.courses.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, stats.Catalog(courses))
}

func (api *statsApi) utilization(ctx echo.Context) error {
	courses, err := api.courses.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, stats.Utilization(courses))
}

func (api *statsApi) users(ctx echo.Context) error {
	byRole, err := api.sessions.CountByRole()
	if err != nil {
		return errors.Wrap(err, "counting sessions")
	}
	return ctx.JSON(http.StatusOK, stats.Users(byRole))
}

func (api *statsApi) revenue(ctx echo.Context) error {
	courses, err := api.courses.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, stats.Revenue(courses))
}

func (api *statsApi) enrollments(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}

	courses, err := api.ledger.ListFor(sess)
	if err != nil {
		return errors.Wrap(err, "listing enrolled courses")
	}
	return ctx.JSON(http.StatusOK, stats.Session(courses))
}

func (api *statsApi) recentEnrollments(ctx echo.Context) error {
	var query enrollment.RecentQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding query")
	}
	if err := api.validate.Struct(query); err != nil {
		return errors.Wrap(err, "validating query")
	}
	if query.Limit == 0 {
		query.Limit = enrollment.DefaultRecentLimit
	}

	recent, err := api.ledger.Recent(query.Limit)
	if err != nil {
		return errors.Wrap(err, "listing recent enrollments")
	}
	return ctx.JSON(http.StatusOK, recent)
}

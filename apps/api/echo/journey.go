package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ngazi/core/journey"
)

type journeyApi struct {
	svc journey.Service
}

func registerJourneyAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc journey.Service) {
	api := journeyApi{svc: svc}

	jg := g.Group("/journey", jwt)
	jg.GET("", api.studentView)
	jg.POST("/refresh", api.refreshView)
	jg.GET("/items/:id", api.sessionDetail)

	g.GET("/reports/:id", api.report, jwt)
}

// targetStudentID resolves whose view is being requested: students always
// get their own; admins may look at any student via ?student_id.
func (api *journeyApi) targetStudentID(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	if sid := ctx.QueryParam("student_id"); sid != "" && sid != claims.Subject {
		if !claims.IsAdmin {
			return "", errHttpForbidden
		}
		return sid, nil
	}
	return claims.Subject, nil
}

// Handlers

func (api *journeyApi) studentView(ctx echo.Context) error {
	studentID, err := api.targetStudentID(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.StudentView(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrap(err, "building student view")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *journeyApi) refreshView(ctx echo.Context) error {
	studentID, err := api.targetStudentID(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.RefreshView(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrap(err, "refreshing student view")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *journeyApi) sessionDetail(ctx echo.Context) error {
	studentID, err := api.targetStudentID(ctx)
	if err != nil {
		return err
	}

	detail, err := api.svc.SessionDetail(ctx.Request().Context(), studentID, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "resolving session detail")
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *journeyApi) report(ctx echo.Context) error {
	studentID, err := api.targetStudentID(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.Report(ctx.Request().Context(), studentID, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "fetching report")
	}
	return ctx.JSON(http.StatusOK, view)
}

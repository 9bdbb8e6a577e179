package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
)

// newHTTPError translates a service error into an echo error carrying the
// standard JSON body. Detail is only exposed outside production.
func newHTTPError(err error, includeDetail bool) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse(includeDetail))
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid " + name,
		})
	}
	return uint(id), nil
}

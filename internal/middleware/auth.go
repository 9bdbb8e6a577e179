package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/HUPCF/Due-Diligence-Backend/internal/auth"
	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/logger"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
	"github.com/HUPCF/Due-Diligence-Backend/internal/repository"
)

const currentUserKey = "currentUser"

// LoadUser re-fetches the full user record for an already validated token and
// stores it in the request context. Claims are not trusted for role or
// company: a reassignment must take effect on the next request without
// re-authentication.
func LoadUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized, no token"})
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized, token failed"})
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized, user not found"})
				}
				logger.FromEcho(c).Error("load user", zap.Uint("user_id", claims.UserID), zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{Message: "internal server error"})
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user loaded by LoadUser, or nil outside the secured
// group.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}

// RequireRole gates a route on role membership and fails closed with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized"})
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Message: "user role " + user.Role + " is not authorized to access this route",
				})
			}
			return next(c)
		}
	}
}

package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/HUPCF/Due-Diligence-Backend/internal/auth"
	"github.com/HUPCF/Due-Diligence-Backend/internal/config"
	"github.com/HUPCF/Due-Diligence-Backend/internal/handler"
	"github.com/HUPCF/Due-Diligence-Backend/internal/logger"
	"github.com/HUPCF/Due-Diligence-Backend/internal/metrics"
	"github.com/HUPCF/Due-Diligence-Backend/internal/middleware"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
	"github.com/HUPCF/Due-Diligence-Backend/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	companyHandler *handler.CompanyHandler,
	userHandler *handler.UserHandler,
	checklistHandler *handler.ChecklistHandler,
	responseHandler *handler.ResponseHandler,
	documentHandler *handler.DocumentHandler,
) {
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware())
	e.Use(metrics.Middleware())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes. echo-jwt validates the token, LoadUser re-fetches the
	// full user row so role or company changes apply immediately.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), middleware.LoadUser(users))

	secured.GET("/me", authHandler.Me)

	secured.GET("/checklist/categories", checklistHandler.Categories)
	secured.GET("/checklist/categories/:id/items", checklistHandler.ItemsByCategory)
	secured.GET("/checklist/items", checklistHandler.Items)
	secured.GET("/checklist/items/:id", checklistHandler.Item)

	secured.POST("/responses", responseHandler.Submit)
	secured.GET("/responses", responseHandler.GetByItem)
	secured.GET("/responses/user/:userId", responseHandler.ListForUser)
	secured.PUT("/responses/:id", responseHandler.Update)
	secured.DELETE("/responses/:id/file", responseHandler.DeleteFile)
	secured.GET("/responses/download/:fileName", responseHandler.Download)

	secured.POST("/documents/:userId", documentHandler.Upload)
	secured.GET("/documents/user/:userId", documentHandler.ListForUser)
	secured.DELETE("/documents/:id", documentHandler.Delete)

	// Admin-only routes
	admin := secured.Group("", middleware.RequireRole(model.RoleAdmin))

	admin.POST("/companies", companyHandler.Create)
	admin.GET("/companies", companyHandler.List)
	admin.GET("/companies/:id", companyHandler.Get)
	admin.PUT("/companies/:id", companyHandler.Update)
	admin.DELETE("/companies/:id", companyHandler.Delete)

	admin.POST("/users", userHandler.Create)
	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.Get)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.POST("/users/:id/reset-password", userHandler.ResetPassword)
	admin.POST("/users/:id/send-credentials", userHandler.SendCredentials)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

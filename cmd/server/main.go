package main

import (
	"log"
	"net/http"

	_ "github.com/HUPCF/Due-Diligence-Backend/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/HUPCF/Due-Diligence-Backend/internal/auth"
	"github.com/HUPCF/Due-Diligence-Backend/internal/cache"
	"github.com/HUPCF/Due-Diligence-Backend/internal/config"
	"github.com/HUPCF/Due-Diligence-Backend/internal/db"
	"github.com/HUPCF/Due-Diligence-Backend/internal/handler"
	"github.com/HUPCF/Due-Diligence-Backend/internal/logger"
	"github.com/HUPCF/Due-Diligence-Backend/internal/mail"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
	"github.com/HUPCF/Due-Diligence-Backend/internal/repository"
	"github.com/HUPCF/Due-Diligence-Backend/internal/router"
	"github.com/HUPCF/Due-Diligence-Backend/internal/service"
	"github.com/HUPCF/Due-Diligence-Backend/internal/storage"
)

// @title Due Diligence API
// @version 1.0
// @description Due diligence checklist backend with company scoped responses, document storage, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.Env); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Get().Sync()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Get().Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.ChecklistCategory{},
		&model.ChecklistItem{},
		&model.Response{},
		&model.Document{},
	); err != nil {
		logger.Get().Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Storage gateway and signer share one path resolver so upload targets
	// and signed retrieval URLs always agree on the folder layout.
	resolver := storage.NewPathResolver(cfg.Storage.BasePath)
	blobClient := storage.NewClient(cfg.Storage, resolver)
	signer := storage.NewSigner(cfg.Storage, resolver)

	userRepo := repository.NewUserRepository(gormDB)
	companyRepo := repository.NewCompanyRepository(gormDB)
	checklistRepo := repository.NewChecklistRepository(gormDB)
	responseRepo := repository.NewResponseRepository(gormDB)
	documentRepo := repository.NewDocumentRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	mailer := mail.NewMailer(cfg.SMTP)

	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	companyService := service.NewCompanyService(companyRepo)
	userService := service.NewUserService(userRepo, companyRepo, mailer, cfg.LoginURL)
	checklistService := service.NewChecklistService(checklistRepo, cacheClient)
	responseService := service.NewResponseService(responseRepo, userRepo, blobClient, signer, cfg.Storage.URLExpiry)
	documentService := service.NewDocumentService(documentRepo, userRepo, blobClient, signer, cfg.Storage.URLExpiry)

	debug := !cfg.Production()
	authHandler := handler.NewAuthHandler(authService, debug)
	companyHandler := handler.NewCompanyHandler(companyService, debug)
	userHandler := handler.NewUserHandler(userService, debug)
	checklistHandler := handler.NewChecklistHandler(checklistService, debug)
	responseHandler := handler.NewResponseHandler(responseService, debug)
	documentHandler := handler.NewDocumentHandler(documentService, debug)

	router.Register(
		e,
		cfg,
		userRepo,
		authHandler,
		companyHandler,
		userHandler,
		checklistHandler,
		responseHandler,
		documentHandler,
	)

	addr := ":" + cfg.ServerPort
	logger.Get().Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Get().Fatal("server start", zap.Error(err))
	}
}

package main

import (
	"context"
	"database/sql"
	"log"

	"mepquote/internal/config"
	"mepquote/internal/discovery"
	"mepquote/internal/gmail"
	"mepquote/internal/handler"
	"mepquote/internal/logger"
	mw "mepquote/internal/middleware"
	"mepquote/internal/repository"
	"mepquote/internal/repository/memory"
	"mepquote/internal/repository/postgres"
	"mepquote/internal/router"
	"mepquote/internal/service"
	"mepquote/internal/sse"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	appLogger := logger.New()

	// Repositories: Postgres when DATABASE_URL is set, in-memory otherwise
	var userRepo repository.UserRepository
	var emailRepo repository.EmailRepository
	var quotationRepo repository.QuotationRepository

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		if err := postgres.InitializeDatabase(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		userRepo = postgres.NewPostgresUserRepository(db)
		emailRepo = postgres.NewPostgresEmailRepository(db)
		quotationRepo = postgres.NewPostgresQuotationRepository(db)

		appLogger.Info("Using PostgreSQL repositories")
	} else {
		userRepo = memory.NewInMemoryUserRepository()
		emailRepo = memory.NewInMemoryEmailRepository()
		quotationRepo = memory.NewInMemoryQuotationRepository()

		appLogger.Info("Using in-memory repositories")
	}

	sseManager := sse.NewManager(appLogger)

	// Each discovery run gets a pipeline bound to the user's own token; no
	// shared provider client state.
	newDiscoverer := func(ctx context.Context, accessToken string) (service.Discoverer, error) {
		client, err := gmail.NewClient(ctx, accessToken, appLogger)
		if err != nil {
			return nil, err
		}
		return discovery.NewPipeline(client, cfg.DiscoveryBatchSize, appLogger), nil
	}

	authService := service.NewAuthService(userRepo, appLogger)
	discoveryService := service.NewDiscoveryService(emailRepo, userRepo, newDiscoverer, sseManager, appLogger)
	quotationService := service.NewQuotationService(quotationRepo, emailRepo, appLogger)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mw.RateLimit(10, 20))

	authHandler := handler.NewAuthHandler(authService, cfg, e.Logger)
	emailHandler := handler.NewEmailHandler(discoveryService, authHandler, sseManager, cfg.MaxDiscoverResults, e.Logger)
	quotationHandler := handler.NewQuotationHandler(quotationService, authHandler, e.Logger)

	router.SetupRoutes(e, authHandler, emailHandler, quotationHandler)

	appLogger.Info("Starting server on port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("Failed to start server:", err)
		sseManager.Close()
	}
}

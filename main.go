package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/quickbite/loyalty/api/handlers"
	"github.com/quickbite/loyalty/api/middleware"
	"github.com/quickbite/loyalty/loyalty"
	"github.com/quickbite/loyalty/loyalty/database"
	"github.com/quickbite/loyalty/loyalty/database/repositories"
	"github.com/quickbite/loyalty/loyalty/logger"
	"github.com/quickbite/loyalty/loyalty/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := loyalty.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	customHandler := logger.NewHandler("Loyalty", cfg.Log.Level)
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting QuickBite Loyalty Engine",
		slog.String("version", version),
		slog.String("commit", commit))

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbConfig := database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	}

	db, err := database.New(ctx, dbConfig)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	slog.Info("Initializing database schema...")
	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()))
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	// Repositories
	pointsRepo := repositories.NewPointsRepository(db.BunDB())
	levelRepo := repositories.NewLevelRepository(db.BunDB())
	badgeRepo := repositories.NewBadgeRepository(db.BunDB(), pointsRepo)
	challengeRepo := repositories.NewChallengeRepository(db.BunDB(), pointsRepo)
	rankingRepo := repositories.NewRankingRepository(db.BunDB())

	// Services
	pointsService := services.NewPointsService(pointsRepo, levelRepo)
	badgeService := services.NewBadgeService(badgeRepo, challengeRepo, pointsService)
	challengeService := services.NewChallengeService(challengeRepo, badgeService, pointsService)
	rankingService := services.NewRankingService(
		rankingRepo,
		cfg.Ranking.CacheSize,
		time.Duration(cfg.Ranking.CacheTTL)*time.Second,
	)

	webApp := &handlers.App{
		Config:     cfg,
		DB:         db,
		Points:     pointsService,
		Badges:     badgeService,
		Challenges: challengeService,
		Ranking:    rankingService,
		Version:    version,
	}

	app := fiber.New(fiber.Config{
		AppName:      "QuickBite Loyalty API",
		ServerHeader: "QuickBite-Loyalty",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(cfg.Server.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-API-Key, X-Request-ID",
	}))
	app.Use(middleware.Logging())

	webApp.RegisterRoutes(app)

	go func() {
		slog.Info("HTTP server listening", slog.String("addr", cfg.Server.Addr()))
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			slog.Error("HTTP server stopped", slog.String("error", err.Error()))
			os.Exit(-1)
		}
	}()

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-s

	slog.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}

func corsOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ", ")
}

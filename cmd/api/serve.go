package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/xyz-asif/duetodo/docs"
	"github.com/xyz-asif/duetodo/internal/config"
	"github.com/xyz-asif/duetodo/internal/database"
	"github.com/xyz-asif/duetodo/internal/features/todos"
	"github.com/xyz-asif/duetodo/internal/middleware"
	"github.com/xyz-asif/duetodo/internal/pkg/ratelimit"
	"github.com/xyz-asif/duetodo/internal/routes"
)

func connect(ctx context.Context, cfg *config.Config) (*database.MongoDB, *todos.Repository, error) {
	db, err := database.Connect(ctx, database.Config{
		URI:     cfg.MongoURI,
		DBName:  cfg.MongoDB,
		Timeout: cfg.MongoTimeout,
		MaxPool: cfg.MongoMaxPool,
		MinPool: cfg.MongoMinPool,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	repo, err := todos.NewRepository(ctx, db.Database)
	if err != nil {
		_ = db.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("prepare todos collection: %w", err)
	}
	return db, repo, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := zerolog.Ctx(ctx)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, repo, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info().Str("db", cfg.MongoDB).Msg("connected to MongoDB")

	svc := todos.NewService(repo, *log)

	sweeper := todos.NewSweeper(svc, cfg.SweepInterval, *log)
	sweeper.Start(context.Background())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(*log))
	router.Use(middleware.CORS(cfg.FrontendURL))
	if cfg.RateLimit > 0 {
		limiter := ratelimit.New(cfg.RateLimit, time.Minute)
		limiter.StartCleanup(ctx, 5*time.Minute)
		router.Use(ratelimit.Middleware(limiter))
	}

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
		),
	)

	routes.SetupRoutes(router, routes.Deps{DB: db, Todos: svc})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err = <-serveErr:
		log.Error().Err(err).Msg("server failed")
	}

	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("server forced to shutdown")
	}
	if dcErr := db.Disconnect(shutdownCtx); dcErr != nil {
		log.Error().Err(dcErr).Msg("failed to disconnect from MongoDB")
	}

	log.Info().Msg("server exited")
	return err
}

func sweepOnce(ctx context.Context, cfg *config.Config) error {
	log := zerolog.Ctx(ctx)

	db, repo, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	svc := todos.NewService(repo, *log)
	n, err := svc.RunPastDueSweep(ctx, time.Now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return fmt.Errorf("past-due sweep: %w", err)
	}

	fmt.Printf("marked %d todo(s) past due\n", n)
	return nil
}

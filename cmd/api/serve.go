package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Biriato/ProyectoWeb/internal/database"
	"github.com/Biriato/ProyectoWeb/internal/handlers"
	"github.com/Biriato/ProyectoWeb/internal/metrics"
	"github.com/Biriato/ProyectoWeb/internal/middleware"
	"github.com/Biriato/ProyectoWeb/internal/repository"
	"github.com/Biriato/ProyectoWeb/internal/routes"
	"github.com/Biriato/ProyectoWeb/internal/service"
	"github.com/Biriato/ProyectoWeb/internal/storage"
	"github.com/Biriato/ProyectoWeb/internal/validation"
	"github.com/Biriato/ProyectoWeb/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	cfg, log := a.cfg, a.logger

	if err := database.Migrate(ctx, a.db); err != nil {
		return err
	}

	redisClient, err := redis.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient == nil {
		log.Warn("REDIS_HOST not set, login throttling disabled")
	} else {
		defer redisClient.Close()
	}

	jwtService, err := service.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}

	collectors := metrics.New(prometheus.DefaultRegisterer)
	store := repository.NewStore(a.db)
	scores := service.NewScoreRecomputer(collectors)
	limiter := service.NewLoginLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginLockout)

	authService := service.NewAuthService(store.Users(), jwtService, limiter)
	listService := service.NewListService(store, scores)
	seriesService := service.NewSeriesService(store.Series())
	userService := service.NewUserService(store, scores)

	images, err := storage.NewDiskImageStore(cfg.UploadDir, "series", cfg.UploadMaxBytes)
	if err != nil {
		return err
	}

	checks := map[string]handlers.Pinger{
		"database": func(ctx context.Context) error { return database.Ping(ctx, a.db) },
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	validation.RegisterWithGin()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.UploadMaxBytes

	routes.Setup(router, routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService, collectors),
		List:   handlers.NewListHandler(listService),
		Series: handlers.NewSeriesHandler(seriesService),
		Admin:  handlers.NewAdminHandler(userService),
		Upload: handlers.NewUploadHandler(images, cfg.PublicBaseURL),
		Health: handlers.NewHealthHandler(checks),
	}, routes.Dependencies{
		Logger:         log,
		JWT:            jwtService,
		Metrics:        collectors,
		MetricsHandler: promhttp.Handler(),
		Images:         images,
		CORS:           middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting series service", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

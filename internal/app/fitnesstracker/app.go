// Package fitnesstracker собирает приложение: хранилище, миграции, кэш,
// сервисы, маршруты и HTTP-сервер с корректным завершением по сигналу.
package fitnesstracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/fitness-tracker/internal/cache"
	"github.com/magabrotheeeer/fitness-tracker/internal/config"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/password"
	"github.com/magabrotheeeer/fitness-tracker/internal/migrations"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	logservice "github.com/magabrotheeeer/fitness-tracker/internal/services/activitylog"
	authservice "github.com/magabrotheeeer/fitness-tracker/internal/services/auth"
	"github.com/magabrotheeeer/fitness-tracker/internal/services/authz"
	userservice "github.com/magabrotheeeer/fitness-tracker/internal/services/user"
	planservice "github.com/magabrotheeeer/fitness-tracker/internal/services/workoutplan"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	userService := userservice.NewUserService(db, logger)
	authService := authservice.NewAuthService(db, jwtMaker)
	planService := planservice.NewWorkoutPlanService(db, cacheRedis, logger)
	activityService := logservice.NewActivityLogService(db, cacheRedis, logger)
	resolver := authz.NewResolver(db, db, db)

	if err := bootstrapAdmin(ctx, db, cfg.AdminBootstrap, logger); err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	RegisterRoutes(router, logger, db,
		userService, authService, planService, activityService, resolver)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  *cacheRedis,
	}, nil
}

// bootstrapAdmin идемпотентно создает администратора из конфигурации.
// Если пользователь с таким username уже существует, ничего не делает.
func bootstrapAdmin(ctx context.Context, db *repository.Storage, cfg config.AdminBootstrap, logger *slog.Logger) error {
	const op = "app.bootstrapAdmin"

	if cfg.AdminUsername == "" {
		return nil
	}

	_, err := db.GetUserByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		logger.Info("admin user already exists", slog.String("username", cfg.AdminUsername))
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	id, err := db.CreateUser(ctx, models.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		FullName:     cfg.AdminFullName,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("admin user created",
		slog.String("username", cfg.AdminUsername), slog.Int64("id", id))
	return nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}

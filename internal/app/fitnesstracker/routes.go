// Package fitnesstracker предоставляет маршруты для основного приложения.
package fitnesstracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	logcreate "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/activitylog/create"
	loglist "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/activitylog/list"
	loglistbyuser "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/activitylog/listbyuser"
	logread "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/activitylog/read"
	logremove "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/activitylog/remove"
	logupdate "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/activitylog/update"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/health"
	usercreate "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/user/create"
	userlist "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/user/update"
	plancreate "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workoutplan/create"
	planlist "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workoutplan/list"
	planlistbyuser "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workoutplan/listbyuser"
	planread "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workoutplan/read"
	planremove "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workoutplan/remove"
	plansearch "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workoutplan/search"
	planupdate "github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workoutplan/update"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	logservice "github.com/magabrotheeeer/fitness-tracker/internal/services/activitylog"
	authservice "github.com/magabrotheeeer/fitness-tracker/internal/services/auth"
	"github.com/magabrotheeeer/fitness-tracker/internal/services/authz"
	userservice "github.com/magabrotheeeer/fitness-tracker/internal/services/user"
	planservice "github.com/magabrotheeeer/fitness-tracker/internal/services/workoutplan"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	users *userservice.UserService, auth *authservice.AuthService,
	plans *planservice.WorkoutPlanService, activities *logservice.ActivityLogService,
	resolver *authz.Resolver,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/api/auth/login", login.New(logger, auth).ServeHTTP)
	r.Post("/api/users", usercreate.New(logger, users).ServeHTTP)
	r.Get("/api/workout-plans", planlist.New(logger, plans).ServeHTTP)
	r.Get("/api/workout-plans/search", plansearch.New(logger, plans).ServeHTTP)

	// Группа с аутентификацией Basic или Bearer
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.AuthMiddleware(auth, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Get("/api/users", userlist.New(logger, users).ServeHTTP)
		r.Get("/api/users/{id}", userread.New(logger, users, resolver).ServeHTTP)
		r.Put("/api/users/{id}", userupdate.New(logger, users, resolver).ServeHTTP)
		r.Delete("/api/users/{id}", userremove.New(logger, users, resolver).ServeHTTP)

		r.Post("/api/workout-plans", plancreate.New(logger, plans).ServeHTTP)
		r.Get("/api/workout-plans/{id}", planread.New(logger, plans, resolver).ServeHTTP)
		r.Put("/api/workout-plans/{id}", planupdate.New(logger, plans, resolver).ServeHTTP)
		r.Delete("/api/workout-plans/{id}", planremove.New(logger, plans, resolver).ServeHTTP)
		r.Get("/api/workout-plans/user/{userId}", planlistbyuser.New(logger, plans, resolver).ServeHTTP)
		r.Get("/api/workout-plans/user/{userId}/difficulty/{difficultyLevel}", planlistbyuser.New(logger, plans, resolver).ServeHTTP)

		r.Post("/api/activity-logs", logcreate.New(logger, activities, resolver).ServeHTTP)
		r.Get("/api/activity-logs", loglist.New(logger, activities).ServeHTTP)
		r.Get("/api/activity-logs/{id}", logread.New(logger, activities).ServeHTTP)
		r.Put("/api/activity-logs/{id}", logupdate.New(logger, activities, resolver).ServeHTTP)
		r.Delete("/api/activity-logs/{id}", logremove.New(logger, activities).ServeHTTP)
		r.Get("/api/activity-logs/user/{userId}", loglistbyuser.New(logger, activities, resolver).ServeHTTP)
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

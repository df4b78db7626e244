package router

import (
	"log/slog"
	"net/http"

	"activityBooker/internal/config"
	"activityBooker/internal/http-server/handlers/activity/bookActivity"
	"activityBooker/internal/http-server/handlers/activity/createActivity"
	"activityBooker/internal/http-server/handlers/activity/deleteActivity"
	"activityBooker/internal/http-server/handlers/activity/getActivity"
	"activityBooker/internal/http-server/handlers/activity/getAllActivities"
	"activityBooker/internal/http-server/handlers/activity/updateActivity"
	"activityBooker/internal/http-server/handlers/activity/userBookings"
	"activityBooker/internal/http-server/handlers/health"
	"activityBooker/internal/http-server/handlers/user/deleteUser"
	"activityBooker/internal/http-server/handlers/user/getUser"
	"activityBooker/internal/http-server/handlers/user/login"
	"activityBooker/internal/http-server/handlers/user/logout"
	"activityBooker/internal/http-server/handlers/user/register"
	"activityBooker/internal/http-server/handlers/user/updateUser"
	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/http-server/middleware/mwlogger"
	"activityBooker/internal/http-server/middleware/mwmetrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Storage is everything the HTTP layer reads and writes outside the booking transaction.
type Storage interface {
	register.UserSaver
	login.UserProvider
	getUser.UserProvider
	updateUser.UserUpdater
	deleteUser.UserDeleter
	auth.UserProvider
	createActivity.ActivitySaver
	updateActivity.ActivityUpdater
	deleteActivity.ActivityDeleter
	getActivity.ActivityProvider
	getAllActivities.ActivitiesProvider
	userBookings.BookingsProvider
	health.Pinger
}

func New(log *slog.Logger, storage Storage, booker bookActivity.Booker, cfg *config.Config) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(mwmetrics.New)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	routes := func(r chi.Router) {
		r.Get("/health", health.New(log, storage))

		r.Post("/user/register", register.New(log, storage, cfg.Auth.BcryptCost))
		r.Post("/user/login", login.New(log, storage, cfg.Auth))
		r.Get("/user/{id}", getUser.New(log, storage))

		r.Group(func(r chi.Router) {
			r.Use(auth.New(log, cfg.Auth.Secret, storage))

			r.Post("/user/logout", logout.New(log, cfg.Auth))
			r.Patch("/user/update", updateUser.New(log, storage, cfg.Auth.BcryptCost))
			r.Delete("/user/delete", deleteUser.New(log, storage))

			r.Get("/activity/all", getAllActivities.New(log, storage))
			r.Get("/activity/bookings", userBookings.New(log, storage))
			r.Get("/activity/{id}", getActivity.New(log, storage))
			r.Post("/activity/book/{activityId}", bookActivity.New(log, booker))

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireOrganizer)

				r.Post("/activity/create", createActivity.New(log, storage))
				r.Patch("/activity/update/{id}", updateActivity.New(log, storage))
				r.Delete("/activity/delete/{id}", deleteActivity.New(log, storage))
			})
		})
	}

	routes(router)
	router.Route("/api", routes)

	return router
}

package getUser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type Response struct {
	response.Response
	User *models.User `json:"user,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserProvider
type UserProvider interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
}

func New(log *slog.Logger, userProvider UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.getUser.New"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("user id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user id is required"))
			return
		}

		log = log.With(slog.String("user_id", id))

		user, err := userProvider.UserByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		if err != nil {
			log.Error("failed to get user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get user"))
			return
		}

		render.JSON(w, r, Response{
			Response: response.OK(),
			User:     user,
		})
	}
}

package updateUser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/lib/password"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// Request is a partial update: absent fields keep their stored value.
type Request struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	MobileNumber *string `json:"mobileNumber" validate:"omitempty,min=1"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Password     *string `json:"password" validate:"omitempty,min=8"`
}

type Response struct {
	response.Response
	User *models.User `json:"user,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserUpdater
type UserUpdater interface {
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
}

func New(log *slog.Logger, userUpdater UserUpdater, bcryptCost int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.updateUser.New"

		log := log.With(slog.String("op", op))

		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			log.Error("identity missing from request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("please sign in"))
			return
		}

		log = log.With(slog.String("user_id", identity.UserID))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		patch := models.UserPatch{
			Name:         req.Name,
			MobileNumber: req.MobileNumber,
			Email:        req.Email,
		}

		if req.Password != nil {
			hash, err := password.Hash(*req.Password, bcryptCost)
			if err != nil {
				log.Error("failed to hash password", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update user"))
				return
			}
			patch.PasswordHash = &hash
		}

		user, err := userUpdater.UpdateUser(r.Context(), identity.UserID, patch)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Info("user not found")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user not found"))
			return
		case errors.Is(err, storage.ErrUserExists):
			log.Info("email already in use")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("email already in use"))
			return
		case err != nil:
			log.Error("failed to update user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update user"))
			return
		}

		log.Info("user updated")

		render.JSON(w, r, Response{
			Response: response.OK(),
			User:     user,
		})
	}
}

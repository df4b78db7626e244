package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/lib/password"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Name         string `json:"name" validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role,omitempty" validate:"omitempty,oneof=organizer participant"`
}

type Response struct {
	response.Response
	User *models.User `json:"user,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserSaver
type UserSaver interface {
	SaveUser(ctx context.Context, user *models.User) (string, error)
}

func New(log *slog.Logger, userSaver UserSaver, bcryptCost int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.register.New"

		log := log.With(slog.String("op", op))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.String("email", req.Email))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		hash, err := password.Hash(req.Password, bcryptCost)
		if err != nil {
			log.Error("failed to hash password", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
			return
		}

		user := &models.User{
			Name:         req.Name,
			MobileNumber: req.MobileNumber,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         models.Role(req.Role),
		}

		id, err := userSaver.SaveUser(r.Context(), user)
		if errors.Is(err, storage.ErrUserExists) {
			log.Info("user already exists", slog.String("email", req.Email))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user already exists"))
			return
		}
		if err != nil {
			log.Error("failed to save user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
			return
		}

		log.Info("user registered", slog.String("id", id))

		render.JSON(w, r, Response{
			Response: response.OK(),
			User:     user,
		})
	}
}

package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"activityBooker/internal/config"
	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/jwt"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/lib/password"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	response.Response
	Token string       `json:"token,omitempty"`
	User  *UserSummary `json:"user,omitempty"`
}

type UserSummary struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	MobileNumber string      `json:"mobileNumber"`
	Role         models.Role `json:"role"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserProvider
type UserProvider interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

func New(log *slog.Logger, userProvider UserProvider, authCfg config.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.login.New"

		log := log.With(slog.String("op", op))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		req.Email = strings.TrimSpace(req.Email)

		// the password itself is compared untrimmed
		check := req
		check.Password = strings.TrimSpace(req.Password)

		if err = validator.New().Struct(check); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		log = log.With(slog.String("email", req.Email))

		user, err := userProvider.UserByEmail(r.Context(), req.Email)
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		if err != nil {
			log.Error("failed to get user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log in"))
			return
		}

		if err = password.Compare(user.PasswordHash, req.Password); err != nil {
			log.Info("invalid credentials")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}

		token, err := jwt.NewToken(user, authCfg.Secret, authCfg.TokenTTL)
		if err != nil {
			log.Error("failed to generate token", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log in"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(authCfg.TokenTTL.Seconds()),
			HttpOnly: true,
			Secure:   !authCfg.InsecureCookie,
			SameSite: http.SameSiteNoneMode,
		})

		log.Info("user logged in", slog.String("id", user.ID))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Token:    token,
			User: &UserSummary{
				ID:           user.ID,
				Name:         user.Name,
				Email:        user.Email,
				MobileNumber: user.MobileNumber,
				Role:         user.Role,
			},
		})
	}
}

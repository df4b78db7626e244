package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/jwt"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/render"
)

const CookieName = "accessToken"

type ctxKey struct{}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserProvider
type UserProvider interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
}

// New verifies the bearer credential taken from the accessToken cookie or the
// Authorization header and attaches the caller's identity to the request context.
func New(log *slog.Logger, secret string, users UserProvider) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/auth"),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("please sign in"))
				return
			}

			claims, err := jwt.Parse(tokenString, secret)
			if err != nil {
				log.Info("credential rejected", sl.Err(err))

				msg := "invalid token"
				if errors.Is(err, jwt.ErrTokenExpired) {
					msg = "token expired"
				}

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(msg))
				return
			}

			user, err := users.UserByID(r.Context(), claims.UserID)
			if errors.Is(err, storage.ErrNotFound) {
				log.Info("credential subject no longer exists", slog.String("user_id", claims.UserID))

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user not found"))
				return
			}
			if err != nil {
				log.Error("failed to load user", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), user.Identity())))
		}

		return http.HandlerFunc(fn)
	}
}

// RequireOrganizer rejects callers without the organizer role. It must run after New.
func RequireOrganizer(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok || !identity.IsOrganizer() {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("you are not authorized to perform this action"))
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(models.Identity)

	return identity, ok
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

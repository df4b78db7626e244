package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"activityBooker/internal/http-server/middleware/auth/mocks"
	"activityBooker/internal/lib/jwt"
	"activityBooker/internal/lib/logger/handlers/slogdiscard"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

var testUser = &models.User{
	ID:           "user-1",
	Name:         "Ann",
	Email:        "ann@example.com",
	MobileNumber: "123",
	Role:         models.RoleParticipant,
}

func identityEcho(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	render.JSON(w, r, identity)
}

func token(t *testing.T, ttl time.Duration, key string) string {
	t.Helper()

	tok, err := jwt.NewToken(testUser, key, ttl)
	require.NoError(t, err)

	return tok
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		prepare        func(t *testing.T, r *http.Request)
		mockSetup      func(m *mocks.UserProvider)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Bearer header",
			prepare: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token(t, time.Hour, secret))
			},
			mockSetup: func(m *mocks.UserProvider) {
				m.On("UserByID", mock.Anything, "user-1").Return(testUser, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"userId":"user-1","email":"ann@example.com","mobileNumber":"123","role":"participant"}`,
		},
		{
			name: "Cookie",
			prepare: func(t *testing.T, r *http.Request) {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: token(t, time.Hour, secret)})
			},
			mockSetup: func(m *mocks.UserProvider) {
				m.On("UserByID", mock.Anything, "user-1").Return(testUser, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"userId":"user-1","email":"ann@example.com","mobileNumber":"123","role":"participant"}`,
		},
		{
			name:           "Missing credential",
			prepare:        func(t *testing.T, r *http.Request) {},
			mockSetup:      func(m *mocks.UserProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"please sign in"}`,
		},
		{
			name: "Non-bearer header",
			prepare: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Basic abc")
			},
			mockSetup:      func(m *mocks.UserProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"please sign in"}`,
		},
		{
			name: "Wrong signature",
			prepare: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token(t, time.Hour, "other-secret"))
			},
			mockSetup:      func(m *mocks.UserProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid token"}`,
		},
		{
			name: "Malformed token",
			prepare: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Bearer not.a.token")
			},
			mockSetup:      func(m *mocks.UserProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid token"}`,
		},
		{
			name: "Expired token",
			prepare: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token(t, -time.Minute, secret))
			},
			mockSetup:      func(m *mocks.UserProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"token expired"}`,
		},
		{
			name: "Deleted user",
			prepare: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token(t, time.Hour, secret))
			},
			mockSetup: func(m *mocks.UserProvider) {
				m.On("UserByID", mock.Anything, "user-1").Return(nil, storage.ErrNotFound).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name: "Store failure",
			prepare: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token(t, time.Hour, secret))
			},
			mockSetup: func(m *mocks.UserProvider) {
				m.On("UserByID", mock.Anything, "user-1").Return(nil, errors.New("connection refused")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"internal error"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			users := mocks.NewUserProvider(t)
			tc.mockSetup(users)

			handler := New(logger, secret, users)(http.HandlerFunc(identityEcho))

			req := httptest.NewRequest(http.MethodGet, "/activity/all", nil)
			tc.prepare(t, req)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestRequireOrganizer(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name           string
		identity       *models.Identity
		expectedStatus int
	}{
		{
			name:           "Organizer",
			identity:       &models.Identity{UserID: "u", Role: models.RoleOrganizer},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Participant",
			identity:       &models.Identity{UserID: "u", Role: models.RoleParticipant},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "No identity",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/activity/create", nil)
			if tc.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), *tc.identity))
			}

			rr := httptest.NewRecorder()
			RequireOrganizer(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

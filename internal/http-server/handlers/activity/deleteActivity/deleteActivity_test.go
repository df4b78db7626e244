package deleteActivity

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"activityBooker/internal/http-server/handlers/activity/deleteActivity/mocks"
	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/lib/logger/handlers/slogdiscard"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDeleteActivityHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "Not owner",
			mockErr:        storage.ErrNotOwner,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"you are not authorized to perform this action"}`,
		},
		{
			name:           "Not found",
			mockErr:        storage.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"activity not found"}`,
		},
		{
			name:           "Storage failure",
			mockErr:        errors.New("db down"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to delete activity"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			deleter := mocks.NewActivityDeleter(t)
			deleter.On("DeleteActivity", mock.Anything, "act-1", "org-1").Return(tc.mockErr).Once()

			router := chi.NewRouter()
			router.Delete("/activity/delete/{id}", New(logger, deleter))

			req := httptest.NewRequest(http.MethodDelete, "/activity/delete/act-1", nil)
			req = req.WithContext(auth.WithIdentity(req.Context(), models.Identity{UserID: "org-1", Role: models.RoleOrganizer}))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

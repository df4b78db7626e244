package getActivity

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"activityBooker/internal/http-server/handlers/activity/getActivity/mocks"
	"activityBooker/internal/lib/logger/handlers/slogdiscard"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetActivityHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	seats := 4

	activity := &models.Activity{
		ID:             "act-1",
		OrganizerID:    "org-1",
		Title:          "Kayak",
		Description:    "River tour",
		Location:       "Lake",
		Date:           time.Date(2030, 6, 1, 8, 0, 0, 0, time.UTC),
		ActivityType:   models.ActivityPaid,
		Price:          30,
		TotalSeats:     10,
		AvailableSeats: &seats,
		Organizer:      &models.Organizer{ID: "org-1", Name: "Olga", Email: "olga@example.com", MobileNumber: "555"},
	}

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.ActivityProvider)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			mockSetup: func(m *mocks.ActivityProvider) {
				m.On("ActivityByID", mock.Anything, "act-1").Return(activity, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","activity":{"id":"act-1","organizerId":"org-1","title":"Kayak","description":"River tour",` +
				`"location":"Lake","date":"2030-06-01T08:00:00Z","activityType":"paid","price":30,"totalSeats":10,"availableSeats":4,` +
				`"organizer":{"id":"org-1","name":"Olga","email":"olga@example.com","mobileNumber":"555"}}}`,
		},
		{
			name: "Not found",
			mockSetup: func(m *mocks.ActivityProvider) {
				m.On("ActivityByID", mock.Anything, "act-1").Return(nil, storage.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"activity not found"}`,
		},
		{
			name: "Storage failure",
			mockSetup: func(m *mocks.ActivityProvider) {
				m.On("ActivityByID", mock.Anything, "act-1").Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get activity"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewActivityProvider(t)
			tc.mockSetup(provider)

			router := chi.NewRouter()
			router.Get("/activity/{id}", New(logger, provider))

			req := httptest.NewRequest(http.MethodGet, "/activity/act-1", nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

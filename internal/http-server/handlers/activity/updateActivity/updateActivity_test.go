package updateActivity

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"activityBooker/internal/http-server/handlers/activity/updateActivity/mocks"
	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/lib/logger/handlers/slogdiscard"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateActivityHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	updated := &models.Activity{
		ID:           "act-1",
		OrganizerID:  "org-1",
		Title:        "Evening yoga",
		ActivityType: models.ActivityFree,
		TotalSeats:   10,
	}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.ActivityUpdater)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "Title only",
			requestBody: `{"title":"Evening yoga"}`,
			mockSetup: func(m *mocks.ActivityUpdater) {
				m.On("UpdateActivity", mock.Anything, "act-1", "org-1", mock.MatchedBy(func(p models.ActivityPatch) bool {
					return p.Title != nil && *p.Title == "Evening yoga" &&
						p.Description == nil && p.Location == nil && p.Date == nil &&
						p.ActivityType == nil && p.Price == nil
				})).Return(updated, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Switch to paid",
			requestBody: `{"activityType":"paid","price":12,"date":"2031-01-01T10:00:00Z"}`,
			mockSetup: func(m *mocks.ActivityUpdater) {
				m.On("UpdateActivity", mock.Anything, "act-1", "org-1", mock.MatchedBy(func(p models.ActivityPatch) bool {
					return p.ActivityType != nil && *p.ActivityType == models.ActivityPaid &&
						p.Price != nil && *p.Price == 12 &&
						p.Date != nil && p.Date.Equal(time.Date(2031, 1, 1, 10, 0, 0, 0, time.UTC))
				})).Return(updated, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Seats are immutable",
			requestBody:    `{"totalSeats":50}`,
			mockSetup:      func(m *mocks.ActivityUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "field TotalSeats cannot be changed",
		},
		{
			name:           "Bad date",
			requestBody:    `{"date":"next week"}`,
			mockSetup:      func(m *mocks.ActivityUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "field Date must be an RFC 3339 timestamp",
		},
		{
			name:        "Pricing violation",
			requestBody: `{"price":5}`,
			mockSetup: func(m *mocks.ActivityUpdater) {
				m.On("UpdateActivity", mock.Anything, "act-1", "org-1", mock.Anything).Return(nil, models.ErrInvalidPricing).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  models.ErrInvalidPricing.Error(),
		},
		{
			name:        "Not owner",
			requestBody: `{"title":"x"}`,
			mockSetup: func(m *mocks.ActivityUpdater) {
				m.On("UpdateActivity", mock.Anything, "act-1", "org-1", mock.Anything).Return(nil, storage.ErrNotOwner).Once()
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "you are not authorized to perform this action",
		},
		{
			name:        "Not found",
			requestBody: `{"title":"x"}`,
			mockSetup: func(m *mocks.ActivityUpdater) {
				m.On("UpdateActivity", mock.Anything, "act-1", "org-1", mock.Anything).Return(nil, storage.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "activity not found",
		},
		{
			name:        "Storage failure",
			requestBody: `{"title":"x"}`,
			mockSetup: func(m *mocks.ActivityUpdater) {
				m.On("UpdateActivity", mock.Anything, "act-1", "org-1", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to update activity",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			updater := mocks.NewActivityUpdater(t)
			tc.mockSetup(updater)

			router := chi.NewRouter()
			router.Patch("/activity/update/{id}", New(logger, updater))

			req := httptest.NewRequest(http.MethodPatch, "/activity/update/act-1", bytes.NewBufferString(tc.requestBody))
			req = req.WithContext(auth.WithIdentity(req.Context(), models.Identity{UserID: "org-1", Role: models.RoleOrganizer}))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedError != "" {
				assert.JSONEq(t, `{"status":"Error","error":"`+tc.expectedError+`"}`, rr.Body.String())
			}
		})
	}
}

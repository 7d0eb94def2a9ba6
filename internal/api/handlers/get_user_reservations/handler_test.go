package get_user_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.GetForUserRequest
	err error
}

func (f *fakeService) GetForUser(_ context.Context, req *models.GetForUserRequest) (*models.UserReservationsResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserReservationsResponse{UserID: req.UserID}, nil
}

func newRequest(tenant uuid.UUID, user, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+user+"/reservations?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"userId": user})
	return req.WithContext(middleware.WithTenantID(req.Context(), tenant))
}

func TestHandle_DefaultWindow(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})
	user := uuid.New()

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(uuid.New(), user.String(), ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user, svc.got.UserID)
	assert.Nil(t, svc.got.Start)
	assert.Nil(t, svc.got.End)
}

func TestHandle_ExplicitWindow(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(uuid.New(), uuid.New().String(), "start=2024-01-01T00:00:00Z&end=2024-02-01T00:00:00Z"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.Start)
	require.NotNil(t, svc.got.End)
	assert.True(t, svc.got.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, svc.got.End.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		user  string
		query string
		err   error
		want  int
	}{
		{"invalid user", "12", "", nil, http.StatusBadRequest},
		{"bad start", uuid.New().String(), "start=yesterday", nil, http.StatusBadRequest},
		{"invalid input", uuid.New().String(), "", reservations.ErrInvalidInput, http.StatusBadRequest},
		{"internal", uuid.New().String(), "", reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(uuid.New(), tt.user, tt.query))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

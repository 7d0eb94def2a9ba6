package get_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) GetByID(_ context.Context, tenantID, id uuid.UUID) (*models.ReservationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, TenantID: tenantID, Status: "confirmed"}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
		want int
	}{
		{"found", uuid.New().String(), nil, http.StatusOK},
		{"invalid id", "abc", nil, http.StatusBadRequest},
		{"not found", uuid.New().String(), reservations.ErrReservationNotFound, http.StatusNotFound},
		{"other tenant", uuid.New().String(), reservations.ErrTenantMismatch, http.StatusNotFound},
		{"internal", uuid.New().String(), reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, nopLogger{})
			req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"reservationId": tt.id})
			req = req.WithContext(middleware.WithTenantID(req.Context(), uuid.New()))

			rec := httptest.NewRecorder()
			h.Handle(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

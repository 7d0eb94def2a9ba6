package update_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	updateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *updateReservation.Request
	resp *updateReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateReservation.Request) (*updateReservation.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(tenant uuid.UUID, id string, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"reservationId": id})
	return req.WithContext(middleware.WithTenantID(req.Context(), tenant))
}

func TestHandle_StatusOnly(t *testing.T) {
	tenant, id := uuid.New(), uuid.New()
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &updateReservation.Response{
		ID: id, TenantID: tenant, Start: start, End: start.Add(time.Hour), Status: "completed",
	}}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(tenant, id.String(), `{"status":"completed"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, id, uc.got.ReservationID)
	assert.Equal(t, tenant, uc.got.TenantID)
	require.NotNil(t, uc.got.Status)
	assert.Equal(t, "completed", *uc.got.Status)
	assert.Nil(t, uc.got.Start)
	assert.Nil(t, uc.got.End)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", updateReservation.ErrInvalidRequest, http.StatusBadRequest},
		{"invalid range", updateReservation.ErrInvalidTimeRange, http.StatusBadRequest},
		{"not found", updateReservation.ErrReservationNotFound, http.StatusNotFound},
		{"tenant mismatch", updateReservation.ErrTenantMismatch, http.StatusNotFound},
		{"conflict", updateReservation.ErrConflict, http.StatusConflict},
		{"internal", updateReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(uuid.New(), uuid.New().String(), `{"start":"2024-01-01T10:00:00Z","end":"2024-01-01T12:00:00Z"}`))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(uuid.New(), "42", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *createReservation.Request
	resp *createReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(t *testing.T, tenant, user uuid.UUID, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	ctx := middleware.WithTenantID(req.Context(), tenant)
	ctx = middleware.WithUserID(ctx, user)
	return req.WithContext(ctx)
}

func TestHandle_Created(t *testing.T) {
	tenant, user, resource := uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	uc := &fakeUseCase{resp: &createReservation.Response{
		ID:           uuid.New(),
		TenantID:     tenant,
		ResourceID:   resource,
		ResourceName: "Room A",
		UserID:       user,
		Start:        start,
		End:          end,
		Status:       "confirmed",
	}}
	h := NewHandler(uc, nopLogger{})

	body := fmt.Sprintf(`{"resourceId":"%s","start":"2024-01-01T10:00:00Z","end":"2024-01-01T11:00:00Z"}`, resource)
	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(t, tenant, user, body))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, tenant, uc.got.TenantID)
	assert.Equal(t, user, uc.got.UserID)
	assert.Equal(t, resource, uc.got.ResourceID)
	assert.True(t, uc.got.Start.Equal(start))
	assert.True(t, uc.got.End.Equal(end))

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Room A", resp.ResourceName)
	assert.Equal(t, "2024-01-01T10:00:00Z", resp.Start)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", createReservation.ErrInvalidInput, http.StatusBadRequest},
		{"invalid range", createReservation.ErrInvalidTimeRange, http.StatusBadRequest},
		{"resource not found", createReservation.ErrResourceNotFound, http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: overlap", createReservation.ErrConflict), http.StatusConflict},
		{"internal", createReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})
			body := fmt.Sprintf(`{"resourceId":"%s","start":"2024-01-01T10:00:00Z","end":"2024-01-01T11:00:00Z"}`, uuid.New())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(t, uuid.New(), uuid.New(), body))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_BadBody(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(t, uuid.New(), uuid.New(), `{"resourceId":"x"`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_MissingIdentity(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader("{}"))

	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package get_dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/analytics"
	"github.com/m04kA/SMC-ReservationService/internal/service/analytics/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.SnapshotRequest
	err error
}

func (f *fakeService) GetDashboard(_ context.Context, req *models.SnapshotRequest) (*models.DashboardResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.DashboardResponse{
		UsageTimeline:        []models.TimelinePoint{{Date: "2024-01-01", Value: 12.5}},
		RevenueTimeline:      []models.TimelinePoint{},
		UtilizationBreakdown: []models.BreakdownRow{},
		RevenueBreakdown:     []models.BreakdownRow{},
	}, nil
}

func newRequest(tenant uuid.UUID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard?"+query, nil)
	return req.WithContext(middleware.WithTenantID(req.Context(), tenant))
}

func TestHandle(t *testing.T) {
	tenant := uuid.New()
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(tenant, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tenant, svc.got.TenantID)
	assert.Nil(t, svc.got.UserID)
	assert.Contains(t, rec.Body.String(), `"usageTimeline":[{"date":"2024-01-01","value":12.5}]`)
}

func TestHandle_UserFilter(t *testing.T) {
	user := uuid.New()
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(uuid.New(), "userId="+user.String()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.UserID)
	assert.Equal(t, user, *svc.got.UserID)
}

func TestHandle_Errors(t *testing.T) {
	t.Run("bad user filter", func(t *testing.T) {
		svc := &fakeService{}
		rec := httptest.NewRecorder()
		NewHandler(svc, nopLogger{}).Handle(rec, newRequest(uuid.New(), "userId=me"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.got)
	})

	t.Run("internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&fakeService{err: analytics.ErrInternal}, nopLogger{}).Handle(rec, newRequest(uuid.New(), ""))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("missing tenant", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard", nil)
		NewHandler(&fakeService{}, nopLogger{}).Handle(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

package catalogservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/circuit"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newServer(t *testing.T, tenant uuid.UUID, resources []Resource) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/internal/tenants/{tenantId}/resources", func(w http.ResponseWriter, req *http.Request) {
		if mux.Vars(req)["tenantId"] != tenant.String() {
			_ = json.NewEncoder(w).Encode([]Resource{})
			return
		}
		_ = json.NewEncoder(w).Encode(resources)
	})
	r.HandleFunc("/internal/tenants/{tenantId}/resources/{resourceId}", func(w http.ResponseWriter, req *http.Request) {
		for _, res := range resources {
			if res.ID.String() == mux.Vars(req)["resourceId"] && mux.Vars(req)["tenantId"] == tenant.String() {
				_ = json.NewEncoder(w).Encode(res)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetResource(t *testing.T) {
	tenant := uuid.New()
	room := Resource{ID: uuid.New(), TenantID: tenant, Name: "Room A", Kind: "room"}
	srv := newServer(t, tenant, []Resource{room})

	c := NewClient(srv.URL, time.Second, circuit.Settings{FailureThreshold: 3}, nopLogger{})

	got, err := c.GetResource(context.Background(), tenant, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "Room A", got.Name)
	assert.Equal(t, tenant, got.TenantID)

	_, err = c.GetResource(context.Background(), tenant, uuid.New())
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = c.GetResource(context.Background(), uuid.New(), room.ID)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestClient_ListResources(t *testing.T) {
	tenant := uuid.New()
	srv := newServer(t, tenant, []Resource{
		{ID: uuid.New(), TenantID: tenant, Name: "Room B"},
		{ID: uuid.New(), TenantID: tenant, Name: "Projector"},
	})

	c := NewClient(srv.URL, time.Second, circuit.Settings{}, nopLogger{})

	list, err := c.ListResources(context.Background(), tenant)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Projector", list[1].Name)
}

func TestClient_NotFoundDoesNotOpenBreaker(t *testing.T) {
	tenant := uuid.New()
	srv := newServer(t, tenant, nil)
	c := NewClient(srv.URL, time.Second, circuit.Settings{FailureThreshold: 1, Timeout: time.Minute}, nopLogger{})

	for i := 0; i < 3; i++ {
		_, err := c.GetResource(context.Background(), tenant, uuid.New())
		assert.ErrorIs(t, err, ErrResourceNotFound)
	}
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, circuit.Settings{FailureThreshold: 2, Timeout: time.Minute}, nopLogger{})

	_, err := c.ListResources(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	_, err = c.ListResources(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = c.ListResources(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUnavailable)
}

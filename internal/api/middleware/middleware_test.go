package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tenant := uuid.New()
	user := uuid.New()

	var (
		gotTenant uuid.UUID
		gotUser   uuid.UUID
		hasUser   bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant, _ = GetTenantID(r.Context())
		gotUser, hasUser = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := Auth(next)

	t.Run("tenant and user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderTenantID, tenant.String())
		req.Header.Set(HeaderUserID, user.String())
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, tenant, gotTenant)
		assert.True(t, hasUser)
		assert.Equal(t, user, gotUser)
	})

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"missing tenant", map[string]string{}},
		{"malformed tenant", map[string]string{HeaderTenantID: "42"}},
		{"nil tenant", map[string]string{HeaderTenantID: uuid.Nil.String()}},
		{"missing user", map[string]string{HeaderTenantID: tenant.String()}},
		{"malformed user", map[string]string{HeaderTenantID: tenant.String(), HeaderUserID: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

type observation struct {
	method, route string
	status        int
}

type fakeHTTPMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (m *fakeHTTPMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, observation{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/reservations/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations/abc", nil))

	require.Len(t, m.obs, 1)
	assert.Equal(t, observation{http.MethodGet, "/reservations/{id}", http.StatusNotFound}, m.obs[0])
}

package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/progress-tracker/config"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/storage/sqlite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newDeps(t *testing.T) RouterDeps {
	t.Helper()
	db, err := OpenStore(context.Background(), &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: sqlite.MemoryPath,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return RouterDeps{
		ServiceName:    "progress-api",
		Version:        "test",
		Logger:         zap.NewNop(),
		DB:             db,
		AllowedOrigins: []string{"*"},
	}
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOpenStore_RejectsUnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestOpenRedis_DisabledWithoutAddr(t *testing.T) {
	client, err := OpenRedis(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestBuildRouter_ServesAPIAndOperationalRoutes(t *testing.T) {
	r := BuildRouter(newDeps(t))

	w := serve(r, http.MethodPost, "/api/v1/projects", `{"title":"T","description":"D","goal":5,"unit":"hours"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = serve(r, http.MethodGet, "/api/v1/projects", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"projects":[`)

	w = serve(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"db":"up"`)

	w = serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "progress_tracker_http_requests_total")
}

func TestBuildRouter_CORS(t *testing.T) {
	r := BuildRouter(newDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBuildRouter_RateLimitAppliesToAPIOnly(t *testing.T) {
	dep := newDeps(t)
	dep.RateLimitRPS = 0.001
	dep.RateLimitBurst = 1
	r := BuildRouter(dep)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/projects", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/api/v1/projects", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "").Code)
}

func TestBuildRouter_WithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := OpenRedis(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	dep := newDeps(t)
	dep.Redis = client
	dep.CacheTTL = time.Minute
	dep.Policy = domain.ProgressPolicy{}
	r := BuildRouter(dep)

	w := serve(r, http.MethodPost, "/api/v1/projects", `{"title":"T","description":"D","goal":5,"unit":"hours"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/projects", "").Code)
	assert.True(t, mr.Exists("tracker:projects"))

	w = serve(r, http.MethodPost, "/api/v1/projects/1/progress", `{"value":2}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, mr.Exists("tracker:projects"))

	w = serve(r, http.MethodGet, "/api/v1/projects/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"value":2`)

	w = serve(r, http.MethodGet, "/health", "")
	assert.Contains(t, w.Body.String(), `"cache":"up"`)
}

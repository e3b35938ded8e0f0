package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/logger"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/interfaces/http/handler"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, c.Request.Method)
}

func TestDomainGroup(t *testing.T) {
	dg := NewDomainGroup("kitchen", "/kitchen").
		GET("/menu", okHandler).
		POST("/menu", okHandler).
		PUT("/menu/:id", okHandler).
		DELETE("/menu/:id", okHandler)

	assert.Equal(t, "kitchen", dg.Name())
	assert.Len(t, dg.routes, 4)

	engine := gin.New()
	NewRouter(engine, WithAPIVersion("v2")).Register(dg).Setup()

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/v2/kitchen/menu"},
		{http.MethodPost, "/api/v2/kitchen/menu"},
		{http.MethodPut, "/api/v2/kitchen/menu/1"},
		{http.MethodDelete, "/api/v2/kitchen/menu/1"},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.method, w.Body.String())
	}
}

func TestDomainGroup_Middleware(t *testing.T) {
	var calls int
	dg := NewDomainGroup("kitchen", "/kitchen").
		Use(func(c *gin.Context) {
			calls++
			c.Next()
		}).
		GET("/menu", okHandler)

	engine := gin.New()
	NewRouter(engine).Register(dg).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kitchen/menu", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, calls)
}

func TestProductionRoutes(t *testing.T) {
	dg := ProductionRoutes(&handler.ProductionOrderHandler{}, &handler.ReportHandler{})
	engine := gin.New()
	NewRouter(engine).Register(dg).Setup()

	routes := map[string]bool{}
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /api/v1/production/orders/from-orders",
		"POST /api/v1/production/orders/from-range",
		"GET /api/v1/production/orders",
		"GET /api/v1/production/orders/:id",
		"GET /api/v1/production/orders/:id/pivots",
		"PUT /api/v1/production/orders/:id/products/:product_id",
		"POST /api/v1/production/orders/:id/status",
		"DELETE /api/v1/production/orders/:id",
		"POST /api/v1/production/order-line-changes",
		"GET /api/v1/production/reports/rows",
		"GET /api/v1/production/customer-orders/:id/detail",
		"POST /api/v1/production/customer-orders/production-status/recompute",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func newTestEngine(cfg EngineConfig) *gin.Engine {
	return NewEngine(cfg, Handlers{
		ProductionOrders: &handler.ProductionOrderHandler{},
		Reports:          &handler.ReportHandler{},
		System:           handler.NewSystemHandler("production-api-test"),
	}, zap.NewNop())
}

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(EngineConfig{
		ServiceName: "production-api-test",
		MaxBodySize: 16,
		CORS: middleware.CORSConfig{
			AllowOrigins: []string{"https://planta.example.com"},
			AllowMethods: []string{http.MethodGet},
		},
	})

	t.Run("health with request id and security headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	})

	t.Run("incoming request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil)
		req.Header.Set(logger.RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "req-123", w.Header().Get(logger.RequestIDHeader))
	})

	t.Run("swagger is hidden when disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/production/orders", nil)
		req.Header.Set("Origin", "https://planta.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://planta.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("body limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/production/orders/from-orders",
			strings.NewReader(strings.Repeat("x", 1024)))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestNewEngine_SwaggerWhitelist(t *testing.T) {
	engine := newTestEngine(EngineConfig{
		Swagger: middleware.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = "192.168.1.10:5000"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serveSwagger(cfg SwaggerConfig, remoteAddr string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "swagger")
	})

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection(t *testing.T) {
	tests := []struct {
		name       string
		cfg        SwaggerConfig
		remoteAddr string
		want       int
	}{
		{"disabled", SwaggerConfig{Enabled: false}, "127.0.0.1:1234", http.StatusNotFound},
		{"enabled without whitelist", SwaggerConfig{Enabled: true}, "203.0.113.9:1234", http.StatusOK},
		{"whitelisted ip", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, "127.0.0.1:1234", http.StatusOK},
		{"whitelisted cidr", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, "10.2.3.4:1234", http.StatusOK},
		{"outside whitelist", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "127.0.0.1"}}, "192.168.1.5:1234", http.StatusForbidden},
		{"invalid entries ignored", SwaggerConfig{Enabled: true, AllowedIPs: []string{"not-an-ip", "300.0.0.0/8"}}, "127.0.0.1:1234", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveSwagger(tt.cfg, tt.remoteAddr)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestIsIPAllowed(t *testing.T) {
	_, network, _ := net.ParseCIDR("2001:db8::/32")
	allowed := []net.IP{net.ParseIP("127.0.0.1")}

	assert.True(t, isIPAllowed(net.ParseIP("127.0.0.1"), allowed, nil))
	assert.True(t, isIPAllowed(net.ParseIP("2001:db8::1"), nil, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(net.ParseIP("2001:db9::1"), allowed, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(nil, allowed, nil))
}

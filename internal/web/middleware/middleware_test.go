package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAllowSubnet(t *testing.T) {
	_, allowed, err := net.ParseCIDR("192.168.1.0/24")
	assert.NoError(t, err)

	testCases := []struct {
		name           string
		subnet         *net.IPNet
		remoteAddr     string
		expectedStatus int
	}{
		{name: "no restriction", subnet: nil, remoteAddr: "10.0.0.1:1234", expectedStatus: http.StatusOK},
		{name: "inside subnet", subnet: allowed, remoteAddr: "192.168.1.20:5555", expectedStatus: http.StatusOK},
		{name: "bare ip inside subnet", subnet: allowed, remoteAddr: "192.168.1.20", expectedStatus: http.StatusOK},
		{name: "outside subnet", subnet: allowed, remoteAddr: "10.0.0.1:1234", expectedStatus: http.StatusForbidden},
		{name: "unparsable address", subnet: allowed, remoteAddr: "not-an-ip", expectedStatus: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/categories", nil)
			req.RemoteAddr = tc.remoteAddr
			rec := httptest.NewRecorder()

			AllowSubnet(tc.subnet)(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(2)(okHandler)

	statuses := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		req.RemoteAddr = "10.1.1.1:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestRateLimit_Disabled(t *testing.T) {
	handler := RateLimit(0)(okHandler)

	for range 5 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()

	SecureHeaders()(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogger_PassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()

	Logger(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

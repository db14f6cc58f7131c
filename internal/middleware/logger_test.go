package middleware_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/middleware"
)

func loggedRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger())
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/invoices", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	r := loggedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_EchoesCallerSuppliedID(t *testing.T) {
	r := loggedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
	req.Header.Set("X-Request-ID", "gw-12345")
	r.ServeHTTP(w, req)

	assert.Equal(t, "gw-12345", w.Header().Get("X-Request-ID"))
}

func TestLogger_WritesRequestLine(t *testing.T) {
	buf := captureLog(t)
	r := loggedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices?page=2", nil)
	req.Header.Set("X-Request-ID", "gw-12345")
	r.ServeHTTP(w, req)

	line := buf.String()
	require.NotEmpty(t, line)
	assert.Contains(t, line, "req=gw-12345")
	assert.Contains(t, line, "GET /invoices?page=2")
	assert.Contains(t, line, "status=200")
}

func TestLogger_SkipsHealthProbes(t *testing.T) {
	buf := captureLog(t)
	r := loggedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String())
}

func TestRecovery_ReturnsEnvelopeOn500(t *testing.T) {
	captureLog(t)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestID())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name     string
		enabled  bool
		origins  string
		wantsNil bool
	}{
		{"disabled", false, "https://console.example.com", true},
		{"enabled without origins", true, "", true},
		{"enabled with origins", true, "https://console.example.com,https://ops.example.com", false},
		{"origins with surrounding whitespace", true, " https://console.example.com , https://ops.example.com ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			if tt.wantsNil {
				assert.Nil(t, middleware)
			} else {
				assert.NotNil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	t.Run("comma separated", func(t *testing.T) {
		origins := parseOrigins("https://console.example.com,https://ops.example.com")
		assert.Equal(t, []string{"https://console.example.com", "https://ops.example.com"}, origins)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		origins := parseOrigins(" https://console.example.com , https://ops.example.com ")
		assert.Equal(t, []string{"https://console.example.com", "https://ops.example.com"}, origins)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, parseOrigins(""))
	})
}

func corsTestRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	if middleware := createCORSMiddleware(enabled, "https://console.example.com", slog.Default()); middleware != nil {
		router.Use(middleware)
	}
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func TestCORSIntegration(t *testing.T) {
	t.Run("headers added when enabled", func(t *testing.T) {
		router := corsTestRouter(true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://console.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://console.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no headers when disabled", func(t *testing.T) {
		router := corsTestRouter(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://console.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight request", func(t *testing.T) {
		router := corsTestRouter(true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://console.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://console.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}

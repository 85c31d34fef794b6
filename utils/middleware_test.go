package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestCacheControl(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		maxAge time.Duration
		want   string
	}{
		{"disabled", 0, "no-cache"},
		{"week", 7 * 24 * time.Hour, "private, max-age=604800"},
		{"minute", time.Minute, "private, max-age=60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/", CacheControl(tt.maxAge), func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if got := w.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheControl_override(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CacheControl(0))
	router.GET("/media", CacheControl(time.Hour), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media", nil))
	if got := w.Header().Get("Cache-Control"); got != "private, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

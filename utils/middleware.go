package utils

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CacheControl sets the browser caching policy, a zero maxAge disables caching.
// Handlers further down the chain can still override the header
func CacheControl(maxAge time.Duration) gin.HandlerFunc {
	value := "no-cache"
	if maxAge > 0 {
		value = "private, max-age=" + strconv.Itoa(int(maxAge/time.Second))
	}
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}

type errorLogWriter struct {
	gin.ResponseWriter
	c *gin.Context
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.Status()
	if status >= 400 {
		body := string(b)
		if strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
			body = "<html page>"
		}
		log.Printf("[DEBUG ERROR]: %s %s, Status %d, Body: %s", w.c.Request.Method, w.c.Request.URL.Path, status, body)
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs failed responses in debug mode. It doesn't work with GZIP
func ErrorLogMiddleware(c *gin.Context) {
	c.Writer = &errorLogWriter{c: c, ResponseWriter: c.Writer}
	c.Next()
}

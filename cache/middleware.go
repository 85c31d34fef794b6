package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// KeyFunc returns the cache key for the request, usually derived from the viewer
type KeyFunc func(c *gin.Context) string

type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ViewerKey separates pages rendered for different users (and anonymous ones)
func ViewerKey(viewerID func(c *gin.Context) uint64) KeyFunc {
	return func(c *gin.Context) string {
		return strconv.FormatUint(viewerID(c), 10) + ":" + c.Request.URL.RequestURI()
	}
}

// Page serves successful GET responses from store for ttl. Store errors are logged and bypassed
func Page(store Store, ttl time.Duration, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ttl <= 0 || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		k := key(c)
		if data, err := store.Get(k); err == nil {
			page := cachedPage{}
			if err = json.Unmarshal(data, &page); err == nil {
				c.Header("X-Page-Cache", "hit")
				c.Data(page.Status, page.ContentType, page.Body)
				c.Abort()
				return
			}
			log.Printf("Page cache decode error for %s: %v", k, err)
		} else if !errors.Is(err, ErrMiss) {
			log.Printf("Page cache get error for %s: %v", k, err)
		}

		writer := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()
		c.Writer = writer.ResponseWriter

		if writer.Status() != http.StatusOK {
			return
		}
		data, err := json.Marshal(cachedPage{
			Status:      writer.Status(),
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err = store.Set(k, data, ttl); err != nil {
			log.Printf("Page cache set error for %s: %v", k, err)
		}
	}
}

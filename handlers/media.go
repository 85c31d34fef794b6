package handlers

import (
	"path"
	"strings"
	"yatube/storage"

	"github.com/gin-gonic/gin"
)

const mediaRoot = "posts/"

// Media serves post images and thumbnails from the default storage
func Media(c *gin.Context) {
	p := strings.TrimPrefix(c.Param("path"), "/")
	if p == "" || path.Clean(p) != p || !strings.HasPrefix(p, mediaRoot) {
		NotFound(c)
		return
	}
	storage.GetDefaultStorage().Serve(p, c.Request, c.Writer)
}

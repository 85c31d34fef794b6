package auth

import (
	"net/http"
	"net/url"
	"strings"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

const LoginURL = "/auth/login/"

// User is authenticated and posseses the required permissions
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds auth checks + User pre-loading.
// Anonymous requests to HTML routes are sent to the login page, JSON routes answer 401.
type Router struct {
	Base gin.IRoutes
	JSON bool
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, required []models.Permission) {
	user := CurrentUser(c)
	if user.ID == 0 {
		if cr.JSON {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		} else {
			c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
		}
		c.Abort()
		return
	}
	if !user.HasPermissions(required) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	handler(c, user)
}

func (cr *Router) POST(path string, handler HandlerFunc, required ...models.Permission) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc, required ...models.Permission) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

// Handle registers handler for both GET and POST, as form pages need
func (cr *Router) Handle(path string, handler HandlerFunc, required ...models.Permission) {
	cr.GET(path, handler, required...)
	cr.POST(path, handler, required...)
}

// LoginRedirectURL sends the user to the login page and back to next afterwards, e.g.:
//   - /auth/login/?next=/posts/1/edit/
func LoginRedirectURL(next string) string {
	// Slashes stay readable
	return LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext only allows local absolute paths, anything else falls back to "/"
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

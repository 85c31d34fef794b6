package auth

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const (
	CSRFField  = "csrf_token"
	CSRFHeader = "X-CSRF-Token"
	csrfCookie = "csrf"
)

// CSRF rejects unsafe requests (POST etc.) without a valid token, taken from the
// CSRFField form value or the CSRFHeader header. The secret lives in a SameSite=Lax cookie
func CSRF(key []byte, maxAge int, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(key,
		csrf.CookieName(csrfCookie),
		csrf.FieldName(CSRFField),
		csrf.RequestHeader(CSRFHeader),
		csrf.Path("/"),
		csrf.MaxAge(maxAge),
		csrf.Secure(secure),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailed)),
	)
	return func(c *gin.Context) {
		passed := false
		protect(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

func csrfFailed(w http.ResponseWriter, r *http.Request) {
	reason := "csrf token invalid"
	if err := csrf.FailureReason(r); err != nil {
		reason = "csrf: " + err.Error()
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(gin.H{"error": reason})
}

// CSRFToken is the token to embed in forms of the current response
func CSRFToken(c *gin.Context) string {
	return csrf.Token(c.Request)
}

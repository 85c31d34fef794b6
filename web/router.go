package web

import (
	"crypto/sha256"
	"embed"
	"html/template"
	"net/http"
	"time"
	"yatube/auth"
	"yatube/cache"
	"yatube/config"
	"yatube/handlers"
	"yatube/models"
	"yatube/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "token"
	mediaCacheTime    = 7 * 24 * time.Hour
)

//go:embed templates
var templatesFS embed.FS

// Templates parses all page templates, each page defines a template named after its path, e.g. "posts/index.html"
func Templates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{
			"date": utils.FormatDate,
		}).
		ParseFS(templatesFS, "templates/*.html", "templates/*/*.html")
}

// NewPageCache shares cached pages through Redis when REDIS_ADDR is set
func NewPageCache() cache.Store {
	if config.REDIS_ADDR != "" {
		return cache.NewRedisStore(config.REDIS_ADDR, config.REDIS_PASSWORD, config.REDIS_DB)
	}
	return cache.NewMemoryStore()
}

// SessionOptions keeps the session cookie away from cross-site requests
func SessionOptions() sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   config.SESSION_MAX_AGE,
		Secure:   config.TLS_DOMAINS != "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// csrfKey derives the CSRF cookie key from SESSION_KEY
func csrfKey() []byte {
	key := sha256.Sum256([]byte("csrf:" + config.SESSION_KEY))
	return key[:]
}

func NewRouter(sessionStore sessions.Store, pageCache cache.Store) *gin.Engine {
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", auth.CSRFHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	templates, err := Templates()
	if err != nil {
		panic(err)
	}
	router.SetHTMLTemplate(templates)

	sessionStore.Options(SessionOptions())
	router.Use(sessions.Sessions(sessionCookieName, sessionStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media/", "/ws"})))
	}
	router.Use(utils.CacheControl(0)) // No cache by default, individual end-points can override that
	router.Use(auth.CSRF(csrfKey(), config.SESSION_MAX_AGE, config.TLS_DOMAINS != ""))

	// Public pages
	pageCacheTime := time.Duration(config.PAGE_CACHE_SECONDS) * time.Second
	router.GET("/", cache.Page(pageCache, pageCacheTime, cache.ViewerKey(auth.ViewerID)), handlers.Index)
	router.GET("/group/:slug/", handlers.GroupPosts)
	router.GET("/profile/:username/", handlers.Profile)
	router.GET("/posts/:post_id/", handlers.PostDetail)
	router.GET("/media/*path", utils.CacheControl(mediaCacheTime), handlers.Media)

	// Pages for logged in users only
	authRouter := &auth.Router{Base: router}
	authRouter.Handle("/create/", handlers.PostCreate)
	authRouter.Handle("/posts/:post_id/edit/", handlers.PostEdit)
	authRouter.POST("/posts/:post_id/comment/", handlers.AddComment)
	authRouter.GET("/follow/", handlers.FollowIndex)
	authRouter.GET("/profile/:username/follow/", handlers.ProfileFollow)
	authRouter.GET("/profile/:username/unfollow/", handlers.ProfileUnfollow)

	// Accounts
	for _, route := range []struct {
		path    string
		handler gin.HandlerFunc
	}{
		{"/auth/login/", handlers.Login},
		{"/auth/signup/", handlers.Signup},
		{"/auth/logout/", handlers.Logout},
	} {
		router.GET(route.path, route.handler)
		router.POST(route.path, route.handler)
	}

	// JSON end-points
	jsonRouter := &auth.Router{Base: router, JSON: true}
	jsonRouter.GET("/ws", handlers.WebSocket)
	jsonRouter.POST("/admin/users/delete", handlers.UserDelete) // PermissionAdmin or own account check (in handler)
	jsonRouter.GET("/admin/groups/list", handlers.GroupList, models.PermissionAdmin)
	jsonRouter.POST("/admin/groups/save", handlers.GroupSave, models.PermissionAdmin)
	jsonRouter.POST("/admin/groups/delete", handlers.GroupDelete, models.PermissionAdmin)

	router.NoRoute(handlers.NotFound)
	return router
}

package auth

import (
	"yatube/db"
	"yatube/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	userIdKey  = "id"
	contextKey = "yatube/user"
)

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) error {
	s.Clear()
	s.Set(userIdKey, user.ID)
	return s.Save()
}

func (s *Session) LogoutUser() error {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

// User loads the session user with its grants, ID is 0 when anonymous
func (s *Session) User() (user models.User) {
	id, ok := s.Get(userIdKey).(uint64)
	if !ok || id == 0 {
		return
	}
	user.ID = id
	if db.Instance.Preload("Grants").First(&user).Error != nil {
		return models.User{}
	}
	return
}

// CurrentUser returns the request user, loading it at most once per request
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(contextKey); ok {
		return v.(*models.User)
	}
	user := LoadSession(c).User()
	c.Set(contextKey, &user)
	return &user
}

// ViewerID is 0 for anonymous requests
func ViewerID(c *gin.Context) uint64 {
	return CurrentUser(c).ID
}

// Login starts a session for user, the current request sees it immediately
func Login(c *gin.Context, user *models.User) error {
	c.Set(contextKey, user)
	return LoadSession(c).LoginUser(user)
}

func Logout(c *gin.Context) error {
	c.Set(contextKey, &models.User{})
	return LoadSession(c).LogoutUser()
}

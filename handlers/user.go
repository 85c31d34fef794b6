package handlers

import (
	"net/http"
	"yatube/auth"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserDeleteRequest struct {
	ID uint64 `json:"id" form:"id" binding:"required"`
}

// UserDelete removes an account with everything it authored.
// Admins can delete anybody, other users only themselves.
func UserDelete(c *gin.Context, user *models.User) {
	r := UserDeleteRequest{}
	err := c.ShouldBindWith(&r, binding.JSON)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if r.ID != user.ID && !user.HasPermission(models.PermissionAdmin) {
		c.JSON(http.StatusForbidden, NopeResponse)
		return
	}
	media, err := models.AuthorMedia(r.ID)
	if err != nil {
		serverError(c, "UserDelete", err, DBError1Response)
		return
	}
	if err = models.UserDelete(r.ID); err != nil {
		serverError(c, "UserDelete", err, DBError2Response)
		return
	}
	removeMedia(media...)
	if r.ID == user.ID {
		_ = auth.Logout(c)
	}
	c.JSON(http.StatusOK, OKResponse)
}

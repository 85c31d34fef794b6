package handlers

import (
	"errors"
	"net/http"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

type GroupSaveRequest struct {
	ID          uint64 `json:"id" form:"id"`
	Title       string `json:"title" form:"title" binding:"required,max=200"`
	Slug        string `json:"slug" form:"slug" binding:"required,max=50"`
	Description string `json:"description" form:"description"`
}

type GroupDeleteRequest struct {
	ID uint64 `json:"id" form:"id" binding:"required"`
}

func GroupList(c *gin.Context, user *models.User) {
	groups, err := models.GroupList()
	if err != nil {
		serverError(c, "GroupList", err, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GroupSave creates a Group (ID 0) or updates an existing one
func GroupSave(c *gin.Context, user *models.User) {
	r := GroupSaveRequest{}
	err := c.ShouldBindWith(&r, binding.JSON)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if r.ID != 0 {
		if _, err = models.GroupByID(r.ID); errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, NotFoundResponse)
			return
		} else if err != nil {
			serverError(c, "GroupSave", err, DBError1Response)
			return
		}
	}
	group := models.Group{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
	}
	if err = models.GroupSave(&group); err != nil {
		// Most likely a duplicate slug
		serverError(c, "GroupSave", err, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, group)
}

// GroupDelete keeps the posts of the group, they just lose it
func GroupDelete(c *gin.Context, user *models.User) {
	r := GroupDeleteRequest{}
	err := c.ShouldBindWith(&r, binding.JSON)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err = models.GroupDelete(r.ID); err != nil {
		serverError(c, "GroupDelete", err, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

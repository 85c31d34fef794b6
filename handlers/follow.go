package handlers

import (
	"net/http"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

func FollowIndex(c *gin.Context, user *models.User) {
	page, err := models.PostsPage(c.Query("page"), models.PostsFollowedBy(user.ID))
	if err != nil {
		serverError(c, "FollowIndex", err, DBError1Response)
		return
	}
	render(c, http.StatusOK, "posts/follow.html", gin.H{
		"title":    "Избранные авторы",
		"page_obj": page,
	})
}

func ProfileFollow(c *gin.Context, user *models.User) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		notFoundOrError(c, "ProfileFollow", err)
		return
	}
	if _, err = models.FollowCreate(user.ID, author.ID); err != nil {
		serverError(c, "ProfileFollow", err, DBError2Response)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}

func ProfileUnfollow(c *gin.Context, user *models.User) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		notFoundOrError(c, "ProfileUnfollow", err)
		return
	}
	if _, err = models.FollowDelete(user.ID, author.ID); err != nil {
		serverError(c, "ProfileUnfollow", err, DBError2Response)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}

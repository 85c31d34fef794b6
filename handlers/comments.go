package handlers

import (
	"net/http"
	"yatube/forms"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

// AddComment redisplays the post page with the form errors when the text is empty
func AddComment(c *gin.Context, user *models.User) {
	post, ok := loadPost(c)
	if !ok {
		return
	}
	form := forms.BindComment(c)
	if !form.Valid() {
		renderPostDetail(c, &post, form)
		return
	}
	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Text:     form.Text,
	}
	if err := models.CommentCreate(&comment); err != nil {
		serverError(c, "AddComment", err, DBError1Response)
		return
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}

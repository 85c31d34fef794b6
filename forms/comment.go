package forms

import "github.com/gin-gonic/gin"

type CommentForm struct {
	Text   string `form:"text" json:"text" validate:"required"`
	Errors Errors `form:"-" json:"errors"`
}

func NewCommentForm() CommentForm {
	return CommentForm{Errors: Errors{}}
}

func BindComment(c *gin.Context) (form CommentForm) {
	form.Errors = Errors{}
	bind(c, &form, form.Errors)
	return
}

func (f *CommentForm) Valid() bool {
	return len(f.Errors) == 0
}

package forms

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"net/http"
	"strconv"
	"yatube/config"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	invalidImage = "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."
	imageTooBig  = "Файл слишком большой."
	invalidGroup = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."
)

type PostForm struct {
	Text   string `form:"text" json:"text" validate:"required"`
	Group  string `form:"group" json:"group" validate:"omitempty,number"`
	Errors Errors `form:"-" json:"errors"`

	Image     *multipart.FileHeader `form:"-" json:"-"`
	ImageMime string                `form:"-" json:"-"`
	groupID   *uint64
}

// NewPostForm prefills the form with the current values of post
func NewPostForm(post *models.Post) PostForm {
	form := PostForm{Errors: Errors{}}
	if post == nil {
		return form
	}
	form.Text = post.Text
	if post.GroupID != nil {
		form.Group = strconv.FormatUint(*post.GroupID, 10)
	}
	return form
}

// BindPost reads and validates a submitted post. The group must exist and the
// optional image must be a GIF, JPEG or PNG within MAX_UPLOAD_MB
func BindPost(c *gin.Context) (form PostForm) {
	form.Errors = Errors{}
	bind(c, &form, form.Errors)
	if form.Group != "" && !form.Errors.Has("group") {
		form.checkGroup()
	}
	header, err := c.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			form.Errors.Add("image", invalidImage)
		}
		return
	}
	form.Image = header
	form.checkImage()
	return
}

func (f *PostForm) Valid() bool {
	return len(f.Errors) == 0
}

// GroupID is the validated group selection, nil for none or while the form has errors
func (f *PostForm) GroupID() *uint64 {
	if !f.Valid() {
		return nil
	}
	return f.groupID
}

func (f *PostForm) checkGroup() {
	id, err := strconv.ParseUint(f.Group, 10, 64)
	if err != nil {
		f.Errors.Add("group", invalidGroup)
		return
	}
	group, err := models.GroupByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			f.Errors.Add("group", invalidGroup)
		} else {
			f.Errors.Add(NonFieldErrors, err.Error())
		}
		return
	}
	f.groupID = &group.ID
}

func (f *PostForm) checkImage() {
	if f.Image.Size > int64(config.MAX_UPLOAD_MB)<<20 {
		f.Errors.Add("image", imageTooBig)
		return
	}
	file, err := f.Image.Open()
	if err != nil {
		f.Errors.Add("image", invalidImage)
		return
	}
	defer file.Close()
	_, format, err := image.DecodeConfig(file)
	if err != nil {
		f.Errors.Add("image", invalidImage)
		return
	}
	f.ImageMime = "image/" + format
}

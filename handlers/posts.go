package handlers

import (
	"log"
	"net/http"
	"yatube/auth"
	"yatube/db"
	"yatube/forms"
	"yatube/models"
	"yatube/storage"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	IndexTitle     = "Это главная страница проекта Yatube"
	postTitleRunes = 30
	noSpaceLeft    = "Недостаточно места для сохранения файла."
)

func Index(c *gin.Context) {
	page, err := models.PostsPage(c.Query("page"), models.AllPosts)
	if err != nil {
		serverError(c, "Index", err, DBError1Response)
		return
	}
	render(c, http.StatusOK, "posts/index.html", gin.H{
		"title":    IndexTitle,
		"page_obj": page,
	})
}

func GroupPosts(c *gin.Context) {
	group, err := models.GroupBySlug(c.Param("slug"))
	if err != nil {
		notFoundOrError(c, "GroupPosts", err)
		return
	}
	page, err := models.PostsPage(c.Query("page"), models.PostsInGroup(group.ID))
	if err != nil {
		serverError(c, "GroupPosts", err, DBError2Response)
		return
	}
	render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"title":    "Записи сообщества " + group.Title,
		"group":    group,
		"page_obj": page,
	})
}

func Profile(c *gin.Context) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		notFoundOrError(c, "Profile", err)
		return
	}
	page, err := models.PostsPage(c.Query("page"), models.PostsByAuthor(author.ID))
	if err != nil {
		serverError(c, "Profile", err, DBError2Response)
		return
	}
	following := false
	if viewer := auth.CurrentUser(c); viewer.ID != 0 && viewer.ID != author.ID {
		if following, err = models.IsFollowing(viewer.ID, author.ID); err != nil {
			serverError(c, "Profile", err, DBError3Response)
			return
		}
	}
	render(c, http.StatusOK, "posts/profile.html", gin.H{
		"title":      "Профайл пользователя " + author.FullName(),
		"author":     author,
		"page_obj":   page,
		"following":  following,
		"post_count": page.Count,
	})
}

func PostDetail(c *gin.Context) {
	post, ok := loadPost(c)
	if !ok {
		return
	}
	renderPostDetail(c, &post, forms.NewCommentForm())
}

// PostCreate shows the empty form (GET) or creates the post (POST)
func PostCreate(c *gin.Context, user *models.User) {
	if c.Request.Method != http.MethodPost {
		renderPostForm(c, forms.NewPostForm(nil), nil)
		return
	}
	form := forms.BindPost(c)
	if checkFreeSpace(&form); !form.Valid() {
		renderPostForm(c, form, nil)
		return
	}
	post := models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  form.GroupID(),
	}
	stored := ""
	err := db.Instance.Transaction(func(tx *gorm.DB) (err error) {
		if err = models.PostCreateTx(tx, &post); err != nil {
			return err
		}
		stored, err = attachImage(tx, &post, &form)
		return err
	})
	if err != nil {
		removeMedia(stored)
		serverError(c, "PostCreate", err, DBError1Response)
		return
	}
	post.Author = *user
	NotifyFollowers(&post)
	c.Redirect(http.StatusFound, profileURL(user.Username))
}

// PostEdit works like PostCreate for the author, everybody else is sent to the post page
func PostEdit(c *gin.Context, user *models.User) {
	post, ok := loadPost(c)
	if !ok {
		return
	}
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, postURL(post.ID))
		return
	}
	if c.Request.Method != http.MethodPost {
		renderPostForm(c, forms.NewPostForm(&post), &post)
		return
	}
	form := forms.BindPost(c)
	if checkFreeSpace(&form); !form.Valid() {
		renderPostForm(c, form, &post)
		return
	}
	oldImage, oldThumb := post.Image, post.Thumb
	stored := ""
	err := db.Instance.Transaction(func(tx *gorm.DB) (err error) {
		if err = models.PostUpdateTx(tx, &post, form.Text, form.GroupID()); err != nil {
			return err
		}
		stored, err = attachImage(tx, &post, &form)
		return err
	})
	if err != nil {
		removeMedia(stored)
		serverError(c, "PostEdit", err, DBError1Response)
		return
	}
	if form.Image != nil {
		removeMedia(oldImage, oldThumb)
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}

func loadPost(c *gin.Context) (post models.Post, ok bool) {
	id, ok := paramID(c, "post_id")
	if !ok {
		NotFound(c)
		return
	}
	post, err := models.PostByID(id)
	if err != nil {
		notFoundOrError(c, "loadPost", err)
		return post, false
	}
	return post, true
}

func renderPostDetail(c *gin.Context, post *models.Post, form forms.CommentForm) {
	comments, err := models.PostComments(post.ID)
	if err != nil {
		serverError(c, "PostDetail", err, DBError2Response)
		return
	}
	postCount, err := models.AuthorPostCount(post.AuthorID)
	if err != nil {
		serverError(c, "PostDetail", err, DBError3Response)
		return
	}
	render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"title":      "Пост " + utils.TruncateRunes(post.Text, postTitleRunes),
		"post":       post,
		"comments":   comments,
		"form":       form,
		"post_count": postCount,
	})
}

// renderPostForm is shared by create (post == nil) and edit
func renderPostForm(c *gin.Context, form forms.PostForm, post *models.Post) {
	groups, err := models.GroupList()
	if err != nil {
		serverError(c, "renderPostForm", err, DBError4Response)
		return
	}
	data := gin.H{
		"title":   "Новый пост",
		"form":    form,
		"groups":  groups,
		"is_edit": post != nil,
	}
	if post != nil {
		data["title"] = "Редактировать пост"
		data["post"] = post
	}
	render(c, http.StatusOK, "posts/create_post.html", data)
}

// checkFreeSpace rejects an upload the storage has no room for
func checkFreeSpace(form *forms.PostForm) {
	if form.Image == nil || form.Errors.Has("image") {
		return
	}
	if storage.GetDefaultStorage().GetFreeSpace() < uint64(form.Image.Size) {
		form.Errors.Add("image", noSpaceLeft)
	}
}

// attachImage stores the uploaded image (if any) and links it to the post within tx.
// The returned path is set once the file is stored, the caller removes it if tx fails
func attachImage(tx *gorm.DB, post *models.Post, form *forms.PostForm) (stored string, err error) {
	if form.Image == nil {
		return "", nil
	}
	file, err := form.Image.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	path := post.NewImagePath(form.Image.Filename)
	if _, err = storage.GetDefaultStorage().Save(path, file, form.ImageMime); err != nil {
		return "", err
	}
	return path, models.PostSetImage(tx, post, path)
}

// removeMedia deletes replaced files, failures only leave orphans behind
func removeMedia(paths ...string) {
	s := storage.GetDefaultStorage()
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := s.Delete(path); err != nil {
			log.Printf("Error deleting media %s: %v", path, err)
		}
	}
}

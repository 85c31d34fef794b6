package models

import (
	"path"
	"strconv"
	"strings"
	"yatube/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ThumbTodo   = 0
	ThumbDone   = 1
	ThumbFailed = 2

	// PostOrder is the order of every post listing: newest first
	PostOrder = "pub_date DESC, id DESC"

	MediaURLPrefix = "/media/"
)

type Post struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	Text        string  `gorm:"type:text;not null" json:"text"`
	PubDate     int64   `gorm:"autoCreateTime;index" json:"pub_date"`
	AuthorID    uint64  `gorm:"not null;index" json:"author_id"`
	Author      User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID     *uint64 `gorm:"index" json:"group_id"` // can be null
	Group       *Group  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Image       string  `gorm:"type:varchar(300)" json:"image"`
	Thumb       string  `gorm:"type:varchar(300)" json:"thumb"`
	ThumbStatus uint8   `gorm:"not null;default:0" json:"-"`
}

func PostCreate(post *Post) error {
	return PostCreateTx(db.Instance, post)
}

func PostCreateTx(tx *gorm.DB, post *Post) error {
	return tx.Omit(clause.Associations).Create(post).Error
}

// PostByID loads the post with its author and group
func PostByID(id uint64) (post Post, err error) {
	err = db.Instance.Preload("Author").Preload("Group").First(&post, id).Error
	return
}

// PostUpdate changes the editable fields; a nil groupID clears the group
func PostUpdate(post *Post, text string, groupID *uint64) error {
	return PostUpdateTx(db.Instance, post, text, groupID)
}

func PostUpdateTx(tx *gorm.DB, post *Post, text string, groupID *uint64) error {
	post.Text = text
	post.GroupID = groupID
	if groupID == nil {
		post.Group = nil
	}
	return tx.Model(post).Select("Text", "GroupID").Updates(Post{Text: text, GroupID: groupID}).Error
}

// PostSetImage points the post at a newly stored image, the thumbnail will be regenerated
func PostSetImage(tx *gorm.DB, post *Post, imagePath string) error {
	post.Image = imagePath
	post.Thumb = ""
	post.ThumbStatus = ThumbTodo
	return tx.Model(post).Select("Image", "Thumb", "ThumbStatus").Updates(Post{Image: imagePath}).Error
}

// NewImagePath returns a fresh location for an attachment of this post, e.g.:
//   - posts/12/6f1c1c8e-0c8f-4a55-9d4b-3d5b8c2f6a10.gif
func (p Post) NewImagePath(fileName string) string {
	return "posts/" + strconv.FormatUint(p.ID, 10) + "/" + uuid.New().String() + strings.ToLower(path.Ext(fileName))
}

// ThumbPath derives the thumbnail location from the image one. Thumbs are always JPEG
func (p Post) ThumbPath() string {
	if p.Image == "" {
		return ""
	}
	return strings.TrimSuffix(p.Image, path.Ext(p.Image)) + "_thumb.jpg"
}

func (p Post) ImageURL() string {
	if p.Image == "" {
		return ""
	}
	return MediaURLPrefix + p.Image
}

// DisplayURL prefers the thumbnail when it has been generated
func (p Post) DisplayURL() string {
	if p.Thumb != "" {
		return MediaURLPrefix + p.Thumb
	}
	return p.ImageURL()
}

func AuthorPostCount(authorID uint64) (count int64, err error) {
	err = db.Instance.Model(&Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return
}

// AuthorMedia lists the stored files (images and thumbnails) of all posts by the author
func AuthorMedia(authorID uint64) (paths []string, err error) {
	var posts []Post
	err = db.Instance.Select("image", "thumb").Where("author_id = ? AND image <> ''", authorID).Find(&posts).Error
	for _, p := range posts {
		paths = append(paths, p.Image)
		if p.Thumb != "" {
			paths = append(paths, p.Thumb)
		}
	}
	return
}

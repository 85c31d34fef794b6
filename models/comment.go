package models

import (
	"yatube/db"

	"gorm.io/gorm/clause"
)

type Comment struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	Created  int64  `gorm:"autoCreateTime;index" json:"created"`
	PostID   uint64 `gorm:"not null;index" json:"post_id"`
	Post     Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID uint64 `gorm:"not null" json:"author_id"`
	Author   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text     string `gorm:"type:text;not null" json:"text"`
}

func CommentCreate(comment *Comment) error {
	return db.Instance.Omit(clause.Associations).Create(comment).Error
}

// PostComments returns the comments of a post, newest first
func PostComments(postID uint64) (comments []Comment, err error) {
	err = db.Instance.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created DESC, id DESC").
		Find(&comments).Error
	return
}

func PostCommentCount(postID uint64) (count int64, err error) {
	err = db.Instance.Model(&Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return
}

package models

import (
	"yatube/db"

	"gorm.io/gorm/clause"
)

// Follow is a directed edge: User subscribes to the posts of Author.
// Each pair is stored at most once.
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UserID    uint64 `gorm:"not null;index:uniq_follow,unique,priority:1"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"not null;index:uniq_follow,unique,priority:2;index:idx_follow_author"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// FollowCreate adds the edge unless it exists already. Following yourself is a no-op
func FollowCreate(userID, authorID uint64) (created bool, err error) {
	if userID == authorID {
		return false, nil
	}
	follow := Follow{
		UserID:   userID,
		AuthorID: authorID,
	}
	result := db.Instance.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	return result.RowsAffected > 0, result.Error
}

// FollowDelete removes the edge if present
func FollowDelete(userID, authorID uint64) (deleted bool, err error) {
	result := db.Instance.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&Follow{})
	return result.RowsAffected > 0, result.Error
}

func IsFollowing(userID, authorID uint64) (bool, error) {
	var count int64
	err := db.Instance.Model(&Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error
	return count > 0, err
}

// FollowerIDs returns the ids of everyone following the author
func FollowerIDs(authorID uint64) (ids []uint64, err error) {
	err = db.Instance.Model(&Follow{}).Where("author_id = ?", authorID).Pluck("user_id", &ids).Error
	return
}

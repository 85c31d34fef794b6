package models

import (
	"yatube/db"
)

type Group struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string `gorm:"type:varchar(50);index:uniq_slug,unique;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

// GroupSave creates the group when ID is 0 and updates it otherwise
func GroupSave(group *Group) error {
	if group.ID == 0 {
		return db.Instance.Create(group).Error
	}
	return db.Instance.Select("Title", "Slug", "Description").Updates(group).Error
}

func GroupBySlug(slug string) (group Group, err error) {
	err = db.Instance.First(&group, "slug = ?", slug).Error
	return
}

func GroupByID(id uint64) (group Group, err error) {
	err = db.Instance.First(&group, id).Error
	return
}

func GroupList() (groups []Group, err error) {
	err = db.Instance.Order("title").Find(&groups).Error
	return
}

// GroupDelete keeps the posts of the group, their group_id is set to NULL by the foreign key
func GroupDelete(id uint64) error {
	return db.Instance.Delete(&Group{ID: id}).Error
}

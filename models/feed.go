package models

import (
	"yatube/config"
	"yatube/db"
	"yatube/paginator"

	"gorm.io/gorm"
)

type Scope func(*gorm.DB) *gorm.DB

// AllPosts does not filter anything
func AllPosts(tx *gorm.DB) *gorm.DB {
	return tx
}

func PostsInGroup(groupID uint64) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("group_id = ?", groupID)
	}
}

func PostsByAuthor(authorID uint64) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("author_id = ?", authorID)
	}
}

// PostsFollowedBy limits the listing to the authors the user follows
func PostsFollowedBy(userID uint64) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		authors := db.Instance.Model(&Follow{}).Select("author_id").Where("user_id = ?", userID)
		return tx.Where("author_id IN (?)", authors)
	}
}

// PostsPage returns one page of posts (newest first) matching all scopes
func PostsPage(rawPage string, scopes ...Scope) (paginator.Page[Post], error) {
	tx := db.Instance.Model(&Post{})
	for _, scope := range scopes {
		tx = tx.Scopes(scope)
	}
	return paginator.Paginate[Post](tx, PostOrder, config.POSTS_PER_PAGE, rawPage, "Author", "Group")
}

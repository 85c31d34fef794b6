package handlers

import (
	"encoding/json"
	"log"
	"time"
	"yatube/models"
)

const (
	TypeNewPost = "new_post"
)

type Message struct {
	Type  string `json:"type"`
	Stamp int64  `json:"stamp"`
}

type NewPostMessage struct {
	Message
	Data *models.Post `json:"data"`
}

func newPostMessage(post *models.Post) (m NewPostMessage) {
	m.Message.Type = TypeNewPost
	m.Message.Stamp = time.Now().UnixMilli()
	m.Data = post
	return
}

// NotifyFollowers pushes the new post to every connected follower of its author
func NotifyFollowers(post *models.Post) {
	if readers.empty() {
		return
	}
	followers, err := models.FollowerIDs(post.AuthorID)
	if err != nil {
		log.Printf("NotifyFollowers error for post %d: %v", post.ID, err)
		return
	}
	data, err := json.Marshal(newPostMessage(post))
	if err != nil {
		log.Printf("NotifyFollowers encode error for post %d: %v", post.ID, err)
		return
	}
	for _, userID := range followers {
		readers.sendTo(userID, data)
	}
}

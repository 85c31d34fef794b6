package processing

import (
	"log"
	"time"
	"yatube/config"
	"yatube/db"
	"yatube/models"
	"yatube/storage"
)

const batchSize = 20

// StartProcessing creates missing thumbnails forever, sleeping PROCESSING_INTERVAL seconds when idle
func StartProcessing() {
	for {
		if processPending() == 0 {
			time.Sleep(time.Duration(config.PROCESSING_INTERVAL) * time.Second)
		}
	}
}

// processPending handles one batch of posts with an image but no thumbnail yet
// and returns how many it looked at
func processPending() int {
	var posts []models.Post
	err := db.Instance.
		Where("image <> '' AND thumb_status = ?", models.ThumbTodo).
		Order("id").
		Limit(batchSize).
		Find(&posts).Error
	if err != nil {
		log.Printf("processPending error: %v", err)
		return 0
	}
	if len(posts) == 0 {
		return 0
	}
	s := storage.GetDefaultStorage()
	for i := range posts {
		start := time.Now()
		status := processOne(&posts[i], s)
		log.Printf("Thumb, post: %d, result: %d, time: %v", posts[i].ID, status, time.Since(start).Milliseconds())
	}
	return len(posts)
}

// processOne stores the thumbnail and records the outcome on the post
func processOne(post *models.Post, s storage.StorageAPI) uint8 {
	status := uint8(models.ThumbDone)
	thumbPath, err := createThumb(post, s)
	if err != nil {
		log.Printf("Error creating thumbnail for post %d (%s): %v", post.ID, post.Image, err)
		status = models.ThumbFailed
		thumbPath = ""
	}
	// The image may have been replaced in the meantime, the new one will be picked up next time
	err = db.Instance.
		Model(&models.Post{}).
		Where("id = ? AND image = ?", post.ID, post.Image).
		Select("Thumb", "ThumbStatus").
		Updates(models.Post{Thumb: thumbPath, ThumbStatus: status}).Error
	if err != nil {
		log.Printf("Error saving thumbnail status for post %d: %v", post.ID, err)
		return models.ThumbFailed
	}
	post.Thumb = thumbPath
	post.ThumbStatus = status
	return status
}

package processing

import (
	"bytes"
	"yatube/config"
	"yatube/models"
	"yatube/storage"
	"yatube/utils"
)

// createThumb loads the post image, scales it down to the THUMB_SIZE box and saves a JPEG next to it
func createThumb(post *models.Post, s storage.StorageAPI) (string, error) {
	original := bytes.Buffer{}
	if _, err := s.Load(post.Image, &original); err != nil {
		return "", err
	}
	thumb := bytes.Buffer{}
	if _, err := utils.CreateThumb(uint(config.THUMB_SIZE), &original, &thumb); err != nil {
		return "", err
	}
	path := post.ThumbPath()
	if _, err := s.Save(path, &thumb, "image/jpeg"); err != nil {
		return "", err
	}
	return path, nil
}

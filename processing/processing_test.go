package processing

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"yatube/config"
	"yatube/db"
	"yatube/models"
	"yatube/storage"
)

func setup(t *testing.T) (storage.StorageAPI, models.User) {
	t.Helper()
	db.OpenTest(t)
	if err := models.Init(); err != nil {
		t.Fatal(err)
	}
	models.PasswordCost = 4
	bucket := storage.Bucket{Name: "test", StorageType: storage.StorageTypeFile, Path: t.TempDir()}
	s, err := storage.NewStorage(&bucket)
	if err != nil {
		t.Fatal(err)
	}
	storage.SetDefaultStorage(s)
	user, err := models.UserCreate("painter", "", "secret-password", "", "")
	if err != nil {
		t.Fatal(err)
	}
	oldSize := config.THUMB_SIZE
	config.THUMB_SIZE = 40
	t.Cleanup(func() { config.THUMB_SIZE = oldSize })
	return s, user
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 255, A: 255})
	}
	buf := bytes.Buffer{}
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProcessPending(t *testing.T) {
	s, user := setup(t)

	good := models.Post{Text: "with picture", AuthorID: user.ID}
	broken := models.Post{Text: "missing file", AuthorID: user.ID}
	plain := models.Post{Text: "no picture", AuthorID: user.ID}
	for _, p := range []*models.Post{&good, &broken, &plain} {
		if err := models.PostCreate(p); err != nil {
			t.Fatal(err)
		}
	}
	good.Image = good.NewImagePath("picture.png")
	if _, err := s.Save(good.Image, bytes.NewReader(pngImage(t, 200, 100)), "image/png"); err != nil {
		t.Fatal(err)
	}
	if err := models.PostSetImage(db.Instance, &good, good.Image); err != nil {
		t.Fatal(err)
	}
	if err := models.PostSetImage(db.Instance, &broken, broken.NewImagePath("gone.png")); err != nil {
		t.Fatal(err)
	}

	if n := processPending(); n != 2 {
		t.Fatalf("processPending() = %d, want 2", n)
	}
	if n := processPending(); n != 0 {
		t.Fatalf("second processPending() = %d, want 0", n)
	}

	tests := []struct {
		name       string
		id         uint64
		wantStatus uint8
		wantThumb  bool
	}{
		{"good", good.ID, models.ThumbDone, true},
		{"broken", broken.ID, models.ThumbFailed, false},
		{"plain", plain.ID, models.ThumbTodo, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := models.PostByID(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			if post.ThumbStatus != tt.wantStatus {
				t.Errorf("ThumbStatus = %d, want %d", post.ThumbStatus, tt.wantStatus)
			}
			if (post.Thumb != "") != tt.wantThumb {
				t.Errorf("Thumb = %q", post.Thumb)
			}
		})
	}

	post, _ := models.PostByID(good.ID)
	buf := bytes.Buffer{}
	if _, err := s.Load(post.Thumb, &buf); err != nil {
		t.Fatal(err)
	}
	thumb, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("thumbnail is not a JPEG: %v", err)
	}
	if size := thumb.Bounds().Size(); size.X != 40 || size.Y != 20 {
		t.Errorf("thumbnail size = %v, want 40x20", size)
	}
	if post.DisplayURL() != "/media/"+post.Thumb {
		t.Errorf("DisplayURL() = %q", post.DisplayURL())
	}
}

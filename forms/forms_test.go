package forms

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"yatube/db"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func init() {
	gin.SetMode(gin.TestMode)
}

func formContext(values url.Values) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c
}

func multipartContext(t *testing.T, values map[string]string, fileName string, content []byte) *gin.Context {
	t.Helper()
	body := bytes.Buffer{}
	writer := multipart.NewWriter(&body)
	for k, v := range values {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	part, err := writer.CreateFormFile("image", fileName)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write(content)
	_ = writer.Close()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", &body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c
}

func TestBindComment(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantErr  bool
		wantText string
	}{
		{"empty", "", true, ""},
		{"spaces only", "   \n\t", true, ""},
		{"valid", "  first comment ", false, "first comment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := BindComment(formContext(url.Values{"text": {tt.text}}))
			if form.Valid() == tt.wantErr {
				t.Fatalf("Valid() = %v, errors: %v", form.Valid(), form.Errors)
			}
			if tt.wantErr && form.Errors["text"] != messages["required"] {
				t.Errorf("text error = %q", form.Errors["text"])
			}
			if !tt.wantErr && form.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", form.Text, tt.wantText)
			}
		})
	}
}

func TestBindSignup(t *testing.T) {
	valid := url.Values{
		"username": {"leo.tolstoy"},
		"email":    {"leo@example.com"},
		"password": {"war and peace"},
	}
	with := func(key, value string) url.Values {
		out := url.Values{}
		for k, v := range valid {
			out[k] = v
		}
		out.Set(key, value)
		return out
	}
	tests := []struct {
		name      string
		values    url.Values
		wantField string
	}{
		{"valid", valid, ""},
		{"missing username", with("username", ""), "username"},
		{"bad username", with("username", "leo tolstoy"), "username"},
		{"bad email", with("email", "leo"), "email"},
		{"short password", with("password", "1234567"), "password"},
		{"long first name", with("first_name", strings.Repeat("a", 151)), "first_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := BindSignup(formContext(tt.values))
			if tt.wantField == "" {
				if !form.Valid() {
					t.Fatalf("unexpected errors: %v", form.Errors)
				}
				return
			}
			if !form.Errors.Has(tt.wantField) {
				t.Errorf("expected error for %s, got %v", tt.wantField, form.Errors)
			}
		})
	}
}

func TestBindLogin_keepsPasswordSpaces(t *testing.T) {
	form := BindLogin(formContext(url.Values{"username": {" leo "}, "password": {" secret "}}))
	if !form.Valid() {
		t.Fatalf("unexpected errors: %v", form.Errors)
	}
	if form.Username != "leo" || form.Password != " secret " {
		t.Errorf("got username %q password %q", form.Username, form.Password)
	}
}

func TestBindPost(t *testing.T) {
	db.OpenTest(t)
	if err := models.Init(); err != nil {
		t.Fatal(err)
	}
	group := models.Group{Title: "Test Group", Slug: "test-group"}
	if err := models.GroupSave(&group); err != nil {
		t.Fatal(err)
	}
	groupID := strconv.FormatUint(group.ID, 10)

	tests := []struct {
		name      string
		values    url.Values
		wantField string
		wantGroup bool
	}{
		{"text only", url.Values{"text": {"hello"}}, "", false},
		{"with group", url.Values{"text": {"hello"}, "group": {groupID}}, "", true},
		{"empty text", url.Values{"text": {"  "}, "group": {groupID}}, "text", false},
		{"unknown group", url.Values{"text": {"hello"}, "group": {"999"}}, "group", false},
		{"garbage group", url.Values{"text": {"hello"}, "group": {"abc"}}, "group", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := BindPost(formContext(tt.values))
			if tt.wantField == "" && !form.Valid() {
				t.Fatalf("unexpected errors: %v", form.Errors)
			}
			if tt.wantField != "" && !form.Errors.Has(tt.wantField) {
				t.Fatalf("expected error for %s, got %v", tt.wantField, form.Errors)
			}
			if got := form.GroupID() != nil; got != tt.wantGroup {
				t.Errorf("GroupID() set = %v, want %v", got, tt.wantGroup)
			}
		})
	}
}

func TestBindPost_image(t *testing.T) {
	db.OpenTest(t)
	if err := models.Init(); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name     string
		content  []byte
		wantErr  bool
		wantMime string
	}{
		{"gif", smallGIF, false, "image/gif"},
		{"not an image", []byte("plain text"), true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := multipartContext(t, map[string]string{"text": "with image"}, "small.gif", tt.content)
			form := BindPost(c)
			if form.Errors.Has("image") != tt.wantErr {
				t.Fatalf("image error = %v, want %v (%v)", form.Errors.Has("image"), tt.wantErr, form.Errors)
			}
			if form.ImageMime != tt.wantMime {
				t.Errorf("ImageMime = %q, want %q", form.ImageMime, tt.wantMime)
			}
		})
	}
}

func TestNewPostForm(t *testing.T) {
	groupID := uint64(7)
	form := NewPostForm(&models.Post{Text: "text", GroupID: &groupID})
	if form.Text != "text" || form.Group != "7" {
		t.Errorf("got %+v", form)
	}
	if empty := NewPostForm(nil); empty.Text != "" || empty.Errors == nil {
		t.Errorf("got %+v", empty)
	}
}

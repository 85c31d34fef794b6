package web

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"yatube/auth"
	"yatube/cache"
	"yatube/db"
	"yatube/models"
	"yatube/paginator"
	"yatube/storage"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "password123"

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

type testEnv struct {
	t       *testing.T
	router  *gin.Engine
	cache   cache.Store
	storage storage.StorageAPI
}

// viewContext mirrors the JSON rendering (?format=json) of the template context
type viewContext struct {
	Title     string                      `json:"title"`
	CSRFToken string                      `json:"csrf_token"`
	PageObj   paginator.Page[models.Post] `json:"page_obj"`
	Group     *models.Group               `json:"group"`
	Author    *models.User                `json:"author"`
	Following bool                        `json:"following"`
	Post      *models.Post                `json:"post"`
	Comments  []models.Comment            `json:"comments"`
	IsEdit    bool                        `json:"is_edit"`
	PostCount int64                       `json:"post_count"`
	Groups    []models.Group              `json:"groups"`
	Form      struct {
		Text   string            `json:"text"`
		Group  string            `json:"group"`
		Errors map[string]string `json:"errors"`
	} `json:"form"`
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db.OpenTest(t)
	if err := models.Init(); err != nil {
		t.Fatal(err)
	}
	models.PasswordCost = bcrypt.MinCost
	bucket := storage.Bucket{Name: "test", StorageType: storage.StorageTypeFile, Path: t.TempDir()}
	s, err := storage.NewStorage(&bucket)
	if err != nil {
		t.Fatal(err)
	}
	storage.SetDefaultStorage(s)
	pageCache := cache.NewMemoryStore()
	return &testEnv{
		t:       t,
		router:  NewRouter(cookie.NewStore([]byte("test-session-key")), pageCache),
		cache:   pageCache,
		storage: s,
	}
}

func (e *testEnv) user(username string) models.User {
	e.t.Helper()
	user, err := models.UserCreate(username, username+"@example.com", testPassword, "", "")
	if err != nil {
		e.t.Fatal(err)
	}
	return user
}

func (e *testEnv) group(slug string) models.Group {
	e.t.Helper()
	group := models.Group{Title: "Group " + slug, Slug: slug, Description: "Description"}
	if err := models.GroupSave(&group); err != nil {
		e.t.Fatal(err)
	}
	return group
}

func (e *testEnv) post(author models.User, group *models.Group, text string) models.Post {
	e.t.Helper()
	post := models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		post.GroupID = &group.ID
	}
	if err := models.PostCreate(&post); err != nil {
		e.t.Fatal(err)
	}
	return post
}

func (e *testEnv) count(model any) int64 {
	e.t.Helper()
	var n int64
	if err := db.Instance.Model(model).Count(&n).Error; err != nil {
		e.t.Fatal(err)
	}
	return n
}

// client keeps the session cookie between requests, like a browser
type client struct {
	env     *testEnv
	cookies map[string]*http.Cookie
	csrf    string
}

func (e *testEnv) guest() *client {
	return &client{env: e, cookies: map[string]*http.Cookie{}}
}

func (e *testEnv) loggedIn(user models.User) *client {
	e.t.Helper()
	c := e.guest()
	w := c.postForm("/auth/login/", url.Values{"username": {user.Username}, "password": {testPassword}})
	if w.Code != http.StatusFound {
		e.t.Fatalf("login as %s: status %d", user.Username, w.Code)
	}
	return c
}

func (c *client) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.send(req)
}

func (c *client) send(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.env.router.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
	}
	return w
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, target, nil, "")
}

// token returns a CSRF token matching the client's csrf cookie, as a browser would find it in a form
func (c *client) token() string {
	if c.csrf == "" {
		c.csrf = c.context("/auth/login/").CSRFToken
	}
	return c.csrf
}

// postForm submits values with the CSRF token, like a form rendered by the site
func (c *client) postForm(target string, values url.Values) *httptest.ResponseRecorder {
	withToken := url.Values{auth.CSRFField: {c.token()}}
	for k, v := range values {
		withToken[k] = v
	}
	return c.postFormRaw(target, withToken)
}

// postFormRaw submits values as they are, the way a foreign site would
func (c *client) postFormRaw(target string, values url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, target, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func (c *client) postJSON(target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.CSRFHeader, c.token())
	return c.send(req)
}

func (c *client) postMultipart(target string, values map[string]string, fileName string, content []byte) *httptest.ResponseRecorder {
	body := bytes.Buffer{}
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField(auth.CSRFField, c.token())
	for k, v := range values {
		_ = writer.WriteField(k, v)
	}
	if fileName != "" {
		part, _ := writer.CreateFormFile("image", fileName)
		_, _ = part.Write(content)
	}
	_ = writer.Close()
	return c.do(http.MethodPost, target, &body, writer.FormDataContentType())
}

// context fetches the page as JSON
func (c *client) context(target string) viewContext {
	c.env.t.Helper()
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	w := c.get(target + sep + "format=json")
	if w.Code != http.StatusOK {
		c.env.t.Fatalf("GET %s: status %d", target, w.Code)
	}
	ctx := viewContext{}
	if err := json.Unmarshal(w.Body.Bytes(), &ctx); err != nil {
		c.env.t.Fatalf("GET %s: %v", target, err)
	}
	return ctx
}

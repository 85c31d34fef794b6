package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"yatube/auth"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse       = Response{}
	NopeResponse     = Response{"nope"}
	NotFoundResponse = Response{"not found"}
	DBError1Response = Response{"DB Error 1"}
	DBError2Response = Response{"DB Error 2"}
	DBError3Response = Response{"DB Error 3"}
	DBError4Response = Response{"DB Error 4"}
	StorageResponse  = Response{"Storage Error"}
)

const (
	notFoundTemplate = "core/404.html"
	formatParam      = "format"
)

// render answers with the template, or with its context as JSON when ?format=json is given
func render(c *gin.Context, status int, name string, data gin.H) {
	data["viewer"] = auth.CurrentUser(c)
	data["csrf_token"] = auth.CSRFToken(c)
	if c.Query(formatParam) == "json" {
		c.JSON(status, data)
		return
	}
	c.HTML(status, name, data)
}

func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, notFoundTemplate, gin.H{
		"title": "Страница не найдена",
		"path":  c.Request.URL.Path,
	})
}

func serverError(c *gin.Context, where string, err error, response Response) {
	log.Printf("%s error: %v", where, err)
	c.JSON(http.StatusInternalServerError, response)
}

// notFoundOrError answers 404 for missing records and 500 otherwise
func notFoundOrError(c *gin.Context, where string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c)
		return
	}
	serverError(c, where, err, DBError1Response)
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func postURL(id uint64) string {
	return "/posts/" + strconv.FormatUint(id, 10) + "/"
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

package main

import (
	"log"
	"strings"
	"yatube/config"
	"yatube/db"
	"yatube/models"
	"yatube/processing"
	"yatube/storage"
	"yatube/web"

	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
)

func main() {
	db.Init()
	if err := models.Init(); err != nil {
		log.Fatalf("Auto-migrate error: %v", err)
	}
	storage.Init()
	if config.ADMIN_USERNAME != "" && config.ADMIN_PASSWORD != "" {
		if _, err := models.EnsureAdmin(config.ADMIN_USERNAME, config.ADMIN_PASSWORD); err != nil {
			log.Fatalf("Cannot create admin %s: %v", config.ADMIN_USERNAME, err)
		}
	}
	go processing.StartProcessing()

	sessionStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	router := web.NewRouter(sessionStore, web.NewPageCache())

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}

package db

import (
	"log"
	"yatube/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

// Init opens MySQL, PostgreSQL or SQLite, in that order of preference
func Init() {
	var dialector gorm.Dialector
	if config.MYSQL_DSN != "" {
		log.Print("Using MySQL")
		dialector = mysql.Open(config.MYSQL_DSN)
	} else if config.POSTGRES_DSN != "" {
		log.Print("Using PostgreSQL")
		dialector = postgres.Open(config.POSTGRES_DSN)
	} else {
		log.Printf("Using SQLite: %s", config.SQLITE_FILE)
		// Foreign keys are off by default in SQLite, the ON DELETE rules depend on them
		dialector = sqlite.Open(config.SQLITE_FILE + "?_foreign_keys=1")
	}
	if err := Open(dialector); err != nil {
		panic(err)
	}
}

func Open(dialector gorm.Dialector) error {
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return err
	}
	Instance = db
	return nil
}

func Close() {
	if Instance == nil {
		return
	}
	sqlDB, err := Instance.DB()
	if err != nil {
		log.Printf("Error getting *sql.DB to close: %v", err)
		return
	}
	if err = sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

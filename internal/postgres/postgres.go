package postgres

import (
	"log"
	"time"

	"github.com/elizabethszent/MASIVinternTest/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the global database connection
var DB *gorm.DB

// Init initializes the database connection and sets the global DB variable
func Init(url string) *gorm.DB {
	// Configure GORM logger with higher slow SQL threshold
	gormLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Millisecond * 500,
		},
	)

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatalln(err)
	}

	// AutoMigrate models
	err = db.AutoMigrate(&model.QueryLogPG{})
	if err != nil {
		log.Fatalln("Failed to migrate QueryLog model:", err)
	}

	// Set global DB variable
	DB = db

	return db
}

// GetDB returns the global database connection. It is nil until Init is
// called; callers treat a nil DB as "query logging disabled".
func GetDB() *gorm.DB {
	return DB
}

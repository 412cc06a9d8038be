package db

import (
	"fmt"
	"log"

	"github.com/yash-kumarsharma/vellum/internal/config"
	"github.com/yash-kumarsharma/vellum/internal/domain/form"
	"github.com/yash-kumarsharma/vellum/internal/domain/submission"
	"github.com/yash-kumarsharma/vellum/internal/domain/user"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to auto migrate:", err)
	}

	log.Println("Database connected and migrated")
}

func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&user.User{},
		&form.Form{},
		&form.Question{},
		&form.Collaborator{},
		&submission.Submission{},
	)
}

// InitWithGormDB swaps in an externally managed connection, used by tests.
func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}

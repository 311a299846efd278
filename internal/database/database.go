package database

import (
	"log"

	"github.com/nifgashim/trek-api/internal/config"
	"github.com/nifgashim/trek-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.TrekDay{},
		&models.Registration{},
		&models.Participant{},
		&models.RegistrationHistory{},
		&models.Memorial{},
		&models.Dedication{},
		&models.APIKey{},
		&models.DismissedAlert{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}

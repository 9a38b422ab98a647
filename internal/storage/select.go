package storage

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/asheemsiwach08/homi-apis/internal/config"
	"github.com/asheemsiwach08/homi-apis/internal/models"
)

// Connector opens the primary database connection. Split out so tests can
// force construction failures.
type Connector func(databaseURL string) (*gorm.DB, error)

// NewStore selects the active backend once at startup. The database store
// is preferred; any construction failure logs and substitutes the
// in-memory fallback. There is no re-probing back to the database later.
func NewStore(cfg *config.Config, connect Connector) Store {
	if cfg.UseMemoryStore {
		log.Println("Using in-memory storage (USE_MEMORY_STORE=true)")
		return NewMemoryStore()
	}

	db, err := connect(cfg.DatabaseURL)
	if err != nil {
		log.Printf("Primary storage unavailable, falling back to in-memory store: %v", err)
		return NewMemoryStore()
	}

	if err := migrate(db); err != nil {
		log.Printf("Database migration failed, falling back to in-memory store: %v", err)
		return NewMemoryStore()
	}

	log.Println("Using PostgreSQL storage")
	return NewDatabaseStore(db)
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.OTP{},
		&models.Lead{},
		&models.WhatsAppMessage{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}

package database

import (
	"fmt"

	"github.com/xgrece/bodegon/models"
	"github.com/xgrece/bodegon/utils"
	"gorm.io/gorm"
)

// Models lists every persisted entity, in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.Client{},
		&models.Table{},
		&models.Order{},
	}
}

// Migrate creates or updates the schema. It is safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return fmt.Errorf("parse model: %w", err)
		}
		if !db.Migrator().HasTable(m) {
			return fmt.Errorf("table %s missing after migration", stmt.Schema.Table)
		}
		utils.InfoLogger.Printf("Table verified: %s", stmt.Schema.Table)
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

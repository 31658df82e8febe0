// internal/db/migrations.go
package db

import (
	"fmt"

	"assetdb/internal/models"

	"gorm.io/gorm"
)

// Migrate создаёт/обновляет схему инвентаря.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return migrateRackIndex(db)
}

// migrateRackIndex adds the lookup index used by /hardwares/rack/{rack}.
func migrateRackIndex(db *gorm.DB) error {
	if db.Migrator().HasIndex("locations", "idx_locations_rack") {
		return nil
	}
	switch dialect := db.Dialector.Name(); dialect {
	case "mysql":
		return db.Exec("CREATE INDEX `idx_locations_rack` ON `locations` (`rack`)").Error
	case "postgres":
		return db.Exec(`CREATE INDEX IF NOT EXISTS idx_locations_rack ON "locations" ("rack")`).Error
	case "sqlite":
		return db.Exec(`CREATE INDEX IF NOT EXISTS idx_locations_rack ON locations (rack)`).Error
	default:
		return fmt.Errorf("unsupported dialect: %s", dialect)
	}
}

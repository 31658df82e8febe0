// Package lookup serves the flat reference tables: vendors, sites, hardware types and statuses.
package lookup

import (
	"assetdb/internal/models"
	"assetdb/internal/store"

	"gorm.io/gorm"
)

// Kind описывает справочник: таблицу, whitelist и тексты ошибок.
type Kind struct {
	Table         string
	Path          string
	Label         string
	Required      string
	Fillable      []string
	SearchColumns []string
}

var (
	Vendors = Kind{
		Table: "vendors", Path: "vendors", Label: "Vendor",
		Required:      "Vendor Name are required",
		Fillable:      []string{"name"},
		SearchColumns: []string{"id", "name"},
	}
	Sites = Kind{
		Table: "sites", Path: "sites", Label: "Site",
		Required:      "Site are required",
		Fillable:      []string{"name"},
		SearchColumns: []string{"id", "name"},
	}
	HardwareTypes = Kind{
		Table: "hardware_types", Path: "hardwaretypes", Label: "Hardware Type",
		Required:      "Hardware Type are required",
		Fillable:      []string{"name", "description"},
		SearchColumns: []string{"id", "name", "description"},
	}
	HardwareStatuses = Kind{
		Table: "hardware_statuses", Path: "hardwarestatus", Label: "Hardware Status",
		Required:      "Hardware Status are required",
		Fillable:      []string{"name", "description"},
		SearchColumns: []string{"id", "name", "description"},
	}
)

func NewRepo[T models.Record](db *gorm.DB, k Kind) *store.Store[T] {
	return store.New[T](db, k.Table, k.Fillable...)
}

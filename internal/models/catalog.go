package models

type Site struct {
	Base
	Name string `gorm:"size:255;not null" json:"name"`
}

func (Site) TableName() string { return "sites" }

type Vendor struct {
	Base
	Name string `gorm:"size:255;not null" json:"name"`
}

func (Vendor) TableName() string { return "vendors" }

type HardwareType struct {
	Base
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"size:1024" json:"description"`
}

func (HardwareType) TableName() string { return "hardware_types" }

type HardwareStatus struct {
	Base
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"size:1024" json:"description"`
}

func (HardwareStatus) TableName() string { return "hardware_statuses" }

// HardwareModel — пара brand/model уникальна.
type HardwareModel struct {
	Base
	Brand       string  `gorm:"size:191;not null;uniqueIndex:ux_hardware_models_brand_model" json:"brand"`
	Model       string  `gorm:"size:191;not null;uniqueIndex:ux_hardware_models_brand_model" json:"model"`
	Description *string `gorm:"size:1024" json:"description"`
}

func (HardwareModel) TableName() string { return "hardware_models" }

// Location is a rack inside a room of a site.
type Location struct {
	Base
	SiteID uint   `gorm:"not null;uniqueIndex:ux_locations_site_room_rack" json:"site_id"`
	Room   string `gorm:"size:191;not null;uniqueIndex:ux_locations_site_room_rack" json:"room"`
	Rack   string `gorm:"size:191;not null;uniqueIndex:ux_locations_site_room_rack" json:"rack"`

	Site *Site `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Location) TableName() string { return "locations" }

package models

// Hardware — физический сервер. Справочные ссылки необязательны, но удалить занятый справочник нельзя.
type Hardware struct {
	Base
	Hostname       string  `gorm:"size:191;not null;uniqueIndex" json:"hostname"`
	StatusID       *uint   `gorm:"index" json:"status_id"`
	Ipmi           *string `gorm:"size:255" json:"ipmi"`
	Serial         *string `gorm:"size:255" json:"serial"`
	TypeID         *uint   `gorm:"index" json:"type_id"`
	ModelID        *uint   `gorm:"index" json:"model_id"`
	VendorID       *uint   `gorm:"index" json:"vendor_id"`
	Owner          *string `gorm:"size:255" json:"owner"`
	Specifications *string `gorm:"type:text" json:"specifications"`
	Note           *string `gorm:"type:text" json:"note"`
	LocationID     *uint   `gorm:"index" json:"location_id"`
	UnitRange      *string `gorm:"size:64" json:"unit_range"`
	ClusterID      *uint   `gorm:"index" json:"cluster_id"`

	Status   *HardwareStatus `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Type     *HardwareType   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Model    *HardwareModel  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Vendor   *Vendor         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Location *Location       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Cluster  *Cluster        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Hardware) TableName() string { return "hardware" }

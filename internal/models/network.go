package models

type Switch struct {
	Base
	Name           string  `gorm:"size:191;not null;uniqueIndex" json:"name"`
	ModelID        uint    `gorm:"not null;index" json:"model_id"`
	VendorID       *uint   `gorm:"index" json:"vendor_id"`
	LocationID     *uint   `gorm:"index" json:"location_id"`
	IPMgmt         *string `gorm:"column:ip_mgmt;size:64" json:"ip_mgmt"`
	Note           *string `gorm:"type:text" json:"note"`
	Specifications *string `gorm:"type:text" json:"specifications"`

	Model    *HardwareModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Vendor   *Vendor        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Location *Location      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (Switch) TableName() string { return "switches" }

// SwitchConnection — кабель от hardware в порт коммутатора. Порт занят максимум одним подключением.
type SwitchConnection struct {
	Base
	HardwareID uint   `gorm:"not null;index" json:"hardware_id"`
	SwitchID   uint   `gorm:"not null;uniqueIndex:ux_switch_connections_switch_port" json:"switch_id"`
	Port       string `gorm:"size:64;not null;uniqueIndex:ux_switch_connections_switch_port" json:"port"`

	Hardware *Hardware `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Switch   *Switch   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (SwitchConnection) TableName() string { return "switch_connections" }

type NetworkInterface struct {
	Base
	HardwareID    uint    `gorm:"not null;uniqueIndex:ux_network_interfaces_hw_name" json:"hardware_id"`
	InterfaceName string  `gorm:"size:64;not null;uniqueIndex:ux_network_interfaces_hw_name" json:"interface_name"`
	IPAddress     *string `gorm:"size:45" json:"ip_address"`
	MACAddress    *string `gorm:"column:mac_address;size:17" json:"mac_address"`
	Netmask       *string `gorm:"size:45" json:"netmask"`
	Gateway       *string `gorm:"size:45" json:"gateway"`
	IsPrimary     bool    `gorm:"not null;default:false" json:"is_primary"`
	VLAN          *int    `gorm:"column:vlan" json:"vlan"`
	Description   *string `gorm:"size:1024" json:"description"`

	Hardware *Hardware `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (NetworkInterface) TableName() string { return "network_interfaces" }

package hardware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type Ref struct {
	ID   *uint   `json:"id"`
	Name *string `json:"name"`
}

type ModelRef struct {
	ID    *uint   `json:"id"`
	Brand *string `json:"brand"`
	Model *string `json:"model"`
}

type LocationRef struct {
	ID       *uint   `json:"id"`
	SiteName *string `json:"site_name"`
	Room     *string `json:"room"`
	Rack     *string `json:"rack"`
}

type ClusterRef struct {
	ID      *uint   `json:"id"`
	Name    *string `json:"name"`
	Project Ref     `json:"project"`
}

// SwitchLink — подключение к коммутатору; ID здесь это switch_id.
type SwitchLink struct {
	ID     uint    `json:"id"`
	Name   *string `json:"name"`
	IPMgmt *string `json:"ip_mgmt"`
	Port   *string `json:"port"`
}

type Interface struct {
	ID            uint    `json:"id"`
	InterfaceName string  `json:"interface_name"`
	IPAddress     *string `json:"ip_address"`
	Netmask       *string `json:"netmask"`
	Gateway       *string `json:"gateway"`
	MACAddress    *string `json:"mac_address"`
	VLAN          *int    `json:"vlan"`
	Description   *string `json:"description"`
	IsPrimary     Bool    `json:"is_primary"`
}

// View is the hardware aggregate returned by every hardware endpoint.
type View struct {
	ID                uint         `json:"id"`
	Hostname          string       `json:"hostname"`
	Ipmi              *string      `json:"ipmi"`
	Serial            *string      `json:"serial"`
	Owner             *string      `json:"owner"`
	Specifications    *string      `json:"specifications"`
	Note              *string      `json:"note"`
	UnitRange         *string      `json:"unit_range"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	Status            Ref          `json:"status"`
	Type              Ref          `json:"type"`
	Model             ModelRef     `json:"model"`
	Vendor            Ref          `json:"vendor"`
	Location          LocationRef  `json:"location"`
	Cluster           ClusterRef   `json:"cluster"`
	Switches          []SwitchLink `json:"switches"`
	NetworkInterfaces []Interface  `json:"network_interfaces"`
}

// Bool принимает true/false и 0/1: MySQL и SQLite отдают tinyint в JSON числом.
type Bool bool

func (b *Bool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1":
		*b = true
	case "false", "0", "null":
		*b = false
	default:
		return fmt.Errorf("hardware: cannot decode %s as bool", data)
	}
	return nil
}

func (b Bool) MarshalJSON() ([]byte, error) { return json.Marshal(bool(b)) }

type aggregateRow struct {
	ID                uint
	Hostname          string
	Ipmi              *string
	Serial            *string
	Owner             *string
	Specifications    *string
	Note              *string
	UnitRange         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	StatusID          *uint
	StatusName        *string
	TypeID            *uint
	TypeName          *string
	ModelID           *uint
	ModelBrand        *string
	ModelName         *string
	VendorID          *uint
	VendorName        *string
	LocationID        *uint
	SiteName          *string
	Room              *string
	Rack              *string
	ClusterID         *uint
	ClusterName       *string
	ProjectID         *uint
	ProjectName       *string
	Switches          datatypes.JSON
	NetworkInterfaces datatypes.JSON
}

func (r aggregateRow) view() (View, error) {
	v := View{
		ID:             r.ID,
		Hostname:       r.Hostname,
		Ipmi:           r.Ipmi,
		Serial:         r.Serial,
		Owner:          r.Owner,
		Specifications: r.Specifications,
		Note:           r.Note,
		UnitRange:      r.UnitRange,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Status:         Ref{ID: r.StatusID, Name: r.StatusName},
		Type:           Ref{ID: r.TypeID, Name: r.TypeName},
		Model:          ModelRef{ID: r.ModelID, Brand: r.ModelBrand, Model: r.ModelName},
		Vendor:         Ref{ID: r.VendorID, Name: r.VendorName},
		Location:       LocationRef{ID: r.LocationID, SiteName: r.SiteName, Room: r.Room, Rack: r.Rack},
		Cluster: ClusterRef{
			ID:      r.ClusterID,
			Name:    r.ClusterName,
			Project: Ref{ID: r.ProjectID, Name: r.ProjectName},
		},
		Switches:          []SwitchLink{},
		NetworkInterfaces: []Interface{},
	}
	if err := decodeArray(r.Switches, &v.Switches); err != nil {
		return View{}, fmt.Errorf("hardware %d switches: %w", r.ID, err)
	}
	if err := decodeArray(r.NetworkInterfaces, &v.NetworkInterfaces); err != nil {
		return View{}, fmt.Errorf("hardware %d network_interfaces: %w", r.ID, err)
	}
	return v, nil
}

func decodeArray[T any](raw datatypes.JSON, out *[]T) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	if items != nil {
		*out = items
	}
	return nil
}

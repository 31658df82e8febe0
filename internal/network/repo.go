// Package network holds switches, switch port connections and network interfaces.
package network

import (
	"context"
	"errors"
	"time"

	"assetdb/internal/models"
	"assetdb/internal/store"

	"gorm.io/gorm"
)

/* ——— switches ——— */

type ModelRef struct {
	ID    uint    `json:"id"`
	Model *string `json:"model"`
	Brand *string `json:"brand"`
}

type VendorRef struct {
	ID   *uint   `json:"id"`
	Name *string `json:"name"`
}

type LocationRef struct {
	ID   *uint   `json:"id"`
	Room *string `json:"room"`
	Rack *string `json:"rack"`
}

// SwitchView — коммутатор с развёрнутыми model/vendor/location.
type SwitchView struct {
	ID             uint        `json:"id"`
	Name           string      `json:"name"`
	ModelID        ModelRef    `json:"model_id"`
	VendorID       VendorRef   `json:"vendor_id"`
	LocationID     LocationRef `json:"location_id"`
	IPMgmt         *string     `json:"ip_mgmt"`
	Note           *string     `json:"note"`
	Specifications *string     `json:"specifications"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type switchRow struct {
	models.Switch
	Brand      *string
	ModelName  *string
	VendorName *string
	Room       *string
	Rack       *string
}

func (s switchRow) view() SwitchView {
	return SwitchView{
		ID:             s.ID,
		Name:           s.Name,
		ModelID:        ModelRef{ID: s.ModelID, Model: s.ModelName, Brand: s.Brand},
		VendorID:       VendorRef{ID: s.VendorID, Name: s.VendorName},
		LocationID:     LocationRef{ID: s.LocationID, Room: s.Room, Rack: s.Rack},
		IPMgmt:         s.IPMgmt,
		Note:           s.Note,
		Specifications: s.Specifications,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ConnectedHardware — строка hardware плюс порт, в который она включена.
type ConnectedHardware struct {
	models.Hardware
	Port string `json:"port"`
}

var switchSearchColumns = []string{"switches.name", "switches.ip_mgmt", "switches.note", "switches.specifications"}

type SwitchRepo struct {
	*store.Store[models.Switch]
}

func NewSwitchRepo(db *gorm.DB) *SwitchRepo {
	return &SwitchRepo{Store: store.New[models.Switch](db, "switches",
		"name", "model_id", "vendor_id", "location_id", "ip_mgmt", "note", "specifications")}
}

func (r *SwitchRepo) withDetails(ctx context.Context) *gorm.DB {
	return r.DB(ctx).Table("switches").
		Select("switches.*, hardware_models.brand AS brand, hardware_models.model AS model_name, " +
			"vendors.name AS vendor_name, locations.room AS room, locations.rack AS rack").
		Joins("LEFT JOIN hardware_models ON switches.model_id = hardware_models.id").
		Joins("LEFT JOIN vendors ON switches.vendor_id = vendors.id").
		Joins("LEFT JOIN locations ON switches.location_id = locations.id")
}

func (r *SwitchRepo) FindAllWithDetails(ctx context.Context, search string, opts store.FindOptions) ([]SwitchView, error) {
	q := r.withDetails(ctx)
	if search != "" {
		cond, args, err := store.SearchCondition(r.DB(ctx).Dialector.Name(), search, switchSearchColumns, false)
		if err != nil {
			return nil, err
		}
		q = q.Where(cond, args...)
	}
	orderBy := "switches.id"
	if opts.OrderBy != "" {
		if !store.ValidColumn(opts.OrderBy) {
			return nil, store.ErrInvalidColumn
		}
		orderBy = opts.OrderBy
	}
	q = q.Order(orderBy + " " + store.Direction(opts.OrderDirection))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit).Offset(opts.Offset)
	}

	var rows []switchRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]SwitchView, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.view())
	}
	return out, nil
}

func (r *SwitchRepo) FindByIDWithDetails(ctx context.Context, id uint) (*SwitchView, error) {
	var rows []switchRow
	if err := r.withDetails(ctx).Where("switches.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	v := rows[0].view()
	return &v, nil
}

func (r *SwitchRepo) FindByName(ctx context.Context, name string) (*models.Switch, error) {
	return r.FindByColumn(ctx, "name", name)
}

func (r *SwitchRepo) FindByLocation(ctx context.Context, locationID uint) ([]models.Switch, error) {
	return r.FindAll(ctx, store.FindOptions{Where: map[string]any{"location_id": locationID}})
}

func (r *SwitchRepo) FindConnectedHardware(ctx context.Context, switchID uint) ([]ConnectedHardware, error) {
	out := make([]ConnectedHardware, 0)
	err := r.DB(ctx).Raw(`SELECT h.*, sc.port
		FROM hardware h
		JOIN switch_connections sc ON h.id = sc.hardware_id
		WHERE sc.switch_id = ?
		ORDER BY h.id`, switchID).Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ——— switch connections ——— */

type ConnectionRepo struct {
	*store.Store[models.SwitchConnection]
}

func NewConnectionRepo(db *gorm.DB) *ConnectionRepo {
	return &ConnectionRepo{Store: store.New[models.SwitchConnection](db, "switch_connections", "hardware_id", "switch_id", "port")}
}

// FindBySwitchPort ищет по уникальной паре (switch_id, port).
func (r *ConnectionRepo) FindBySwitchPort(ctx context.Context, switchID uint, port string) (*models.SwitchConnection, error) {
	return take[models.SwitchConnection](r.DB(ctx).Where("switch_id = ? AND port = ?", switchID, port))
}

func (r *ConnectionRepo) FindByHardware(ctx context.Context, hardwareID uint) ([]models.SwitchConnection, error) {
	return r.FindAll(ctx, store.FindOptions{Where: map[string]any{"hardware_id": hardwareID}, OrderBy: "id"})
}

/* ——— network interfaces ——— */

type InterfaceRepo struct {
	*store.Store[models.NetworkInterface]
}

func NewInterfaceRepo(db *gorm.DB) *InterfaceRepo {
	return &InterfaceRepo{Store: store.New[models.NetworkInterface](db, "network_interfaces",
		"hardware_id", "interface_name", "ip_address", "netmask", "gateway", "mac_address", "vlan", "description", "is_primary")}
}

func (r *InterfaceRepo) FindByHardwareID(ctx context.Context, hardwareID uint) ([]models.NetworkInterface, error) {
	return r.FindAll(ctx, store.FindOptions{Where: map[string]any{"hardware_id": hardwareID}, OrderBy: "id"})
}

func (r *InterfaceRepo) FindByHardwareAndName(ctx context.Context, hardwareID uint, name string) (*models.NetworkInterface, error) {
	return take[models.NetworkInterface](r.DB(ctx).Where("hardware_id = ? AND interface_name = ?", hardwareID, name))
}

func (r *InterfaceRepo) FindByIP(ctx context.Context, ip string) (*models.NetworkInterface, error) {
	return r.FindByColumn(ctx, "ip_address", ip)
}

func (r *InterfaceRepo) FindByMAC(ctx context.Context, mac string) (*models.NetworkInterface, error) {
	return r.FindByColumn(ctx, "mac_address", mac)
}

func take[T any](q *gorm.DB) (*T, error) {
	var rec T
	err := q.Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

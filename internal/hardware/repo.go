// Package hardware serves the hardware aggregate: the hardware row joined with its catalog
// references, its switch port connections and its network interfaces.
package hardware

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"assetdb/internal/apperr"
	"assetdb/internal/models"
	"assetdb/internal/network"
	"assetdb/internal/store"
	"assetdb/internal/validate"

	"gorm.io/gorm"
)

var Fillable = []string{
	"hostname", "status_id", "ipmi", "serial", "type_id", "model_id", "vendor_id",
	"owner", "specifications", "note", "location_id", "unit_range", "cluster_id",
}

var SearchColumns = []string{
	"h.hostname", "h.serial", "h.ipmi", "h.owner",
	"hm.model", "v.name", "l.room", "l.rack", "c.name", "p.name",
}

// Relations — вложенные массивы из тела запроса. nil означает "не трогать".
type Relations struct {
	Interfaces []store.Fields
	Switches   []store.Fields
}

type Repo struct {
	*store.Store[models.Hardware]
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{Store: store.New[models.Hardware](db, "hardware", Fillable...)}
}

const baseSelect = `SELECT
	h.id, h.hostname, h.ipmi, h.serial, h.owner, h.specifications, h.note, h.unit_range,
	h.created_at, h.updated_at,
	hs.id AS status_id, hs.name AS status_name,
	ht.id AS type_id, ht.name AS type_name,
	hm.id AS model_id, hm.brand AS model_brand, hm.model AS model_name,
	v.id AS vendor_id, v.name AS vendor_name,
	l.id AS location_id, s.name AS site_name, l.room AS room, l.rack AS rack,
	c.id AS cluster_id, c.name AS cluster_name,
	p.id AS project_id, p.name AS project_name,
	%s AS switches,
	%s AS network_interfaces
FROM hardware h
LEFT JOIN hardware_statuses hs ON h.status_id = hs.id
LEFT JOIN hardware_types ht ON h.type_id = ht.id
LEFT JOIN hardware_models hm ON h.model_id = hm.id
LEFT JOIN vendors v ON h.vendor_id = v.id
LEFT JOIN locations l ON h.location_id = l.id
LEFT JOIN sites s ON l.site_id = s.id
LEFT JOIN clusters c ON h.cluster_id = c.id
LEFT JOIN projects p ON c.project_id = p.id`

const (
	switchesFrom   = `FROM switch_connections sc JOIN switches sw ON sc.switch_id = sw.id WHERE sc.hardware_id = h.id`
	interfacesFrom = `FROM network_interfaces ni WHERE ni.hardware_id = h.id`
)

var (
	switchPairs = [][2]string{
		{"id", "sc.switch_id"}, {"name", "sw.name"}, {"ip_mgmt", "sw.ip_mgmt"}, {"port", "sc.port"},
	}
	interfacePairs = [][2]string{
		{"id", "ni.id"}, {"interface_name", "ni.interface_name"}, {"ip_address", "ni.ip_address"},
		{"netmask", "ni.netmask"}, {"gateway", "ni.gateway"}, {"mac_address", "ni.mac_address"},
		{"vlan", "ni.vlan"}, {"description", "ni.description"}, {"is_primary", "ni.is_primary"},
	}
)

// jsonArray строит коррелированный подзапрос, собирающий строки в JSON-массив ([] если строк нет).
func jsonArray(dialect string, pairs [][2]string, from string) string {
	kv := make([]string, 0, len(pairs))
	for _, p := range pairs {
		kv = append(kv, "'"+p[0]+"', "+p[1])
	}
	obj := strings.Join(kv, ", ")
	switch dialect {
	case "postgres":
		return fmt.Sprintf("COALESCE((SELECT json_agg(json_build_object(%s)) %s), '[]'::json)", obj, from)
	case "sqlite":
		return fmt.Sprintf("COALESCE((SELECT json_group_array(json_object(%s)) %s), json_array())", obj, from)
	default:
		return fmt.Sprintf("IFNULL((SELECT JSON_ARRAYAGG(JSON_OBJECT(%s)) %s), JSON_ARRAY())", obj, from)
	}
}

func (r *Repo) selectSQL(ctx context.Context) string {
	dialect := r.DB(ctx).Dialector.Name()
	return fmt.Sprintf(baseSelect,
		jsonArray(dialect, switchPairs, switchesFrom),
		jsonArray(dialect, interfacePairs, interfacesFrom))
}

func (r *Repo) query(ctx context.Context, where string, args []any, opts store.FindOptions) ([]View, error) {
	sql := r.selectSQL(ctx)
	if where != "" {
		sql += " WHERE " + where
	}
	orderBy := "h.id"
	if opts.OrderBy != "" {
		col := opts.OrderBy
		if !strings.Contains(col, ".") {
			col = "h." + col
		}
		if !store.ValidColumn(col) {
			return nil, fmt.Errorf("%w: %s", store.ErrInvalidColumn, opts.OrderBy)
		}
		orderBy = col
	}
	sql += " ORDER BY " + orderBy + " " + store.Direction(opts.OrderDirection)
	if opts.Limit > 0 {
		sql += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			sql += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	var rows []aggregateRow
	if err := r.DB(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]View, 0, len(rows))
	for _, row := range rows {
		v, err := row.view()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Repo) one(ctx context.Context, where string, args ...any) (*View, error) {
	items, err := r.query(ctx, where, args, store.FindOptions{Limit: 1})
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func (r *Repo) FindByIDWithRelations(ctx context.Context, id uint) (*View, error) {
	return r.one(ctx, "h.id = ?", id)
}

func (r *Repo) FindByHostname(ctx context.Context, hostname string) (*View, error) {
	return r.one(ctx, "h.hostname = ?", hostname)
}

// FindAllWithRelations: ключи Where без префикса относятся к h.
func (r *Repo) FindAllWithRelations(ctx context.Context, opts store.FindOptions) ([]View, error) {
	keys := make([]string, 0, len(opts.Where))
	for k := range opts.Where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		col := k
		if !strings.Contains(col, ".") {
			col = "h." + col
		}
		if !store.ValidColumn(col) {
			return nil, fmt.Errorf("%w: %s", store.ErrInvalidColumn, k)
		}
		conds = append(conds, col+" = ?")
		args = append(args, opts.Where[k])
	}
	return r.query(ctx, strings.Join(conds, " AND "), args, opts)
}

func (r *Repo) SearchHardware(ctx context.Context, term string, opts store.SearchOptions) ([]View, error) {
	cond, args, err := store.SearchCondition(r.DB(ctx).Dialector.Name(), term, SearchColumns, opts.Exact)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, cond, args, store.FindOptions{Limit: opts.Limit, Offset: opts.Offset})
}

func (r *Repo) FindByCluster(ctx context.Context, clusterID uint) ([]View, error) {
	return r.FindAllWithRelations(ctx, store.FindOptions{Where: map[string]any{"cluster_id": clusterID}})
}

func (r *Repo) FindByLocation(ctx context.Context, locationID uint) ([]View, error) {
	return r.FindAllWithRelations(ctx, store.FindOptions{Where: map[string]any{"location_id": locationID}})
}

// FindByRack ищет по имени стойки (locations.rack), а не по id.
func (r *Repo) FindByRack(ctx context.Context, rack string) ([]View, error) {
	return r.FindAllWithRelations(ctx, store.FindOptions{Where: map[string]any{"l.rack": rack}})
}

var errGone = errors.New("hardware row vanished")

func (r *Repo) CreateWithRelations(ctx context.Context, f store.Fields, rel Relations) (*View, error) {
	var id uint
	err := r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := r.WithTx(tx).Create(ctx, f)
		if err != nil {
			return err
		}
		if rec == nil {
			return errGone
		}
		id = rec.ID
		return replaceLinks(ctx, tx, id, rel)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByIDWithRelations(ctx, id)
}

// UpdateWithRelations returns (nil, nil) when the hardware does not exist.
func (r *Repo) UpdateWithRelations(ctx context.Context, id uint, f store.Fields, rel Relations) (*View, error) {
	err := r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := r.WithTx(tx).Update(ctx, id, f)
		if err != nil {
			return err
		}
		if rec == nil {
			return errGone
		}
		return replaceLinks(ctx, tx, id, rel)
	})
	if errors.Is(err, errGone) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.FindByIDWithRelations(ctx, id)
}

// DeleteWithRelations returns the aggregate as it was before deletion, or nil.
func (r *Repo) DeleteWithRelations(ctx context.Context, id uint) (*View, error) {
	v, err := r.FindByIDWithRelations(ctx, id)
	if err != nil || v == nil {
		return nil, err
	}
	err = r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hardware_id = ?", id).Delete(&models.NetworkInterface{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hardware_id = ?", id).Delete(&models.SwitchConnection{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Hardware{}).Error
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// replaceLinks заменяет интерфейсы и подключения целиком, если массив пришёл в запросе.
func replaceLinks(ctx context.Context, tx *gorm.DB, hardwareID uint, rel Relations) error {
	if rel.Interfaces != nil {
		if err := tx.Where("hardware_id = ?", hardwareID).Delete(&models.NetworkInterface{}).Error; err != nil {
			return err
		}
		ifaces := network.NewInterfaceRepo(tx)
		for i, item := range rel.Interfaces {
			row := cloneFields(item)
			delete(row, "id")
			row["hardware_id"] = hardwareID
			if name := row["interface_name"]; name == nil || strings.TrimSpace(fmt.Sprint(name)) == "" {
				return apperr.BadRequest("network_interfaces[%d]: interface_name is required", i)
			}
			if err := validate.Interface(row); err != nil {
				return apperr.BadRequest("network_interfaces[%d]: %s", i, err.Error())
			}
			if _, err := ifaces.Create(ctx, row); err != nil {
				return err
			}
		}
	}
	if rel.Switches != nil {
		if err := tx.Where("hardware_id = ?", hardwareID).Delete(&models.SwitchConnection{}).Error; err != nil {
			return err
		}
		conns := network.NewConnectionRepo(tx)
		for i, item := range rel.Switches {
			switchID, port := item["id"], item["port"]
			if switchID == nil || port == nil || strings.TrimSpace(fmt.Sprint(port)) == "" {
				return apperr.BadRequest("switches[%d]: id and port are required", i)
			}
			row := store.Fields{"hardware_id": hardwareID, "switch_id": switchID, "port": port}
			if _, err := conns.Create(ctx, row); err != nil {
				return err
			}
		}
	}
	return nil
}

func cloneFields(f store.Fields) store.Fields {
	out := make(store.Fields, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	return out
}

package location

import (
	"context"
	"errors"
	"time"

	"assetdb/internal/models"
	"assetdb/internal/store"

	"gorm.io/gorm"
)

var searchColumns = []string{"room", "rack"}

// WithSite — строка локации вместе с именем площадки.
type WithSite struct {
	ID        uint      `json:"id"`
	SiteID    uint      `json:"site_id"`
	SiteName  string    `json:"site_name"`
	Room      string    `json:"room"`
	Rack      string    `json:"rack"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repo struct {
	*store.Store[models.Location]
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{Store: store.New[models.Location](db, "locations", "site_id", "room", "rack")}
}

// FindByRoomAndRack ищет по уникальному ключу (site_id, room, rack).
func (r *Repo) FindByRoomAndRack(ctx context.Context, siteID uint, room, rack string) (*models.Location, error) {
	var l models.Location
	err := r.DB(ctx).Where("site_id = ? AND room = ? AND rack = ?", siteID, room, rack).Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) FindBySite(ctx context.Context, siteID uint) ([]models.Location, error) {
	return r.FindAll(ctx, store.FindOptions{Where: map[string]any{"site_id": siteID}})
}

func (r *Repo) SearchLocations(ctx context.Context, term string) ([]models.Location, error) {
	return r.Search(ctx, term, searchColumns, store.SearchOptions{})
}

// FindAllWithSiteNames joins sites; search (if any) matches room or rack.
func (r *Repo) FindAllWithSiteNames(ctx context.Context, search string, opts store.FindOptions) ([]WithSite, error) {
	q := r.DB(ctx).Table("locations AS l").
		Select("l.id, l.site_id, s.name AS site_name, l.room, l.rack, l.created_at, l.updated_at").
		Joins("JOIN sites s ON l.site_id = s.id")
	for k, v := range opts.Where {
		if !store.ValidColumn(k) {
			return nil, store.ErrInvalidColumn
		}
		q = q.Where("l."+k+" = ?", v)
	}
	if search != "" {
		cond, args, err := store.SearchCondition(r.DB(ctx).Dialector.Name(), search, []string{"l.room", "l.rack"}, false)
		if err != nil {
			return nil, err
		}
		q = q.Where(cond, args...)
	}
	if opts.OrderBy != "" {
		if !store.ValidColumn(opts.OrderBy) {
			return nil, store.ErrInvalidColumn
		}
		q = q.Order("l." + opts.OrderBy + " " + store.Direction(opts.OrderDirection))
	} else {
		q = q.Order("l.id")
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit).Offset(opts.Offset)
	}

	out := make([]WithSite, 0)
	if err := q.Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

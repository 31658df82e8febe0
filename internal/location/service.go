package location

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"assetdb/internal/apperr"
	"assetdb/internal/models"
	"assetdb/internal/store"
)

type Service struct{ repo *Repo }

func NewService(r *Repo) *Service { return &Service{repo: r} }

func (s *Service) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx, nil) }

type ListOptions struct {
	Search           string
	IncludeSiteNames bool
}

func (s *Service) Create(ctx context.Context, f store.Fields) (*models.Location, error) {
	siteID, room, rack := uintOf(f["site_id"]), str(f["room"]), str(f["rack"])
	if siteID == 0 || room == "" || rack == "" {
		return nil, apperr.BadRequest("site_id, room, and rack are required")
	}
	existing, err := s.repo.FindByRoomAndRack(ctx, siteID, room, rack)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicate(siteID, room, rack)
	}
	return s.repo.Create(ctx, store.Fields{"site_id": siteID, "room": room, "rack": rack})
}

// List returns []WithSite when site names are requested, []models.Location otherwise.
func (s *Service) List(ctx context.Context, o ListOptions) (any, error) {
	if o.IncludeSiteNames {
		return s.repo.FindAllWithSiteNames(ctx, o.Search, store.FindOptions{})
	}
	if o.Search != "" {
		return s.repo.SearchLocations(ctx, o.Search)
	}
	return s.repo.FindAll(ctx, store.FindOptions{})
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Location, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.NotFound("Not found id=%d", id)
	}
	return l, nil
}

// Find — поиск по (site_id, room, rack) для GET /locations/find.
func (s *Service) Find(ctx context.Context, siteID uint, room, rack string) (*models.Location, error) {
	if siteID == 0 || room == "" || rack == "" {
		return nil, apperr.BadRequest("siteId, room, and rack are required")
	}
	l, err := s.repo.FindByRoomAndRack(ctx, siteID, room, rack)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.NotFound("Location not found")
	}
	return l, nil
}

func (s *Service) ListBySite(ctx context.Context, siteID uint) ([]models.Location, error) {
	return s.repo.FindBySite(ctx, siteID)
}

// Update проверяет конфликт по итоговому ключу, исключая саму запись.
func (s *Service) Update(ctx context.Context, id uint, f store.Fields) (*models.Location, error) {
	cur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, apperr.NotFound("Location not found with id=%d", id)
	}

	// ключ после обновления должен быть так же полон, как при создании
	fields := store.Fields{}
	for k, v := range f {
		fields[k] = v
	}
	siteID, room, rack := cur.SiteID, cur.Room, cur.Rack
	if v, ok := f["site_id"]; ok {
		siteID = uintOf(v)
		fields["site_id"] = siteID
	}
	if v, ok := f["room"]; ok {
		room = str(v)
		fields["room"] = room
	}
	if v, ok := f["rack"]; ok {
		rack = str(v)
		fields["rack"] = rack
	}
	if siteID == 0 || room == "" || rack == "" {
		return nil, apperr.BadRequest("site_id, room, and rack are required")
	}
	conflict, err := s.repo.FindByRoomAndRack(ctx, siteID, room, rack)
	if err != nil {
		return nil, err
	}
	if conflict != nil && conflict.ID != id {
		return nil, duplicate(siteID, room, rack)
	}

	l, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.NotFound("Location not found with id=%d", id)
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id uint) (string, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("Location ID %d not found", id)
	}
	return fmt.Sprintf("Deleted Location ID %d Successfully", id), nil
}

func duplicate(siteID uint, room, rack string) error {
	return apperr.BadRequest("Location already exists (site_id=%d, room=%s, rack=%s)", siteID, room, rack)
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func uintOf(v any) uint {
	n, err := strconv.ParseUint(str(v), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

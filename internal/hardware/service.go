package hardware

import (
	"context"
	"fmt"
	"strings"

	"assetdb/internal/apperr"
	"assetdb/internal/store"
	"assetdb/internal/validate"
)

type Service struct{ repo *Repo }

func NewService(r *Repo) *Service { return &Service{repo: r} }

func (s *Service) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx, nil) }

func (s *Service) Create(ctx context.Context, f store.Fields) (*View, error) {
	fields, rel, err := splitRelations(f)
	if err != nil {
		return nil, err
	}
	raw := str(fields["hostname"])
	if raw == "" {
		return nil, apperr.BadRequest("Hostname is required")
	}
	hostname, err := s.checkHostname(ctx, raw, 0)
	if err != nil {
		return nil, err
	}
	fields["hostname"] = hostname
	return s.repo.CreateWithRelations(ctx, fields, rel)
}

func (s *Service) List(ctx context.Context, search string) ([]View, error) {
	if search != "" {
		return s.repo.SearchHardware(ctx, search, store.SearchOptions{})
	}
	return s.repo.FindAllWithRelations(ctx, store.FindOptions{})
}

func (s *Service) Get(ctx context.Context, id uint) (*View, error) {
	v, err := s.repo.FindByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("Hardware with ID %d not found", id)
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, id uint, f store.Fields) (*View, error) {
	fields, rel, err := splitRelations(f)
	if err != nil {
		return nil, err
	}
	if v, ok := fields["hostname"]; ok {
		raw := str(v)
		if raw == "" {
			return nil, apperr.BadRequest("Hostname is required")
		}
		hostname, err := s.checkHostname(ctx, raw, id)
		if err != nil {
			return nil, err
		}
		fields["hostname"] = hostname
	}
	v, err := s.repo.UpdateWithRelations(ctx, id, fields, rel)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("Hardware with ID %d not found", id)
	}
	return v, nil
}

// Delete returns the removed aggregate.
func (s *Service) Delete(ctx context.Context, id uint) (*View, error) {
	v, err := s.repo.DeleteWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("Hardware with ID %d not found", id)
	}
	return v, nil
}

func (s *Service) FindByHostname(ctx context.Context, hostname string) (*View, error) {
	v, err := s.repo.FindByHostname(ctx, hostname)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("Hardware with hostname %q not found", hostname)
	}
	return v, nil
}

func (s *Service) FindByCluster(ctx context.Context, clusterID uint) ([]View, error) {
	return s.repo.FindByCluster(ctx, clusterID)
}

func (s *Service) FindByLocation(ctx context.Context, locationID uint) ([]View, error) {
	return s.repo.FindByLocation(ctx, locationID)
}

func (s *Service) FindByRack(ctx context.Context, rack string) ([]View, error) {
	return s.repo.FindByRack(ctx, rack)
}

func (s *Service) checkHostname(ctx context.Context, raw string, self uint) (string, error) {
	hostname, err := validate.Hostname(raw)
	if err != nil {
		return "", apperr.BadRequest("Invalid hostname %q", raw)
	}
	existing, err := s.repo.FindByColumn(ctx, "hostname", hostname)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != self {
		return "", apperr.BadRequest("Hostname %q already exists.", hostname)
	}
	return hostname, nil
}

// splitRelations отделяет массивы switches / network_interfaces от полей строки hardware.
func splitRelations(f store.Fields) (store.Fields, Relations, error) {
	var rel Relations
	fields := make(store.Fields, len(f))
	for k, v := range f {
		fields[k] = v
	}
	var err error
	if rel.Interfaces, err = takeArray(fields, "network_interfaces"); err != nil {
		return nil, rel, err
	}
	if rel.Switches, err = takeArray(fields, "switches"); err != nil {
		return nil, rel, err
	}
	return fields, rel, nil
}

func takeArray(fields store.Fields, key string) ([]store.Fields, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, nil
	}
	delete(fields, key)
	if raw == nil {
		return []store.Fields{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, apperr.BadRequest("%s must be an array", key)
	}
	out := make([]store.Fields, 0, len(list))
	for i, item := range list {
		switch m := item.(type) {
		case map[string]any:
			out = append(out, store.Fields(m))
		case store.Fields:
			out = append(out, m)
		default:
			return nil, apperr.BadRequest("%s[%d] must be an object", key, i)
		}
	}
	return out, nil
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

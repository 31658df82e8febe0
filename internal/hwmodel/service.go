package hwmodel

import (
	"context"
	"fmt"
	"strings"

	"assetdb/internal/apperr"
	"assetdb/internal/models"
	"assetdb/internal/store"
)

type Service struct{ repo *Repo }

func NewService(r *Repo) *Service { return &Service{repo: r} }

func (s *Service) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx, nil) }

func (s *Service) Create(ctx context.Context, f store.Fields) (*models.HardwareModel, error) {
	brand, model := str(f["brand"]), str(f["model"])
	if brand == "" || model == "" {
		return nil, apperr.BadRequest("Brand and Model are required")
	}
	existing, err := s.repo.FindByBrandAndModel(ctx, brand, model)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicate(brand, model)
	}
	return s.repo.Create(ctx, f)
}

func (s *Service) List(ctx context.Context, search string) ([]models.HardwareModel, error) {
	if search != "" {
		return s.repo.SearchModels(ctx, search)
	}
	return s.repo.FindAll(ctx, store.FindOptions{})
}

func (s *Service) Get(ctx context.Context, id uint) (*models.HardwareModel, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NotFound("Not found id=%d", id)
	}
	return m, nil
}

// Update перепроверяет уникальность пары brand/model, если она меняется.
func (s *Service) Update(ctx context.Context, id uint, f store.Fields) (*models.HardwareModel, error) {
	_, hasBrand := f["brand"]
	_, hasModel := f["model"]
	if hasBrand || hasModel {
		cur, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			return nil, apperr.NotFound("Hardware model not found")
		}
		brand, model := cur.Brand, cur.Model
		if hasBrand {
			brand = str(f["brand"])
		}
		if hasModel {
			model = str(f["model"])
		}
		if brand == "" || model == "" {
			return nil, apperr.BadRequest("Brand and Model are required")
		}
		other, err := s.repo.FindByBrandAndModel(ctx, brand, model)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, duplicate(brand, model)
		}
	}
	m, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NotFound("Hardware model not found")
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uint) (string, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("Hardware model not found")
	}
	return fmt.Sprintf("Deleted Hardware Model id=%d Successfully", id), nil
}

func duplicate(brand, model string) error {
	return apperr.BadRequest("Hardware Model Brand: %s or Model: %s already exists", brand, model)
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

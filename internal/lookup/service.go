package lookup

import (
	"context"
	"fmt"
	"strings"

	"assetdb/internal/apperr"
	"assetdb/internal/models"
	"assetdb/internal/store"

	"gorm.io/gorm"
)

type Service[T models.Record] struct {
	repo *store.Store[T]
	kind Kind
}

func NewService[T models.Record](db *gorm.DB, k Kind) *Service[T] {
	return &Service[T]{repo: NewRepo[T](db, k), kind: k}
}

func (s *Service[T]) Kind() Kind { return s.kind }

func (s *Service[T]) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx, nil) }

func (s *Service[T]) List(ctx context.Context, search string) ([]T, error) {
	if search != "" {
		return s.repo.Search(ctx, search, s.kind.SearchColumns, store.SearchOptions{})
	}
	return s.repo.FindAll(ctx, store.FindOptions{})
}

func (s *Service[T]) Get(ctx context.Context, id uint) (*T, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, s.notFound()
	}
	return rec, nil
}

func (s *Service[T]) Create(ctx context.Context, f store.Fields) (*T, error) {
	if blank(f["name"]) {
		return nil, apperr.BadRequest("%s", s.kind.Required)
	}
	return s.repo.Create(ctx, f)
}

func (s *Service[T]) Update(ctx context.Context, id uint, f store.Fields) (*T, error) {
	if v, ok := f["name"]; ok && blank(v) {
		return nil, apperr.BadRequest("%s", s.kind.Required)
	}
	rec, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, s.notFound()
	}
	return rec, nil
}

func (s *Service[T]) Delete(ctx context.Context, id uint) (string, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", s.notFound()
	}
	return s.kind.Label + " deleted successfully", nil
}

func (s *Service[T]) notFound() error { return apperr.NotFound("%s not found", s.kind.Label) }

func blank(v any) bool {
	if v == nil {
		return true
	}
	return strings.TrimSpace(fmt.Sprint(v)) == ""
}

package project

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

func (s *Service) Create(ctx context.Context, f store.Fields) (*models.Project, error) {
	name, owner := str(f["name"]), str(f["owner"])
	if name == "" || owner == "" {
		return nil, apperr.BadRequest("Name and Owner are required")
	}
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("Project Name %s already exists", name)
	}
	return s.repo.Create(ctx, f)
}

func (s *Service) List(ctx context.Context, search string) ([]models.Project, error) {
	if search != "" {
		return s.repo.SearchProjects(ctx, search)
	}
	return s.repo.FindAll(ctx, store.FindOptions{})
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("Not found id=%d", id)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id uint, f store.Fields) (*models.Project, error) {
	if v, ok := f["name"]; ok {
		name := str(v)
		if name == "" {
			return nil, apperr.BadRequest("Name and Owner are required")
		}
		other, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, apperr.BadRequest("Project Name %s already exists", name)
		}
	}
	p, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("Project not found")
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uint) (string, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("Project ID %d not found", id)
	}
	return fmt.Sprintf("Deleted Project ID %d Successfully", id), nil
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

package project

import (
	"context"
	"fmt"

	"assetdb/internal/apperr"
	"assetdb/internal/store"
)

type ClusterService struct{ repo *ClusterRepo }

func NewClusterService(r *ClusterRepo) *ClusterService { return &ClusterService{repo: r} }

func (s *ClusterService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx, nil) }

// Create возвращает кластер уже в форме ClusterView.
func (s *ClusterService) Create(ctx context.Context, f store.Fields) (*ClusterView, error) {
	name := str(f["name"])
	if name == "" || str(f["project_id"]) == "" {
		return nil, apperr.BadRequest("Name and Project id are required")
	}
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("Cluster Name %s already exists", name)
	}
	c, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByIDWithProject(ctx, c.ID)
}

func (s *ClusterService) List(ctx context.Context, search string) ([]ClusterView, error) {
	return s.repo.FindAllWithProject(ctx, search)
}

func (s *ClusterService) Get(ctx context.Context, id uint) (*ClusterView, error) {
	v, err := s.repo.FindByIDWithProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("Not found id=%d", id)
	}
	return v, nil
}

func (s *ClusterService) Update(ctx context.Context, id uint, f store.Fields) (*ClusterView, error) {
	if v, ok := f["name"]; ok {
		name := str(v)
		if name == "" {
			return nil, apperr.BadRequest("Name and Project id are required")
		}
		other, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, apperr.BadRequest("Cluster Name %s already exists", name)
		}
	}
	c, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("Cluster not found")
	}
	return s.repo.FindByIDWithProject(ctx, id)
}

func (s *ClusterService) Delete(ctx context.Context, id uint) (string, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("Cluster ID %d not found", id)
	}
	return fmt.Sprintf("Deleted Cluster ID %d Successfully", id), nil
}

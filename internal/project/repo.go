package project

import (
	"context"

	"assetdb/internal/models"
	"assetdb/internal/store"

	"gorm.io/gorm"
)

var projectSearchColumns = []string{"id", "name", "owner", "description"}

type Repo struct {
	*store.Store[models.Project]
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{Store: store.New[models.Project](db, "projects", "name", "owner", "description")}
}

func (r *Repo) FindByName(ctx context.Context, name string) (*models.Project, error) {
	return r.FindByColumn(ctx, "name", name)
}

func (r *Repo) SearchProjects(ctx context.Context, term string) ([]models.Project, error) {
	return r.Search(ctx, term, projectSearchColumns, store.SearchOptions{})
}

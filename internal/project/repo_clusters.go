package project

import (
	"context"
	"time"

	"assetdb/internal/models"
	"assetdb/internal/store"

	"gorm.io/gorm"
)

// clusterRow — результат LEFT JOIN clusters/projects.
type clusterRow struct {
	ID          uint
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ProjectID   *uint
	ProjectName *string
}

type ProjectRef struct {
	ID          *uint   `json:"id"`
	ProjectName *string `json:"project_name"`
}

// ClusterView is the shape clients get for clusters.
type ClusterView struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Project     ProjectRef `json:"project"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (c clusterRow) view() ClusterView {
	return ClusterView{
		ID:          c.ID,
		Name:        c.Name,
		Project:     ProjectRef{ID: c.ProjectID, ProjectName: c.ProjectName},
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type ClusterRepo struct {
	*store.Store[models.Cluster]
}

func NewClusterRepo(db *gorm.DB) *ClusterRepo {
	return &ClusterRepo{Store: store.New[models.Cluster](db, "clusters", "name", "project_id", "description")}
}

func (r *ClusterRepo) withProject(ctx context.Context) *gorm.DB {
	return r.DB(ctx).Table("clusters AS c").
		Select("c.id, c.name, c.description, c.created_at, c.updated_at, c.project_id, p.name AS project_name").
		Joins("LEFT JOIN projects p ON c.project_id = p.id")
}

// FindAllWithProject — список, отсортированный по имени; search по name/description.
func (r *ClusterRepo) FindAllWithProject(ctx context.Context, search string) ([]ClusterView, error) {
	q := r.withProject(ctx)
	if search != "" {
		cond, args, err := store.SearchCondition(r.DB(ctx).Dialector.Name(), search, []string{"c.name", "c.description"}, false)
		if err != nil {
			return nil, err
		}
		q = q.Where(cond, args...)
	}
	var rows []clusterRow
	if err := q.Order("c.name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ClusterView, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.view())
	}
	return out, nil
}

func (r *ClusterRepo) FindByIDWithProject(ctx context.Context, id uint) (*ClusterView, error) {
	var rows []clusterRow
	if err := r.withProject(ctx).Where("c.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	v := rows[0].view()
	return &v, nil
}

func (r *ClusterRepo) FindByName(ctx context.Context, name string) (*models.Cluster, error) {
	return r.FindByColumn(ctx, "name", name)
}

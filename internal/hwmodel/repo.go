package hwmodel

import (
	"context"
	"errors"

	"assetdb/internal/models"
	"assetdb/internal/store"

	"gorm.io/gorm"
)

var searchColumns = []string{"id", "brand", "model", "description"}

type Repo struct {
	*store.Store[models.HardwareModel]
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{Store: store.New[models.HardwareModel](db, "hardware_models", "brand", "model", "description")}
}

// FindByBrandAndModel — nil, если пары нет.
func (r *Repo) FindByBrandAndModel(ctx context.Context, brand, model string) (*models.HardwareModel, error) {
	var m models.HardwareModel
	err := r.DB(ctx).Where("brand = ? AND model = ?", brand, model).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) SearchModels(ctx context.Context, term string) ([]models.HardwareModel, error) {
	return r.Search(ctx, term, searchColumns, store.SearchOptions{})
}

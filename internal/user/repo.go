// Package user manages login accounts and issues JWTs on login.
package user

import (
	"context"
	"time"

	"assetdb/internal/models"
	"assetdb/internal/store"

	"gorm.io/gorm"
)

// View — пользователь без password_hash.
type View struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func viewOf(u *models.User) *View {
	return &View{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

type Repo struct {
	*store.Store[models.User]
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{Store: store.New[models.User](db, "users", "username", "password_hash")}
}

func (r *Repo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.FindByColumn(ctx, "username", username)
}

func (r *Repo) SearchUsers(ctx context.Context, term string) ([]models.User, error) {
	return r.Search(ctx, term, []string{"id", "username"}, store.SearchOptions{})
}

package user

import (
	"context"
	"fmt"
	"strings"

	"assetdb/internal/apperr"
	"assetdb/internal/auth"
	"assetdb/internal/models"
	"assetdb/internal/store"
)

type Service struct{ repo *Repo }

func NewService(r *Repo) *Service { return &Service{repo: r} }

func (s *Service) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx, nil) }

func (s *Service) Create(ctx context.Context, username, password string) (*View, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.BadRequest("Username and password are required")
	}
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("Username already exists")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, store.Fields{"username": username, "password_hash": hash})
	if err != nil {
		return nil, err
	}
	return viewOf(u), nil
}

func (s *Service) List(ctx context.Context, search string) ([]View, error) {
	var (
		users []models.User
		err   error
	)
	if search != "" {
		users, err = s.repo.SearchUsers(ctx, search)
	} else {
		users, err = s.repo.FindAll(ctx, store.FindOptions{})
	}
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(users))
	for i := range users {
		out = append(out, *viewOf(&users[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*View, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return viewOf(u), nil
}

// Update переводит password в password_hash; прямую запись password_hash не принимает.
func (s *Service) Update(ctx context.Context, id uint, f store.Fields) (*View, error) {
	fields := store.Fields{}
	if v, ok := f["username"]; ok {
		name := strings.TrimSpace(fmt.Sprint(v))
		if v == nil || name == "" {
			return nil, apperr.BadRequest("Username and password are required")
		}
		other, err := s.repo.FindByUsername(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, apperr.BadRequest("Username already exists")
		}
		fields["username"] = name
	}
	if v, ok := f["password"]; ok && v != nil && fmt.Sprint(v) != "" {
		hash, err := auth.HashPassword(fmt.Sprint(v))
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}
	u, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return viewOf(u), nil
}

func (s *Service) Delete(ctx context.Context, id uint) (string, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("User not found")
	}
	return "User deleted successfully", nil
}

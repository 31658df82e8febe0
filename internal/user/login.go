package user

import (
	"context"
	"strings"

	"assetdb/internal/apperr"
	"assetdb/internal/auth"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

type Authenticator struct {
	repo   *Repo
	tokens *auth.Tokens
}

func NewAuthenticator(r *Repo, t *auth.Tokens) *Authenticator {
	return &Authenticator{repo: r, tokens: t}
}

// Login проверяет пароль и выдаёт JWT. Неизвестный пользователь и неверный пароль неразличимы.
func (a *Authenticator) Login(ctx context.Context, c Credentials) (*LoginResult, error) {
	username := strings.TrimSpace(c.Username)
	if username == "" || c.Password == "" {
		return nil, apperr.BadRequest("Username and password required")
	}
	u, err := a.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, c.Password) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	token, err := a.tokens.Generate(u.ID, u.Username)
	if err != nil {
		return nil, err
	}
	res := &LoginResult{Token: token}
	res.User.ID = u.ID
	res.User.Username = u.Username
	return res, nil
}

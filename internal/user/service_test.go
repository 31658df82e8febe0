package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"assetdb/internal/apperr"
	"assetdb/internal/auth"
	"assetdb/internal/store"
	"assetdb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	repo := NewRepo(testutil.OpenDB(t))
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "")
	assert.EqualError(t, err, "Username and password are required")

	u, err := svc.Create(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	stored, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "s3cret"))

	_, err = svc.Create(ctx, "alice", "other")
	assert.EqualError(t, err, "Username already exists")

	bob, err := svc.Create(ctx, "bob", "pw")
	require.NoError(t, err)
	_, err = svc.Update(ctx, bob.ID, store.Fields{"username": "alice"})
	assert.EqualError(t, err, "Username already exists")

	_, err = svc.Update(ctx, u.ID, store.Fields{"password": "n3w", "password_hash": "plain"})
	require.NoError(t, err)
	stored, err = repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "n3w"))

	found, err := svc.List(ctx, "bo")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "bob", found[0].Username)

	_, err = svc.Get(ctx, 99)
	assert.EqualError(t, err, "User not found")
	_, err = svc.Update(ctx, 99, store.Fields{"password": "x"})
	assert.EqualError(t, err, "User not found")

	msg, err := svc.Delete(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully", msg)
	_, err = svc.Delete(ctx, bob.ID)
	assert.EqualError(t, err, "User not found")
	assert.Equal(t, 404, apperr.StatusOf(err))
}

func TestUserPasswordTooLong(t *testing.T) {
	repo := NewRepo(testutil.OpenDB(t))
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "bob", strings.Repeat("x", 80))
	assert.EqualError(t, err, "Password must not exceed 72 bytes")
	assert.Equal(t, 400, apperr.StatusOf(err))
	missing, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, missing)

	u, err := svc.Create(ctx, "bob", "pw")
	require.NoError(t, err)
	_, err = svc.Update(ctx, u.ID, store.Fields{"password": strings.Repeat("y", 80)})
	assert.Equal(t, 400, apperr.StatusOf(err))
	stored, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "pw"))
}

func TestLogin(t *testing.T) {
	repo := NewRepo(testutil.OpenDB(t))
	svc := NewService(repo)
	tokens := auth.NewTokens("test-secret", time.Hour)
	a := NewAuthenticator(repo, tokens)
	ctx := context.Background()

	u, err := svc.Create(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, err = a.Login(ctx, Credentials{Username: "alice"})
	assert.EqualError(t, err, "Username and password required")
	assert.Equal(t, 400, apperr.StatusOf(err))

	_, err = a.Login(ctx, Credentials{Username: "alice", Password: "wrong"})
	assert.EqualError(t, err, "Invalid credentials")
	assert.Equal(t, 401, apperr.StatusOf(err))

	_, err = a.Login(ctx, Credentials{Username: "nobody", Password: "s3cret"})
	assert.EqualError(t, err, "Invalid credentials")

	res, err := a.Login(ctx, Credentials{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, "alice", res.User.Username)

	claims, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

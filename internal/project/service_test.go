package project

import (
	"context"
	"testing"

	"assetdb/internal/apperr"
	"assetdb/internal/httpx"
	"assetdb/internal/store"
	"assetdb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService(t *testing.T) {
	svc := NewService(NewRepo(testutil.OpenDB(t)))
	ctx := context.Background()

	_, err := svc.Create(ctx, store.Fields{"name": "Billing"})
	assert.EqualError(t, err, "Name and Owner are required")

	p, err := svc.Create(ctx, store.Fields{"name": "Billing", "owner": "finance"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, store.Fields{"name": "Billing", "owner": "someone"})
	assert.EqualError(t, err, "Project Name Billing already exists")
	assert.Equal(t, 400, apperr.StatusOf(err))

	q, err := svc.Create(ctx, store.Fields{"name": "Search", "owner": "core"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, q.ID, store.Fields{"name": "Billing"})
	assert.EqualError(t, err, "Project Name Billing already exists")

	upd, err := svc.Update(ctx, p.ID, store.Fields{"name": "Billing", "owner": "fin-ops"})
	require.NoError(t, err)
	assert.Equal(t, "fin-ops", upd.Owner)

	found, err := svc.List(ctx, "fin-")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = svc.Get(ctx, 50)
	assert.EqualError(t, err, "Not found id=50")
	_, err = svc.Update(ctx, 50, store.Fields{"owner": "x"})
	assert.EqualError(t, err, "Project not found")
	_, err = svc.Delete(ctx, 50)
	assert.EqualError(t, err, "Project ID 50 not found")

	msg, err := svc.Delete(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deleted Project ID 2 Successfully", msg)
}

func TestClusterServiceReshapes(t *testing.T) {
	d := testutil.OpenDB(t)
	projects := NewService(NewRepo(d))
	svc := NewClusterService(NewClusterRepo(d))
	ctx := context.Background()

	p, err := projects.Create(ctx, store.Fields{"name": "Billing", "owner": "finance"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, store.Fields{"name": "k8s-a"})
	assert.EqualError(t, err, "Name and Project id are required")

	c, err := svc.Create(ctx, store.Fields{"name": "k8s-a", "project_id": p.ID, "description": "prod"})
	require.NoError(t, err)
	require.NotNil(t, c.Project.ID)
	assert.Equal(t, p.ID, *c.Project.ID)
	require.NotNil(t, c.Project.ProjectName)
	assert.Equal(t, "Billing", *c.Project.ProjectName)

	_, err = svc.Create(ctx, store.Fields{"name": "k8s-a", "project_id": p.ID})
	assert.EqualError(t, err, "Cluster Name k8s-a already exists")

	_, err = svc.Create(ctx, store.Fields{"name": "orphan", "project_id": 999})
	require.Error(t, err)
	status, msg, _ := httpx.Classify(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Foreign key constraint failed", msg)

	_, err = svc.Create(ctx, store.Fields{"name": "a-first", "project_id": p.ID})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a-first", all[0].Name)

	hit, err := svc.List(ctx, "prod")
	require.NoError(t, err)
	require.Len(t, hit, 1)
	assert.Equal(t, "k8s-a", hit[0].Name)

	upd, err := svc.Update(ctx, c.ID, store.Fields{"description": "staging"})
	require.NoError(t, err)
	assert.Equal(t, "staging", *upd.Description)
	assert.Equal(t, "Billing", *upd.Project.ProjectName)

	_, err = svc.Get(ctx, 99)
	assert.EqualError(t, err, "Not found id=99")
	_, err = svc.Update(ctx, 99, store.Fields{"description": "x"})
	assert.EqualError(t, err, "Cluster not found")

	// проект с кластерами удалить нельзя
	_, err = projects.Delete(ctx, p.ID)
	require.Error(t, err)
	status, _, _ = httpx.Classify(err)
	assert.Equal(t, 400, status)

	msg, err = svc.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deleted Cluster ID 1 Successfully", msg)
}

package location

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetdb/internal/apperr"
	"assetdb/internal/models"
	"assetdb/internal/store"
	"assetdb/internal/testutil"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Service, *gorm.DB, uint) {
	d := testutil.OpenDB(t)
	site := models.Site{Name: "DC1"}
	require.NoError(t, d.Create(&site).Error)
	return NewService(NewRepo(d)), d, site.ID
}

func TestCreateAndDuplicate(t *testing.T) {
	svc, _, siteID := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, store.Fields{"site_id": siteID, "room": "A"})
	assert.EqualError(t, err, "site_id, room, and rack are required")

	l, err := svc.Create(ctx, store.Fields{"site_id": json.Number("1"), "room": "A", "rack": "R1"})
	require.NoError(t, err)
	assert.Equal(t, siteID, l.SiteID)

	_, err = svc.Create(ctx, store.Fields{"site_id": siteID, "room": "A", "rack": "R1"})
	assert.EqualError(t, err, "Location already exists (site_id=1, room=A, rack=R1)")
	assert.Equal(t, 400, apperr.StatusOf(err))
}

func TestUpdateConflictExcludesSelf(t *testing.T) {
	svc, _, siteID := setup(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, store.Fields{"site_id": siteID, "room": "A", "rack": "R1"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, store.Fields{"site_id": siteID, "room": "A", "rack": "R2"})
	require.NoError(t, err)

	// same key as itself is fine
	got, err := svc.Update(ctx, a.ID, store.Fields{"rack": "R1"})
	require.NoError(t, err)
	assert.Equal(t, "R1", got.Rack)

	_, err = svc.Update(ctx, b.ID, store.Fields{"rack": "R1"})
	assert.EqualError(t, err, "Location already exists (site_id=1, room=A, rack=R1)")

	_, err = svc.Update(ctx, 77, store.Fields{"rack": "R9"})
	assert.EqualError(t, err, "Location not found with id=77")
}

func TestUpdateRejectsEmptyKey(t *testing.T) {
	svc, _, siteID := setup(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, store.Fields{"site_id": siteID, "room": "A", "rack": "R1"})
	require.NoError(t, err)

	for _, f := range []store.Fields{{"room": ""}, {"rack": "  "}, {"room": nil}, {"site_id": 0}} {
		_, err = svc.Update(ctx, a.ID, f)
		assert.EqualError(t, err, "site_id, room, and rack are required")
		assert.Equal(t, 400, apperr.StatusOf(err))
	}

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Room)
	assert.Equal(t, "R1", got.Rack)

	trimmed, err := svc.Update(ctx, a.ID, store.Fields{"room": " B "})
	require.NoError(t, err)
	assert.Equal(t, "B", trimmed.Room)
}

func TestFindListAndDelete(t *testing.T) {
	svc, d, siteID := setup(t)
	ctx := context.Background()

	for _, rack := range []string{"R1", "R2"} {
		_, err := svc.Create(ctx, store.Fields{"site_id": siteID, "room": "Hall-1", "rack": rack})
		require.NoError(t, err)
	}
	other := models.Site{Name: "DC2"}
	require.NoError(t, d.Create(&other).Error)
	_, err := svc.Create(ctx, store.Fields{"site_id": other.ID, "room": "B", "rack": "R1"})
	require.NoError(t, err)

	l, err := svc.Find(ctx, siteID, "Hall-1", "R2")
	require.NoError(t, err)
	assert.Equal(t, "R2", l.Rack)

	_, err = svc.Find(ctx, siteID, "Hall-1", "R9")
	assert.EqualError(t, err, "Location not found")
	_, err = svc.Find(ctx, 0, "Hall-1", "R9")
	assert.Equal(t, 400, apperr.StatusOf(err))

	withNames, err := svc.List(ctx, ListOptions{IncludeSiteNames: true})
	require.NoError(t, err)
	rows := withNames.([]WithSite)
	require.Len(t, rows, 3)
	assert.Equal(t, "DC1", rows[0].SiteName)
	assert.Equal(t, "DC2", rows[2].SiteName)

	filtered, err := svc.List(ctx, ListOptions{IncludeSiteNames: true, Search: "Hall"})
	require.NoError(t, err)
	assert.Len(t, filtered.([]WithSite), 2)

	plain, err := svc.List(ctx, ListOptions{Search: "R1"})
	require.NoError(t, err)
	assert.Len(t, plain.([]models.Location), 2)

	bySite, err := svc.ListBySite(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, bySite, 1)

	msg, err := svc.Delete(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deleted Location ID 2 Successfully", msg)
	_, err = svc.Delete(ctx, l.ID)
	assert.EqualError(t, err, "Location ID 2 not found")
}

func TestDeleteSiteInUseIsForeignKeyError(t *testing.T) {
	svc, d, siteID := setup(t)
	_, err := svc.Create(context.Background(), store.Fields{"site_id": siteID, "room": "A", "rack": "R1"})
	require.NoError(t, err)

	err = d.Delete(&models.Site{}, siteID).Error
	require.Error(t, err)
}

func TestFindHTTP(t *testing.T) {
	svc, _, siteID := setup(t)
	_, err := svc.Create(context.Background(), store.Fields{"site_id": siteID, "room": "A", "rack": "R1"})
	require.NoError(t, err)

	r := mux.NewRouter()
	NewHTTP(svc).RegisterRoutes(r.PathPrefix("/api").Subrouter())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/locations/find?siteId=1&room=A&rack=R1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool            `json:"success"`
		Data    models.Location `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "R1", body.Data.Rack)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/locations?includeSiteNames=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"site_name":"DC1"`)
}

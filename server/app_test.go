package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"assetdb/config"
	"assetdb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type client struct {
	t     *testing.T
	h     http.Handler
	token string
}

func newTestApp(t *testing.T, uiDir string) *App {
	t.Helper()
	cfg := &config.Config{
		Env:    "test",
		Server: config.ServerConfig{CORSOrigin: "http://localhost:7070", UIDir: uiDir},
		JWT:    config.JWTConfig{Secret: strings.Repeat("k", 32), Expire: time.Hour},
	}
	return New(cfg, testutil.OpenDB(t))
}

func (c *client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (c *client) create(path string, body any) uint {
	c.t.Helper()
	code, env := c.do(http.MethodPost, path, body)
	require.Equal(c.t, http.StatusCreated, code, env.Message)
	var rec struct {
		ID uint `json:"id"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &rec))
	require.NotZero(c.t, rec.ID)
	return rec.ID
}

func login(t *testing.T, a *App) *client {
	t.Helper()
	c := &client{t: t, h: a.Handler}
	code, env := c.do(http.MethodPost, "/api/users", map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, code)
	assert.NotContains(t, string(env.Data), "password_hash")

	code, env = c.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusOK, code)
	var res struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "admin", res.User.Username)
	c.token = res.Token
	return c
}

func TestAuthBoundary(t *testing.T) {
	a := newTestApp(t, "")
	c := &client{t: t, h: a.Handler}

	code, env := c.do(http.MethodGet, "/api/vendors", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
	assert.Equal(t, "No token provided", env.Message)

	c.token = "garbage"
	code, env = c.do(http.MethodGet, "/api/vendors", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid or expired token", env.Message)

	c.token = ""
	code, env = c.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "ghost", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", env.Message)

	code, env = c.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "ghost"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Username and password required", env.Message)

	code, _ = c.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCatalogEndpoints(t *testing.T) {
	a := newTestApp(t, "")
	c := login(t, a)

	vendorID := c.create("/api/vendors", map[string]any{"name": "Dell"})
	code, env := c.do(http.MethodGet, "/api/vendors", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"Dell"`)

	code, env = c.do(http.MethodPost, "/api/vendors", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Vendor Name are required", env.Message)

	code, env = c.do(http.MethodGet, "/api/vendors/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid id", env.Message)

	code, env = c.do(http.MethodGet, "/api/vendors/999", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Vendor not found", env.Message)

	code, env = c.do(http.MethodDelete, fmt.Sprintf("/api/vendors/%d", vendorID), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Vendor deleted successfully"}`, string(env.Data))

	c.create("/api/hardwaremodels", map[string]any{"brand": "Dell", "model": "R650"})
	code, env = c.do(http.MethodPost, "/api/hardwaremodels", map[string]any{"brand": "Dell", "model": "R650"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Hardware Model Brand: Dell or Model: R650 already exists", env.Message)

	siteID := c.create("/api/sites", map[string]any{"name": "DC1"})
	c.create("/api/locations", map[string]any{"site_id": siteID, "room": "R1", "rack": "A01"})

	code, env = c.do(http.MethodGet, "/api/locations/find?siteId="+fmt.Sprint(siteID)+"&room=R1&rack=A01", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"A01"`)

	// сайт со стойками удалить нельзя
	code, env = c.do(http.MethodDelete, fmt.Sprintf("/api/sites/%d", siteID), nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Foreign key constraint failed", env.Message)
}

func TestHardwareFlow(t *testing.T) {
	a := newTestApp(t, "")
	c := login(t, a)

	modelID := c.create("/api/hardwaremodels", map[string]any{"brand": "Arista", "model": "7050X"})
	siteID := c.create("/api/sites", map[string]any{"name": "DC1"})
	locID := c.create("/api/locations", map[string]any{"site_id": siteID, "room": "R1", "rack": "A01"})
	swID := c.create("/api/switches", map[string]any{"name": "tor-1", "model_id": modelID, "location_id": locID})

	hwID := c.create("/api/hardwares", map[string]any{
		"hostname":    "node-01",
		"location_id": locID,
		"network_interfaces": []any{
			map[string]any{"interface_name": "eth0", "ip_address": "10.0.0.5", "netmask": "255.255.255.0", "is_primary": 1},
		},
		"switches": []any{map[string]any{"id": swID, "port": "Eth1"}},
	})

	code, env := c.do(http.MethodGet, fmt.Sprintf("/api/hardwares/%d", hwID), nil)
	require.Equal(t, http.StatusOK, code)
	var hw struct {
		Hostname string `json:"hostname"`
		Location struct {
			SiteName string `json:"site_name"`
		} `json:"location"`
		Switches []struct {
			ID   uint   `json:"id"`
			Port string `json:"port"`
		} `json:"switches"`
		NetworkInterfaces []struct {
			InterfaceName string `json:"interface_name"`
			IsPrimary     bool   `json:"is_primary"`
		} `json:"network_interfaces"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hw))
	assert.Equal(t, "DC1", hw.Location.SiteName)
	require.Len(t, hw.Switches, 1)
	assert.Equal(t, swID, hw.Switches[0].ID)
	require.Len(t, hw.NetworkInterfaces, 1)
	assert.True(t, hw.NetworkInterfaces[0].IsPrimary)

	code, env = c.do(http.MethodPost, "/api/hardwares", map[string]any{"hostname": "node-01"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, `Hostname "node-01" already exists.`, env.Message)

	code, env = c.do(http.MethodGet, "/api/hardwares/hostname/node-01", nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = c.do(http.MethodGet, "/api/hardwares/hostname/ghost", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, `Hardware with hostname "ghost" not found`, env.Message)

	code, env = c.do(http.MethodGet, "/api/hardwares/rack/A01", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "node-01")

	code, env = c.do(http.MethodGet, fmt.Sprintf("/api/switches/%d/hardware", swID), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"port":"Eth1"`)

	code, env = c.do(http.MethodGet, "/api/hardwares/topology?from=rack&to=switch", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"sw-`)
	assert.NotContains(t, string(env.Data), `"site-DC1"`)

	code, env = c.do(http.MethodGet, "/api/hardwares/999", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Hardware with ID 999 not found", env.Message)

	code, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/hardwares/%d", hwID), nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = c.do(http.MethodGet, "/api/switchconnections", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestMetricsAndCORS(t *testing.T) {
	a := newTestApp(t, "")

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `assetdb_inventory_objects{entity="hardware"} 0`)

	req := httptest.NewRequest(http.MethodOptions, "/api/vendors", nil)
	req.Header.Set("Origin", "http://localhost:7070")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:7070", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUIFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	a := newTestApp(t, dir)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}
	assert.Contains(t, get("/app.js").Body.String(), "console.log")
	assert.Contains(t, get("/hardware/12").Body.String(), "spa")
	assert.Contains(t, get("/").Body.String(), "spa")
	assert.Equal(t, http.StatusNotFound, get("/api/nope").Code)
}

func TestRunRequiresInitialize(t *testing.T) {
	var a App
	assert.ErrorIs(t, a.Run(), ErrNotInitialized)
}

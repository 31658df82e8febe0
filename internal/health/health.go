package health

import (
	"net/http"
	"time"

	"assetdb/internal/db"
	"assetdb/internal/httpx"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// RegisterRoutes — /healthz и /api/health, без обращения к БД.
func RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{
			"status":    "OK",
			"message":   "Server is healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}).Methods(http.MethodGet)
}

// RegisterRoutesWithDB adds /readyz which pings the database.
func RegisterRoutesWithDB(r *mux.Router, d *gorm.DB) {
	RegisterRoutes(r)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.Ping(req.Context(), d); err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}).Methods(http.MethodGet)
}

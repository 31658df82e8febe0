package network

import (
	"net/http"
	"strconv"

	"assetdb/internal/apperr"
	"assetdb/internal/httpx"

	"github.com/gorilla/mux"
)

type SwitchHTTP struct{ svc *SwitchService }

func NewSwitchHTTP(s *SwitchService) *SwitchHTTP { return &SwitchHTTP{svc: s} }

func (h *SwitchHTTP) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/switches", h.create).Methods(http.MethodPost)
	r.HandleFunc("/switches", h.list).Methods(http.MethodGet)
	r.HandleFunc("/switches/location/{id}", h.byLocation).Methods(http.MethodGet)
	r.HandleFunc("/switches/{id}/hardware", h.hardware).Methods(http.MethodGet)
	r.HandleFunc("/switches/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/switches/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/switches/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *SwitchHTTP) create(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	sw, err := h.svc.Create(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Created(w, sw)
}

func (h *SwitchHTTP) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), httpx.Search(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *SwitchHTTP) byLocation(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	items, err := h.svc.ListByLocation(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *SwitchHTTP) hardware(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	items, err := h.svc.ConnectedHardware(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *SwitchHTTP) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	sw, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, sw)
}

func (h *SwitchHTTP) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	sw, err := h.svc.Update(r.Context(), id, f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, sw)
}

func (h *SwitchHTTP) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	msg, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, httpx.Message{Message: msg})
}

// hardwareFilter читает необязательный ?hardware_id=.
func hardwareFilter(r *http.Request) (uint, error) {
	raw := r.URL.Query().Get("hardware_id")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.BadRequest("Invalid hardware_id")
	}
	return uint(n), nil
}

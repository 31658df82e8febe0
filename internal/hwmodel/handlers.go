package hwmodel

import (
	"net/http"

	"assetdb/internal/httpx"

	"github.com/gorilla/mux"
)

type HTTP struct{ svc *Service }

func NewHTTP(s *Service) *HTTP { return &HTTP{svc: s} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/hardwaremodels", h.create).Methods(http.MethodPost)
	r.HandleFunc("/hardwaremodels", h.list).Methods(http.MethodGet)
	r.HandleFunc("/hardwaremodels/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/hardwaremodels/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/hardwaremodels/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *HTTP) create(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	m, err := h.svc.Create(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Created(w, m)
}

func (h *HTTP) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), httpx.Search(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *HTTP) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, m)
}

func (h *HTTP) update(w http.ResponseWriter, r *http.Request) {
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
	m, err := h.svc.Update(r.Context(), id, f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, m)
}

func (h *HTTP) delete(w http.ResponseWriter, r *http.Request) {
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

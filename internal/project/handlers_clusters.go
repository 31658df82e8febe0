package project

import (
	"net/http"

	"assetdb/internal/httpx"

	"github.com/gorilla/mux"
)

type ClusterHTTP struct{ svc *ClusterService }

func NewClusterHTTP(s *ClusterService) *ClusterHTTP { return &ClusterHTTP{svc: s} }

func (h *ClusterHTTP) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/clusters", h.create).Methods(http.MethodPost)
	r.HandleFunc("/clusters", h.list).Methods(http.MethodGet)
	r.HandleFunc("/clusters/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/clusters/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/clusters/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *ClusterHTTP) create(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	c, err := h.svc.Create(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Created(w, c)
}

func (h *ClusterHTTP) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), httpx.Search(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *ClusterHTTP) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, c)
}

func (h *ClusterHTTP) update(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.svc.Update(r.Context(), id, f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, c)
}

func (h *ClusterHTTP) delete(w http.ResponseWriter, r *http.Request) {
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

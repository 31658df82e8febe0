package location

import (
	"net/http"
	"strconv"

	"assetdb/internal/httpx"

	"github.com/gorilla/mux"
)

type HTTP struct{ svc *Service }

func NewHTTP(s *Service) *HTTP { return &HTTP{svc: s} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	// /find до /{id}
	r.HandleFunc("/locations/find", h.find).Methods(http.MethodGet)
	r.HandleFunc("/locations", h.create).Methods(http.MethodPost)
	r.HandleFunc("/locations", h.list).Methods(http.MethodGet)
	r.HandleFunc("/locations/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/locations/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/locations/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *HTTP) create(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	l, err := h.svc.Create(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Created(w, l)
}

func (h *HTTP) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), ListOptions{
		Search:           httpx.Search(r),
		IncludeSiteNames: r.URL.Query().Get("includeSiteNames") == "true",
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *HTTP) find(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	siteID, _ := strconv.ParseUint(q.Get("siteId"), 10, 64)
	l, err := h.svc.Find(r.Context(), uint(siteID), q.Get("room"), q.Get("rack"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, l)
}

func (h *HTTP) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, l)
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
	l, err := h.svc.Update(r.Context(), id, f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, l)
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

package lookup

import (
	"net/http"

	"assetdb/internal/httpx"
	"assetdb/internal/models"

	"github.com/gorilla/mux"
)

type HTTP[T models.Record] struct{ svc *Service[T] }

func NewHTTP[T models.Record](svc *Service[T]) *HTTP[T] { return &HTTP[T]{svc: svc} }

func (h *HTTP[T]) RegisterRoutes(r *mux.Router) {
	base := "/" + h.svc.Kind().Path
	r.HandleFunc(base, h.create).Methods(http.MethodPost)
	r.HandleFunc(base, h.list).Methods(http.MethodGet)
	r.HandleFunc(base+"/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc(base+"/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc(base+"/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *HTTP[T]) create(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	rec, err := h.svc.Create(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Created(w, rec)
}

func (h *HTTP[T]) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), httpx.Search(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *HTTP[T]) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, rec)
}

func (h *HTTP[T]) update(w http.ResponseWriter, r *http.Request) {
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
	rec, err := h.svc.Update(r.Context(), id, f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, rec)
}

func (h *HTTP[T]) delete(w http.ResponseWriter, r *http.Request) {
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

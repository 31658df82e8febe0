package network

import (
	"net/http"

	"assetdb/internal/httpx"

	"github.com/gorilla/mux"
)

/* ——— /switchconnections ——— */

type ConnectionHTTP struct{ svc *ConnectionService }

func NewConnectionHTTP(s *ConnectionService) *ConnectionHTTP { return &ConnectionHTTP{svc: s} }

func (h *ConnectionHTTP) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/switchconnections", h.create).Methods(http.MethodPost)
	r.HandleFunc("/switchconnections", h.list).Methods(http.MethodGet)
	r.HandleFunc("/switchconnections/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/switchconnections/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/switchconnections/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *ConnectionHTTP) create(w http.ResponseWriter, r *http.Request) {
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

func (h *ConnectionHTTP) list(w http.ResponseWriter, r *http.Request) {
	hw, err := hardwareFilter(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	items, err := h.svc.List(r.Context(), hw)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *ConnectionHTTP) get(w http.ResponseWriter, r *http.Request) {
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

func (h *ConnectionHTTP) update(w http.ResponseWriter, r *http.Request) {
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

func (h *ConnectionHTTP) delete(w http.ResponseWriter, r *http.Request) {
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

/* ——— /networkinterfaces ——— */

type InterfaceHTTP struct{ svc *InterfaceService }

func NewInterfaceHTTP(s *InterfaceService) *InterfaceHTTP { return &InterfaceHTTP{svc: s} }

func (h *InterfaceHTTP) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/networkinterfaces", h.create).Methods(http.MethodPost)
	r.HandleFunc("/networkinterfaces", h.list).Methods(http.MethodGet)
	r.HandleFunc("/networkinterfaces/lookup", h.lookup).Methods(http.MethodGet)
	r.HandleFunc("/networkinterfaces/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/networkinterfaces/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/networkinterfaces/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *InterfaceHTTP) create(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	n, err := h.svc.Create(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Created(w, n)
}

func (h *InterfaceHTTP) list(w http.ResponseWriter, r *http.Request) {
	hw, err := hardwareFilter(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	items, err := h.svc.List(r.Context(), hw)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

// GET /networkinterfaces/lookup?ip=... | ?mac=...
func (h *InterfaceHTTP) lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := h.svc.FindByAddress(r.Context(), q.Get("ip"), q.Get("mac"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, n)
}

func (h *InterfaceHTTP) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	n, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, n)
}

func (h *InterfaceHTTP) update(w http.ResponseWriter, r *http.Request) {
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
	n, err := h.svc.Update(r.Context(), id, f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, n)
}

func (h *InterfaceHTTP) delete(w http.ResponseWriter, r *http.Request) {
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

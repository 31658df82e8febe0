package user

import (
	"net/http"

	"assetdb/internal/httpx"

	"github.com/gorilla/mux"
)

type HTTP struct {
	svc  *Service
	auth *Authenticator
}

func NewHTTP(s *Service, a *Authenticator) *HTTP { return &HTTP{svc: s, auth: a} }

// RegisterPublicRoutes — регистрация и вход, без токена.
func (h *HTTP) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/users", h.create).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
}

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/users", h.list).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *HTTP) login(w http.ResponseWriter, r *http.Request) {
	var c Credentials
	if err := httpx.Decode(r, &c); err != nil {
		httpx.Error(w, r, err)
		return
	}
	res, err := h.auth.Login(r.Context(), c)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, res)
}

func (h *HTTP) create(w http.ResponseWriter, r *http.Request) {
	var c Credentials
	if err := httpx.Decode(r, &c); err != nil {
		httpx.Error(w, r, err)
		return
	}
	u, err := h.svc.Create(r.Context(), c.Username, c.Password)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Created(w, u)
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
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, u)
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
	u, err := h.svc.Update(r.Context(), id, f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, u)
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

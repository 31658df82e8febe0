package hardware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"assetdb/internal/httpx"

	"github.com/gorilla/mux"
)

type HTTP struct {
	svc *Service
	now func() time.Time
}

func NewHTTP(s *Service) *HTTP { return &HTTP{svc: s, now: time.Now} }

// Статические пути регистрируются раньше /hardwares/{id}.
func (h *HTTP) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/hardwares", h.create).Methods(http.MethodPost)
	r.HandleFunc("/hardwares", h.list).Methods(http.MethodGet)
	r.HandleFunc("/hardwares/export", h.export).Methods(http.MethodGet)
	r.HandleFunc("/hardwares/topology", h.topology).Methods(http.MethodGet)
	r.HandleFunc("/hardwares/hostname/{hostname}", h.byHostname).Methods(http.MethodGet)
	r.HandleFunc("/hardwares/cluster/{id}", h.byCluster).Methods(http.MethodGet)
	r.HandleFunc("/hardwares/location/{id}", h.byLocation).Methods(http.MethodGet)
	r.HandleFunc("/hardwares/rack/{rack}", h.byRack).Methods(http.MethodGet)
	r.HandleFunc("/hardwares/{id}/relations", h.get).Methods(http.MethodGet)
	r.HandleFunc("/hardwares/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/hardwares/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/hardwares/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *HTTP) create(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	v, err := h.svc.Create(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Created(w, v)
}

func (h *HTTP) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), httpx.Search(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *HTTP) export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.Export(r.Context(), &buf); err != nil {
		httpx.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ReportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ReportFileName(h.now().UnixMilli())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// GET /hardwares/topology?from=site&to=switch
func (h *HTTP) topology(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t, err := h.svc.Topology(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, t)
}

func (h *HTTP) byHostname(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.FindByHostname(r.Context(), mux.Vars(r)["hostname"])
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, v)
}

func (h *HTTP) byCluster(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	items, err := h.svc.FindByCluster(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *HTTP) byLocation(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	items, err := h.svc.FindByLocation(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, items)
}

func (h *HTTP) byRack(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.FindByRack(r.Context(), mux.Vars(r)["rack"])
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
	v, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, v)
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
	v, err := h.svc.Update(r.Context(), id, f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, v)
}

func (h *HTTP) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	v, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, v)
}

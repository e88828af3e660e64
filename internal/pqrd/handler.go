package pqrd

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/dfquintero/plan-seguimiento/internal/auth"
	"github.com/dfquintero/plan-seguimiento/internal/transport"
	"github.com/dfquintero/plan-seguimiento/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*PQRD, error)
	Count() (int64, error)
	GetByLabel(label string) (*PQRD, error)
	BulkLoad(dto BulkLoadDTO) (*BulkLoadResult, error)
	DeleteAll(caller *auth.User) (*DeleteResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// List handles GET /pqrds
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

// Count handles GET /pqrds/count, returning a bare number.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	total, err := h.Service.Count()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, total)
}

// GetByLabel handles GET /pqrds/by/{label_pqrd}
func (h *Handler) GetByLabel(w http.ResponseWriter, r *http.Request) {
	row, err := h.Service.GetByLabel(chi.URLParam(r, "label_pqrd"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, row)
}

// BulkLoad handles POST /pqrds
func (h *Handler) BulkLoad(w http.ResponseWriter, r *http.Request) {
	var dto BulkLoadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.BulkLoad(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

// DeleteAll handles DELETE /pqrds (admin only, enforced in the service).
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.Service.DeleteAll(caller)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

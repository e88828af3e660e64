package habilidad

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/dfquintero/plan-seguimiento/internal/transport"
	"github.com/dfquintero/plan-seguimiento/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*Habilidad, error)
	BulkLoad(dto BulkLoadDTO) (*BulkLoadResult, error)
	Delete(id int64) (*MessageResult, error)
	DeleteAll() (*MessageResult, error)
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

// List handles GET /habilidades
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

// BulkLoad handles POST /habilidades
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

// Delete handles DELETE /habilidades/{habilidad_id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "habilidad_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid habilidad ID")
		return
	}

	result, svcErr := h.Service.Delete(id)
	if svcErr != nil {
		h.HandleServiceError(w, svcErr)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

// DeleteAll handles DELETE /habilidades
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.DeleteAll()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

package reporte

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/dfquintero/plan-seguimiento/internal/transport"
	"github.com/dfquintero/plan-seguimiento/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*Reporte, error)
	GetByEntidad(entidad string) (*EntidadReportes, error)
	BulkLoad(dto BulkLoadDTO) (*BulkLoadResult, error)
	DeleteAll() (*DeleteResult, error)
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

// List handles GET /reports
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

// GetByEntidad handles GET /reports/{nombre_entidad}
func (h *Handler) GetByEntidad(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.GetByEntidad(chi.URLParam(r, "nombre_entidad"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, out)
}

// BulkLoad handles POST /reports
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

// DeleteAll handles DELETE /reports
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.DeleteAll()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

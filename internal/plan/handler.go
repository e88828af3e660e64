package plan

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/dfquintero/plan-seguimiento/internal/auth"
	"github.com/dfquintero/plan-seguimiento/internal/transport"
	"github.com/dfquintero/plan-seguimiento/pkg/logger"
)

type ServiceAPI interface {
	ListPlans(caller *auth.User, q string, skip, limit int) ([]*PlanAccion, error)
	GetPlan(id int64) (*PlanAccion, error)
	CreatePlan(caller *auth.User, dto CreatePlanDTO) (*PlanAccion, error)
	UpdatePlan(id int64, dto UpdatePlanDTO) (*PlanAccion, error)
	SubmitForReview(id int64) (*PlanAccion, error)
	AddObservation(id int64, dto ObservationDTO) (*PlanAccion, error)
	SetStatus(id int64, dto StatusDTO) (*PlanAccion, error)
	DeletePlan(id int64) error
	UsedIndicators(caller *auth.User) ([]string, error)

	ListFollowUps(planID int64) ([]*Seguimiento, error)
	CreateFollowUp(caller *auth.User, planID int64, dto SeguimientoDTO) (*Seguimiento, error)
	UpdateFollowUp(caller *auth.User, planID, segID int64, dto SeguimientoDTO) (*Seguimiento, error)
	DeleteFollowUp(planID, segID int64) error
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

func (h *Handler) pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return user, true
}

// ListPlans handles GET /seguimiento
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query().Get("q")
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	plans, err := h.Service.ListPlans(caller, q, skip, limit)
	if err != nil {
		h.Logger.Error("ListPlans: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, plans)
}

// CreatePlan handles POST /seguimiento
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var dto CreatePlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.CreatePlan(caller, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// GetPlan handles GET /seguimiento/{plan_id}
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r, "plan_id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	p, err := h.Service.GetPlan(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// UpdatePlan handles PUT /seguimiento/{plan_id}
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r, "plan_id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	var dto UpdatePlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.UpdatePlan(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// SubmitForReview handles POST /seguimiento/{plan_id}/enviar_revision
func (h *Handler) SubmitForReview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r, "plan_id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	p, err := h.Service.SubmitForReview(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// AddObservation handles POST /seguimiento/{plan_id}/observacion
func (h *Handler) AddObservation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r, "plan_id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	var dto ObservationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.AddObservation(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// SetStatus handles POST /seguimiento/{plan_id}/estado?estado=...
// The new estado travels as a query parameter, a contract the frontend
// already depends on.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r, "plan_id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	dto := StatusDTO{Estado: r.URL.Query().Get("estado")}
	p, err := h.Service.SetStatus(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// DeletePlan handles DELETE /seguimiento/{plan_id}
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r, "plan_id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	if err := h.Service.DeletePlan(id); err != nil {
		h.Logger.Warn("DeletePlan: service error", "error", err, "plan_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// UsedIndicators handles GET /seguimiento/indicadores_usados
func (h *Handler) UsedIndicators(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	indicators, err := h.Service.UsedIndicators(caller)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if indicators == nil {
		indicators = []string{}
	}
	h.WriteJSON(w, http.StatusOK, indicators)
}

// ListFollowUps handles GET /seguimiento/{plan_id}/seguimiento
func (h *Handler) ListFollowUps(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r, "plan_id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	entries, err := h.Service.ListFollowUps(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entries)
}

// CreateFollowUp handles POST /seguimiento/{plan_id}/seguimiento
func (h *Handler) CreateFollowUp(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, valid := h.pathID(r, "plan_id")
	if !valid {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	var dto SeguimientoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.CreateFollowUp(caller, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entry)
}

// UpdateFollowUp handles PUT /seguimiento/{plan_id}/seguimiento/{seg_id}
func (h *Handler) UpdateFollowUp(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	planID, validPlan := h.pathID(r, "plan_id")
	segID, validSeg := h.pathID(r, "seg_id")
	if !validPlan || !validSeg {
		h.WriteError(w, http.StatusBadRequest, "invalid ID")
		return
	}

	var dto SeguimientoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.UpdateFollowUp(caller, planID, segID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entry)
}

// DeleteFollowUp handles DELETE /seguimiento/{plan_id}/seguimiento/{seg_id}
func (h *Handler) DeleteFollowUp(w http.ResponseWriter, r *http.Request) {
	planID, validPlan := h.pathID(r, "plan_id")
	segID, validSeg := h.pathID(r, "seg_id")
	if !validPlan || !validSeg {
		h.WriteError(w, http.StatusBadRequest, "invalid ID")
		return
	}

	if err := h.Service.DeleteFollowUp(planID, segID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

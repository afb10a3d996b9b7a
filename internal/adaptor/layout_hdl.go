package adaptor

import (
	"encoding/json"
	"net/http"

	"floor-layout/internal/dto/request"
	"floor-layout/internal/usecase"
	"floor-layout/pkg/utils"

	"go.uber.org/zap"
)

type LayoutHandler struct {
	service usecase.LayoutService
	log     *zap.Logger
}

func NewLayoutHandler(service usecase.LayoutService, log *zap.Logger) *LayoutHandler {
	return &LayoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "layout")),
	}
}

// decodeLayout reads and schema-checks a layout body. It writes the 400 itself
// and returns false when the body is unusable.
func (h *LayoutHandler) decodeLayout(w http.ResponseWriter, r *http.Request, operation string) (*request.LayoutRequest, bool) {
	var req request.LayoutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid request body",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseValidationError(w, "Invalid request body", "", nil)
		return nil, false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		respondSchemaErrors(w, h.log, validationErrors, operation)
		return nil, false
	}

	return &req, true
}

// Activate handles POST /api/floor/layout/activate
func (h *LayoutHandler) Activate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLayout(w, r, "activate layout")
	if !ok {
		return
	}

	tenantID := utils.GetTenantIDFromContext(r.Context())
	res, err := h.service.Activate(r.Context(), tenantID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "activate layout")
		return
	}

	utils.WriteJSON(w, http.StatusOK, res)
}

// SaveDraft handles POST /api/floor/layout/draft
func (h *LayoutHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLayout(w, r, "save draft")
	if !ok {
		return
	}

	tenantID := utils.GetTenantIDFromContext(r.Context())
	res, err := h.service.SaveDraft(r.Context(), tenantID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "save draft")
		return
	}

	utils.WriteJSON(w, http.StatusOK, res)
}

// GetDraft handles GET /api/floor/layout/draft
func (h *LayoutHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.GetDraft(r.Context(), utils.GetTenantIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "get draft")
		return
	}

	utils.ResponseSuccess(w, "success", draft)
}

// DiscardDraft handles DELETE /api/floor/layout/draft
func (h *LayoutHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DiscardDraft(r.Context(), utils.GetTenantIDFromContext(r.Context())); err != nil {
		handleServiceError(w, h.log, err, "discard draft")
		return
	}

	utils.ResponseSuccess(w, "Draft discarded", nil)
}

// GetActive handles GET /api/floor/layout/active
func (h *LayoutHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	layout, err := h.service.GetActive(r.Context(), utils.GetTenantIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "get active layout")
		return
	}

	utils.ResponseSuccess(w, "success", layout)
}

// History handles GET /api/floor/layout/history?page=&per_page=
func (h *LayoutHandler) History(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		respondSchemaErrors(w, h.log, validationErrors, "get layout history")
		return
	}

	history, err := h.service.History(r.Context(), utils.GetTenantIDFromContext(r.Context()), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get layout history")
		return
	}

	utils.ResponseSuccess(w, "success", history)
}

// Validate handles POST /api/floor/layout/validate. Domain issues come back
// with 200 so the editor can list them while editing continues.
func (h *LayoutHandler) Validate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLayout(w, r, "validate layout")
	if !ok {
		return
	}

	utils.WriteJSON(w, http.StatusOK, h.service.Validate(r.Context(), req))
}

// EditorConfig handles GET /api/floor/editor/config
func (h *LayoutHandler) EditorConfig(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.EditorConfig())
}

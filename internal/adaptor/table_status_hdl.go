package adaptor

import (
	"encoding/json"
	"net/http"

	"floor-layout/internal/dto/request"
	"floor-layout/internal/usecase"
	"floor-layout/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TableStatusHandler struct {
	service usecase.TableStatusService
	log     *zap.Logger
}

func NewTableStatusHandler(service usecase.TableStatusService, log *zap.Logger) *TableStatusHandler {
	return &TableStatusHandler{
		service: service,
		log:     log.With(zap.String("handler", "table_status")),
	}
}

// List handles GET /api/floor/tables/status
func (h *TableStatusHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.service.List(r.Context(), utils.GetTenantIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "list table statuses")
		return
	}

	utils.ResponseSuccess(w, "success", statuses)
}

// UpdateStatus handles PUT /api/floor/tables/{tableId}/status
func (h *TableStatusHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableId")

	var req request.UpdateTableStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseValidationError(w, "Invalid request body", "", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		respondSchemaErrors(w, h.log, validationErrors, "update table status")
		return
	}

	res, err := h.service.UpdateStatus(r.Context(), utils.GetTenantIDFromContext(r.Context()), tableID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update table status")
		return
	}

	utils.ResponseSuccess(w, "Table status updated", res)
}

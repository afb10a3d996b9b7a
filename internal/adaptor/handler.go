package adaptor

import (
	"errors"
	"net/http"

	"floor-layout/internal/usecase"
	"floor-layout/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Layout      *LayoutHandler
	TableStatus *TableStatusHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Layout:      NewLayoutHandler(service.Layout, log),
		TableStatus: NewTableStatusHandler(service.TableStatus, log),
	}
}

// handleServiceError maps service errors to responses: domain rejections are
// 400 with their code, missing rows 404, everything else 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var layoutErr *usecase.LayoutError

	switch {
	case errors.As(err, &layoutErr):
		log.Warn(operation+" rejected",
			zap.String("operation", operation),
			zap.String("code", layoutErr.Code),
			zap.String("reason", layoutErr.Message))
		utils.ResponseValidationError(w, layoutErr.Message, layoutErr.Code, layoutErr.Details)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Failed to "+operation)
	}
}

// respondSchemaErrors writes a 400 for field-level validation failures.
func respondSchemaErrors(w http.ResponseWriter, log *zap.Logger, errs map[string]string, operation string) {
	log.Warn(operation+" validation failed",
		zap.String("operation", operation),
		zap.Any("fields", errs))
	utils.ResponseValidationError(w, "Invalid request: "+utils.FormatValidationErrors(errs), "", errs)
}

package wire

import (
	"floor-layout/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTableStatus(r chi.Router, tableStatusHandler *adaptor.TableStatusHandler) {
	r.Get("/tables/status", tableStatusHandler.List)

	// PUT /api/floor/tables/{tableId}/status - accepts FREE/SEATED/RESERVED/DIRTY or the editor aliases
	r.Put("/tables/{tableId}/status", tableStatusHandler.UpdateStatus)
}

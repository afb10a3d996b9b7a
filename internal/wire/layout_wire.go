package wire

import (
	"floor-layout/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireLayout(r chi.Router, layoutHandler *adaptor.LayoutHandler) {
	r.Route("/layout", func(r chi.Router) {
		// POST /api/floor/layout/activate - validate, archive the current layout, publish this one
		r.Post("/activate", layoutHandler.Activate)

		// POST /api/floor/layout/validate - advisory check, never persists
		r.Post("/validate", layoutHandler.Validate)

		r.Get("/active", layoutHandler.GetActive)
		r.Get("/history", layoutHandler.History)

		r.Post("/draft", layoutHandler.SaveDraft)
		r.Get("/draft", layoutHandler.GetDraft)
		r.Delete("/draft", layoutHandler.DiscardDraft)
	})

	// GET /api/floor/editor/config - grid and canvas defaults for the editor
	r.Get("/editor/config", layoutHandler.EditorConfig)
}

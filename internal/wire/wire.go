package wire

import (
	"net/http"

	"floor-layout/internal/adaptor"
	"floor-layout/internal/data/cache"
	"floor-layout/internal/data/repository"
	"floor-layout/internal/usecase"
	"floor-layout/pkg/middleware"
	"floor-layout/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, layoutCache cache.LayoutCache, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, layoutCache, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, config, logger),
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	r.Route("/api/floor", func(r chi.Router) {
		r.Use(middleware.Tenant(config.Floor.DefaultTenant, logger))

		wireLayout(r, handler.Layout)
		wireTableStatus(r, handler.TableStatus)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

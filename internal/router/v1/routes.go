package v1

import (
	"github.com/evyataryagoni/ipdata/internal/handler"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all v1 API routes.
func SetupRoutes(ipDataHandler *handler.IPDataHandler) chi.Router {
	r := chi.NewRouter()

	r.Post("/ipdata", ipDataHandler.Create)
	r.Post("/ipdata/manual", ipDataHandler.CreateManual)
	r.Get("/ipdata/{ip}", ipDataHandler.Get)
	r.Delete("/ipdata/{ip}", ipDataHandler.Delete)

	return r
}

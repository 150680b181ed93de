package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/mediaboard/services/canvas/application/handlers"
	appsvcs "github.com/ghuser/mediaboard/services/canvas/application/services"
	"github.com/ghuser/mediaboard/services/canvas/application/surface"
)

// CanvasRoutes registers item and canvas-session endpoints on the provided chi router.
func CanvasRoutes(r chi.Router, svcs *appsvcs.Services, sessions *surface.Sessions) {
	r.Group(func(r chi.Router) {
		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
				r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
				r.Route("/{itemID}", func(r chi.Router) {
					r.Patch("/", handlers.NewPatchItemHandler(svcs).Execute)
					r.Delete("/", handlers.NewDeleteItemHandler(svcs).Execute)
					r.Post("/duplicate", handlers.NewDuplicateItemHandler(svcs).Execute)
					r.Post("/edit", handlers.NewEditItemHandler(svcs).Execute)
					r.Post("/file", handlers.NewAttachFileHandler(svcs).Execute)
				})
			})
			r.Post("/canvas", handlers.NewOpenCanvasHandler(sessions).Execute)
		})

		r.Route("/canvas/{sessionID}", func(r chi.Router) {
			r.Get("/", handlers.NewGetCanvasHandler(sessions).Execute)
			r.Delete("/", handlers.NewCloseCanvasHandler(sessions).Execute)
			r.Post("/pointer", handlers.NewPointerHandler(sessions).Execute)
			r.Post("/zoom", handlers.NewZoomHandler(sessions).Execute)
			r.Put("/viewport", handlers.NewResizeHandler(sessions).Execute)
			r.Post("/menu", handlers.NewMenuHandler(sessions).Execute)
			r.Post("/items", handlers.NewSpawnItemHandler(sessions, svcs.Production).Execute)
		})
	})
}

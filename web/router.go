package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"github.com/vidhanio/scheduletf/controller"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(ctrl, render))
	r.Get("/health", healthHandler(ctrl, render))

	r.Route("/teams/{guildID:\\d+}", func(r chi.Router) {
		r.Get("/schedule", scheduleHandler(ctrl, render))
		r.Post("/schedule/refresh", refreshScheduleHandler(ctrl, render))
	})

	return r
}

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-inventory/internal/httpx"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

// RouteRegistrar is implemented by every resource handler.
type RouteRegistrar interface {
	Routes(r chi.Router)
}

// NewRouter mounts the handlers under /api/v1 and adds /healthz, which pings the database.
func NewRouter(db *sqlx.DB, log logger.ZapLogger, handlers ...RouteRegistrar) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recovery(log))
	r.Use(Logger(log))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			httpx.WriteSuccess(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		for _, h := range handlers {
			h.Routes(v1)
		}
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteSuccess(w, http.StatusNotFound, httpx.ErrorResponse{Code: "not_found", Message: "route not found"})
	})
	return r
}

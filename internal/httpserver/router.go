package httpserver

import (
	"net/http"

	"go.uber.org/zap"

	"shieldops/internal/auth"
	"shieldops/internal/reports"
)

type RouterConfig struct {
	Logger      *zap.SugaredLogger
	Auth        *auth.Service
	Catalog     *reports.Catalog
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	reject := errorWriter(logger)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth
	secured := auth.Guard(cfg.Auth.Issuer(), reject)
	adminOnly := auth.RequireRole(reject, auth.RoleAdmin)

	mux.Handle("/api/auth/login", loginHandler(cfg.Auth, reject))
	mux.Handle("/api/auth/me", secured(meHandler()))
	mux.Handle("/api/users", secured(adminOnly(usersHandler(cfg.Auth, reject))))

	// Reports and dashboard admit any bearer the guard accepts; no role gate.
	mux.Handle("/api/reports", secured(&reports.ListHandler{Catalog: cfg.Catalog, Logger: logger}))
	mux.Handle("/api/dashboard", secured(&reports.OverviewHandler{Catalog: cfg.Catalog, Logger: logger}))

	var h http.Handler = mux
	h = withCORS(cfg.CORSOrigins, h)
	h = withRecover(logger, h)
	return withRequestLog(logger, h)
}

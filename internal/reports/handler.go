package reports

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type ListHandler struct {
	Catalog *Catalog
	Logger  *zap.SugaredLogger
}

func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.Logger, h.Catalog.List())
}

type OverviewHandler struct {
	Catalog *Catalog
	Logger  *zap.SugaredLogger
}

func (h *OverviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.Logger, h.Catalog.Overview())
}

func writeJSON(w http.ResponseWriter, logger *zap.SugaredLogger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorw("encode response", "err", err)
	}
}

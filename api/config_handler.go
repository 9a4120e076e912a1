package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/seenimoa/folio/internal/config"
	"github.com/seenimoa/folio/internal/site"
)

// ConfigResponse is the JSON body returned by GET /api/config.
type ConfigResponse struct {
	Config *config.Config `json:"config"`
	Status *site.Status   `json:"status,omitempty"`
}

// handleGetConfig returns the running configuration together with the
// state of the inputs and the last static build.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	st, err := site.Inspect(s.cfg)
	if err != nil {
		s.log.Warn("inspecting site", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, ConfigResponse{Config: s.cfg, Status: st})
}

package httpapi

import (
	"net/http"

	"gym-backend-go/internal/services"
)

// SystemStatus reports a host snapshot taken while the request waits.
func (s *Server) SystemStatus(w http.ResponseWriter, r *http.Request) {
	snapshot, err := services.CaptureSystem(s.Config.MetricsDiskPath)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, snapshot)
}

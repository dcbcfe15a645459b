package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.orchestrator.Stats()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jobs":        s.orchestrator.JobCounts(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"headings":    stats.HeadingCounts(),
		"latency":     stats.Latency(),
	})
}

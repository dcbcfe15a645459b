package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docline/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleJobStatus returns the live snapshot of a single job.
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// handleJobOutline returns the extracted document once a job has completed.
func (s *Server) handleJobOutline(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	snap := job.Snapshot()
	if snap.Status != pipeline.StatusCompleted {
		jsonError(w, "outline not ready: job is "+string(snap.Status), http.StatusNotFound)
		return
	}
	doc, ok := job.Result()
	if !ok {
		jsonError(w, "outline missing", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

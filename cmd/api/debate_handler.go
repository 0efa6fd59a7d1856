package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"roundtable/internal/debate"
)

type debateRequest struct {
	Topic  string `json:"topic"`
	UserID string `json:"user_id"`
}

func (r *debateRequest) normalize() {
	if strings.TrimSpace(r.Topic) == "" {
		r.Topic = "Starwars"
	}
	if strings.TrimSpace(r.UserID) == "" {
		r.UserID = "default_user"
	}
}

// handleDebate runs a debate inline and streams newline-delimited chunks:
// status strings first, then exactly one JSON artifact as the last line.
func (s *apiServer) handleDebate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req debateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.normalize()
	log.Printf("API request received: topic=%q user=%s", req.Topic, req.UserID)

	events, err := s.svc.Stream(r.Context(), req.Topic, req.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	flusher, canFlush := w.(http.Flusher)

	for ev := range events {
		switch ev.Kind {
		case debate.EventStatus:
			fmt.Fprintf(w, "%s\n", ev.Status)
		case debate.EventArtifact:
			fmt.Fprintf(w, "%s\n", ev.Artifact)
		case debate.EventFailure:
			fmt.Fprintf(w, "error: %s\n", ev.Error)
		}
		if canFlush {
			flusher.Flush()
		}
	}
}

// handleStart launches a detached run and returns its run ID for watching.
func (s *apiServer) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req debateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.normalize()

	runID, err := s.svc.Start(req.Topic, req.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"run_id": runID})
}

// handleResult serves a completed run's final artifact from the cache.
func (s *apiServer) handleResult(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimPrefix(r.URL.Path, "/api/results/")
	if runID == "" {
		http.Error(w, "run_id required", http.StatusBadRequest)
		return
	}
	artifact, ok := s.svc.registry.Result(runID)
	if !ok {
		http.Error(w, "result not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(artifact)
}

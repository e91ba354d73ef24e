package main

import (
	"encoding/json"
	"net/http"
	"time"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *server) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		_ = json.NewEncoder(w).Encode(apiResponse{Success: false, Error: "Method not allowed"})
		return
	}
	_ = json.NewEncoder(w).Encode(apiResponse{Success: true, Data: map[string]interface{}{
		"active_runs": s.jobs.Len(),
	}})
}

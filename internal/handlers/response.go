package handlers

import (
	"encoding/json"
	"net/http"
)

func responseWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func responseWithError(w http.ResponseWriter, code int, message string) {
	responseWithJSON(w, code, map[string]any{"error": message})
}

func healthCheck(w http.ResponseWriter, err error) {
	if err != nil {
		responseWithJSON(w, http.StatusServiceUnavailable, map[string]any{
			"service": "personal-planner",
			"status":  "degraded",
			"error":   err.Error(),
		})
		return
	}
	responseWithJSON(w, http.StatusOK, map[string]any{
		"service": "personal-planner",
		"status":  "ok",
	})
}

package main

import (
	"encoding/json"
	"log"
	"net/http"

	"cardkeep/config"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler returns the current configuration. The Gemini API
// key is masked so it never leaves the server.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		if cfg.GeminiAPIKey != "" {
			cfg.GeminiAPIKey = "********"
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler persists a new configuration.
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "Invalid request body.", http.StatusBadRequest)
			return
		}

		if newCfg.Port < 0 || newCfg.Port > 65535 {
			writeJSONError(w, "Port must be between 0 and 65535.", http.StatusBadRequest)
			return
		}

		// A masked key from GetConfigHandler means "keep the stored one".
		if newCfg.GeminiAPIKey == "********" {
			newCfg.GeminiAPIKey = config.GetConfig().GeminiAPIKey
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			writeJSONError(w, "Failed to save configuration.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Configuration saved."})
	}
}

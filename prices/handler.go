package prices

import (
	"encoding/json"
	"log"
	"net/http"
)

// GetPricesHandler serves GET /api/prices?query=<string>.
func GetPricesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if query == "" {
			http.Error(w, "query parameter is required", http.StatusBadRequest)
			return
		}

		analysis := Analyze(query)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(analysis); err != nil {
			log.Printf("Error encoding price analysis for %q: %v", query, err)
		}
	}
}

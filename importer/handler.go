package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"cardkeep/model"
	"cardkeep/parsers"

	"github.com/jmoiron/sqlx"
)

const maxImportBytes = 10 << 20 // 10 MB

// ImportCardsHandler accepts a multipart upload (file + columnMap JSON
// string) and runs the column-mapping import pipeline. A file-level
// parse failure aborts the request; per-row failures are reported in
// the results list with HTTP 200.
func ImportCardsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		log.Println("Received card import request...")

		r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			respondJSONError(w, "File upload error: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			respondJSONError(w, "A file is required.", http.StatusBadRequest)
			return
		}
		defer file.Close()

		mimeType := fileHeader.Header.Get("Content-Type")
		if !parsers.IsAllowedImportMime(mimeType) {
			respondJSONError(w, fmt.Sprintf("Unsupported file type: %s", mimeType), http.StatusBadRequest)
			return
		}

		var mapping model.ColumnMapping
		if err := json.Unmarshal([]byte(r.FormValue("columnMap")), &mapping); err != nil {
			respondJSONError(w, "columnMap must be a valid JSON object.", http.StatusBadRequest)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			respondJSONError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}

		rows, err := parsers.ParseTabularFile(data, mimeType)
		if err != nil {
			log.Printf("Failed to parse import file %s: %v", fileHeader.Filename, err)
			respondJSONError(w, "Failed to parse file: "+err.Error(), http.StatusBadRequest)
			return
		}

		results := ImportRows(db, rows, mapping)

		imported, failed := 0, 0
		for _, result := range results {
			if result.Success {
				imported++
			} else {
				failed++
			}
		}
		log.Printf("Import finished for %s: %d imported, %d failed", fileHeader.Filename, imported, failed)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": fmt.Sprintf("%d imported, %d failed", imported, failed),
			"results": results,
		})
	}
}

func respondJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

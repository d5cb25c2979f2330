package recognizer

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

const maxImageBytes = 5 << 20 // 5 MB

var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// RecognizeCardHandler serves POST /api/recognize-card. A nil
// recognizer (no API key configured) reports the feature unavailable.
func RecognizeCardHandler(rec *Recognizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if rec == nil {
			respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"message": "Card recognition is not configured. Set a Gemini API key.",
			})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message": "Image upload error: " + err.Error(),
			})
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, fileHeader, err := r.FormFile("image")
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message": "An image is required.",
			})
			return
		}
		defer file.Close()

		mimeType := fileHeader.Header.Get("Content-Type")
		if !allowedImageMimes[mimeType] {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message": "Unsupported image type: " + mimeType,
			})
			return
		}

		image, err := io.ReadAll(file)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message": "Failed to read image: " + err.Error(),
			})
			return
		}

		log.Printf("Recognizing card from %s (%d bytes)...", fileHeader.Filename, len(image))

		card, err := rec.Recognize(r.Context(), image, mimeType)
		if errors.Is(err, ErrPlayerNameMissing) {
			respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"message":     "Could not identify the player. Fill in the name manually.",
				"partialData": card,
			})
			return
		}
		if err != nil {
			log.Printf("Card recognition failed: %v", err)
			respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"message": "Card recognition failed.",
			})
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Card recognized.",
			"card":    card,
		})
	}
}

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

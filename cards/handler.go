package cards

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"cardkeep/cardmanager"
	"cardkeep/database"
	"cardkeep/model"
	"cardkeep/prices"

	"github.com/jmoiron/sqlx"
)

func filterFromQuery(r *http.Request) model.CardFilter {
	q := r.URL.Query()
	return model.CardFilter{
		Search:    q.Get("search"),
		Sport:     q.Get("sport"),
		Year:      q.Get("year"),
		Brand:     q.Get("brand"),
		Condition: q.Get("condition"),
		SortBy:    q.Get("sortBy"),
	}
}

// CollectionHandler serves /api/cards: GET lists with filters, POST
// creates, DELETE removes the whole collection.
func CollectionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listCards(db, w, r)
		case http.MethodPost:
			createCard(db, w, r)
		case http.MethodDelete:
			deleteAllCards(db, w)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func listCards(db *sqlx.DB, w http.ResponseWriter, r *http.Request) {
	cards, err := database.ListCards(db, filterFromQuery(r))
	if err != nil {
		log.Printf("Error listing cards: %v", err)
		http.Error(w, "Failed to list cards", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cards); err != nil {
		log.Printf("Error encoding card list: %v", err)
	}
}

func createCard(db *sqlx.DB, w http.ResponseWriter, r *http.Request) {
	var input model.CardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	card, err := cardmanager.BuildCard(input)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	stored, err := database.CreateCard(db, *card)
	if err != nil {
		log.Printf("Error creating card: %v", err)
		http.Error(w, "Failed to create card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(stored)
}

func deleteAllCards(db *sqlx.DB, w http.ResponseWriter) {
	count, err := database.DeleteAllCards(db)
	if err != nil {
		log.Printf("Error deleting all cards: %v", err)
		http.Error(w, "Failed to delete cards", http.StatusInternalServerError)
		return
	}
	log.Printf("Deleted all cards (%d rows)", count)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": fmt.Sprintf("Deleted %d cards", count),
		"count":   count,
	})
}

// CardItemHandler serves /api/cards/{id} (GET/PATCH/DELETE) and
// /api/cards/{id}/price (GET).
func CardItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/cards/")

		wantPrice := false
		if strings.HasSuffix(path, "/price") {
			wantPrice = true
			path = strings.TrimSuffix(path, "/price")
		}

		id, err := strconv.ParseInt(path, 10, 64)
		if err != nil {
			writeJSONError(w, "Invalid card id", http.StatusBadRequest)
			return
		}

		if wantPrice {
			if r.Method != http.MethodGet {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			cardPrice(db, w, id)
			return
		}

		switch r.Method {
		case http.MethodGet:
			getCard(db, w, id)
		case http.MethodPatch:
			patchCard(db, w, r, id)
		case http.MethodDelete:
			deleteCard(db, w, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func getCard(db *sqlx.DB, w http.ResponseWriter, id int64) {
	card, err := database.GetCardByID(db, id)
	if err != nil {
		log.Printf("Error getting card %d: %v", id, err)
		http.Error(w, "Failed to get card", http.StatusInternalServerError)
		return
	}
	if card == nil {
		writeJSONError(w, "Card not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(card)
}

func patchCard(db *sqlx.DB, w http.ResponseWriter, r *http.Request, id int64) {
	var input model.CardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := cardmanager.ValidatePartial(&input); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := database.UpdateCard(db, id, input)
	if err != nil {
		log.Printf("Error updating card %d: %v", id, err)
		http.Error(w, "Failed to update card", http.StatusInternalServerError)
		return
	}
	if card == nil {
		writeJSONError(w, "Card not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(card)
}

func deleteCard(db *sqlx.DB, w http.ResponseWriter, id int64) {
	removed, err := database.DeleteCard(db, id)
	if err != nil {
		log.Printf("Error deleting card %d: %v", id, err)
		http.Error(w, "Failed to delete card", http.StatusInternalServerError)
		return
	}
	if !removed {
		writeJSONError(w, "Card not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func cardPrice(db *sqlx.DB, w http.ResponseWriter, id int64) {
	card, err := database.GetCardByID(db, id)
	if err != nil {
		log.Printf("Error getting card %d for price research: %v", id, err)
		http.Error(w, "Failed to get card", http.StatusInternalServerError)
		return
	}
	if card == nil {
		writeJSONError(w, "Card not found", http.StatusNotFound)
		return
	}

	query := prices.QueryForCard(*card)
	log.Printf("Researching price for card %d: %q", id, query)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prices.Analyze(query))
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

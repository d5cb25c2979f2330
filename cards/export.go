package cards

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cardkeep/database"

	"github.com/jmoiron/sqlx"
)

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportCardsHandler writes the (filtered) collection as a CSV
// download. The same query parameters as the list endpoint apply.
func ExportCardsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		cards, err := database.ListCards(db, filterFromQuery(r))
		if err != nil {
			log.Printf("Error listing cards for export: %v", err)
			http.Error(w, "Failed to export cards", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM for Excel

		header := []string{
			"Player Name", "Sport", "Year", "Brand", "Condition", "Card Set",
			"Card Number", "Purchase Price", "Current Value", "Notes",
			"Image URL", "Created At",
		}
		buf.WriteString(strings.Join(header, ",") + "\r\n")

		for _, card := range cards {
			record := []string{
				quoteAll(card.PlayerName),
				quoteAll(card.Sport),
				fmt.Sprintf("%d", card.Year),
				quoteAll(card.Brand),
				quoteAll(card.Condition),
				quoteAll(card.CardSet),
				quoteAll(card.CardNumber),
				fmt.Sprintf("%.2f", card.PurchasePrice),
				fmt.Sprintf("%.2f", card.CurrentValue),
				quoteAll(card.Notes),
				quoteAll(card.ImageURL),
				quoteAll(card.CreatedAt),
			}
			buf.WriteString(strings.Join(record, ",") + "\r\n")
		}

		filename := fmt.Sprintf("cardkeep_collection_%s.csv", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

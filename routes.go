package main

import (
	"net/http"

	"cardkeep/cards"
	"cardkeep/importer"
	"cardkeep/prices"
	"cardkeep/recognizer"
	"cardkeep/users"

	"github.com/jmoiron/sqlx"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, rec *recognizer.Recognizer) {

	mux.HandleFunc("/api/cards", cards.CollectionHandler(dbConn))
	mux.HandleFunc("/api/cards/", cards.CardItemHandler(dbConn))

	mux.HandleFunc("/api/import", importer.ImportCardsHandler(dbConn))
	mux.HandleFunc("/api/export", cards.ExportCardsHandler(dbConn))

	mux.HandleFunc("/api/prices", prices.GetPricesHandler())

	mux.HandleFunc("/api/recognize-card", recognizer.RecognizeCardHandler(rec))

	mux.HandleFunc("/api/users", users.UsersHandler(dbConn))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}

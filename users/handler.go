package users

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"cardkeep/database"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// UsersHandler serves /api/users: GET lists users, POST creates one.
// Passwords are stored exactly as supplied and never returned.
func UsersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			users, err := database.GetAllUsers(db)
			if err != nil {
				log.Printf("Error listing users: %v", err)
				http.Error(w, "Failed to list users", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(users)

		case http.MethodPost:
			var payload struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				writeJSONError(w, "Invalid request body.", http.StatusBadRequest)
				return
			}
			payload.Username = strings.TrimSpace(payload.Username)
			if payload.Username == "" || payload.Password == "" {
				writeJSONError(w, "username and password are required", http.StatusBadRequest)
				return
			}

			// let the UNIQUE constraint arbitrate duplicates; a
			// pre-check would race with concurrent inserts
			user, err := database.CreateUser(db, payload.Username, payload.Password)
			if err != nil {
				var sqliteErr sqlite3.Error
				if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
					writeJSONError(w, "username is already taken", http.StatusConflict)
					return
				}
				log.Printf("Error creating user %s: %v", payload.Username, err)
				http.Error(w, "Failed to create user", http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(user)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

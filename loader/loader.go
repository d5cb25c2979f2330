package loader

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS cards (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	player_name    TEXT NOT NULL,
	sport          TEXT NOT NULL,
	year           INTEGER NOT NULL,
	brand          TEXT NOT NULL,
	condition      TEXT NOT NULL,
	card_set       TEXT NOT NULL DEFAULT '',
	card_number    TEXT NOT NULL DEFAULT '',
	purchase_price REAL NOT NULL DEFAULT 0,
	current_value  REAL NOT NULL DEFAULT 0,
	notes          TEXT NOT NULL DEFAULT '',
	image_url      TEXT NOT NULL DEFAULT '',
	user_id        INTEGER,
	created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cards_sport ON cards(sport);
CREATE INDEX IF NOT EXISTS idx_cards_year  ON cards(year);
CREATE INDEX IF NOT EXISTS idx_cards_brand ON cards(brand);

CREATE TABLE IF NOT EXISTS users (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL
);
`

// InitDatabase applies the database schema. Safe to call on every
// startup; all statements are IF NOT EXISTS.
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying database schema...")
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("Schema applied successfully.")
	return nil
}

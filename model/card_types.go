package model

// Card is one physical trading card in the collection.
type Card struct {
	ID            int64   `db:"id" json:"id"`
	PlayerName    string  `db:"player_name" json:"playerName"`
	Sport         string  `db:"sport" json:"sport"`
	Year          int     `db:"year" json:"year"`
	Brand         string  `db:"brand" json:"brand"`
	Condition     string  `db:"condition" json:"condition"`
	CardSet       string  `db:"card_set" json:"cardSet"`
	CardNumber    string  `db:"card_number" json:"cardNumber"`
	PurchasePrice float64 `db:"purchase_price" json:"purchasePrice"`
	CurrentValue  float64 `db:"current_value" json:"currentValue"`
	Notes         string  `db:"notes" json:"notes"`
	ImageURL      string  `db:"image_url" json:"imageUrl"`
	UserID        *int64  `db:"user_id" json:"userId"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
}

// CardInput carries the writable card fields. Pointers distinguish
// "not supplied" from zero values so the same struct serves both
// full inserts and partial updates.
type CardInput struct {
	PlayerName    *string  `json:"playerName"`
	Sport         *string  `json:"sport"`
	Year          *int     `json:"year"`
	Brand         *string  `json:"brand"`
	Condition     *string  `json:"condition"`
	CardSet       *string  `json:"cardSet"`
	CardNumber    *string  `json:"cardNumber"`
	PurchasePrice *float64 `json:"purchasePrice"`
	CurrentValue  *float64 `json:"currentValue"`
	Notes         *string  `json:"notes"`
	ImageURL      *string  `json:"imageUrl"`
	UserID        *int64   `json:"userId"`
}

// CardFilter holds the list query predicates. Empty string (or the
// "all" sentinel for the tag fields) means the predicate is unset.
type CardFilter struct {
	Search    string
	Sport     string
	Year      string
	Brand     string
	Condition string
	SortBy    string
}

// Accepted sortBy values. Anything else falls back to SortNewest.
const (
	SortNewest     = "newest"
	SortPlayerAsc  = "player-asc"
	SortPlayerDesc = "player-desc"
	SortValueAsc   = "value-asc"
	SortValueDesc  = "value-desc"
	SortYearAsc    = "year-asc"
	SortYearDesc   = "year-desc"
)

// CardRecognition is the structured guess extracted from a card photo.
type CardRecognition struct {
	PlayerName string `json:"playerName"`
	Sport      string `json:"sport"`
	Year       int    `json:"year"`
	Brand      string `json:"brand"`
	CardSet    string `json:"cardSet"`
	CardNumber string `json:"cardNumber"`
	Condition  string `json:"condition"`
	Notes      string `json:"notes,omitempty"`
}

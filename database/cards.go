package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cardkeep/model"

	"github.com/jmoiron/sqlx"
)

const cardColumns = `id, player_name, sport, year, brand, condition, card_set, card_number, purchase_price, current_value, notes, image_url, user_id, created_at`

// FilterAll is the sentinel meaning "no filter" for the tag predicates.
const FilterAll = "all"

// ListCards returns every card matching all set predicates, ANDed.
// Unset predicates (empty string, or "all" for the tag fields) are
// ignored. An unparsable year filter is treated as unset.
func ListCards(dbtx DBTX, f model.CardFilter) ([]model.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards`
	conditions := []string{}
	args := []interface{}{}

	if f.Search != "" {
		like := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		conditions = append(conditions,
			`(LOWER(player_name) LIKE ? ESCAPE '\' OR LOWER(brand) LIKE ? ESCAPE '\' OR LOWER(card_set) LIKE ? ESCAPE '\' OR LOWER(notes) LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like, like)
	}
	if f.Sport != "" && f.Sport != FilterAll {
		conditions = append(conditions, "sport = ?")
		args = append(args, f.Sport)
	}
	if f.Brand != "" && f.Brand != FilterAll {
		conditions = append(conditions, "brand = ?")
		args = append(args, f.Brand)
	}
	if f.Condition != "" && f.Condition != FilterAll {
		conditions = append(conditions, "condition = ?")
		args = append(args, f.Condition)
	}
	if f.Year != "" && f.Year != FilterAll {
		if start, end, ok := parseYearRange(f.Year); ok {
			conditions = append(conditions, "year BETWEEN ? AND ?")
			args = append(args, start, end)
		} else if year, err := strconv.Atoi(strings.TrimSpace(f.Year)); err == nil {
			conditions = append(conditions, "year = ?")
			args = append(args, year)
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + orderClause(f.SortBy)

	cards := []model.Card{}
	if err := dbtx.Select(&cards, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards so search terms match literal
// substrings.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// parseYearRange parses "<start>-<end>" into an inclusive range.
func parseYearRange(s string) (int, int, bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return start, end, true
}

func orderClause(sortBy string) string {
	switch sortBy {
	case model.SortPlayerAsc:
		return "player_name COLLATE NOCASE ASC"
	case model.SortPlayerDesc:
		return "player_name COLLATE NOCASE DESC"
	case model.SortValueAsc:
		return "current_value ASC"
	case model.SortValueDesc:
		return "current_value DESC"
	case model.SortYearAsc:
		return "year ASC"
	case model.SortYearDesc:
		return "year DESC"
	default:
		// most-recent-first
		return "id DESC"
	}
}

// GetCardByID returns the card or nil when no row exists.
func GetCardByID(dbtx DBTX, id int64) (*model.Card, error) {
	var card model.Card
	err := dbtx.Get(&card, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %d: %w", id, err)
	}
	return &card, nil
}

// CreateCard inserts a validated card and returns the stored record
// with its assigned id and creation timestamp.
func CreateCard(dbtx DBTX, card model.Card) (*model.Card, error) {
	card.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	const q = `
		INSERT INTO cards (player_name, sport, year, brand, condition, card_set, card_number,
			purchase_price, current_value, notes, image_url, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := dbtx.Exec(q,
		card.PlayerName, card.Sport, card.Year, card.Brand, card.Condition,
		card.CardSet, card.CardNumber, card.PurchasePrice, card.CurrentValue,
		card.Notes, card.ImageURL, card.UserID, card.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert card: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted card id: %w", err)
	}
	card.ID = id
	return &card, nil
}

// UpdateCard merges only the supplied fields into an existing card and
// returns the updated record, or nil when the id does not exist.
func UpdateCard(dbtx DBTX, id int64, input model.CardInput) (*model.Card, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if input.PlayerName != nil {
		add("player_name", *input.PlayerName)
	}
	if input.Sport != nil {
		add("sport", *input.Sport)
	}
	if input.Year != nil {
		add("year", *input.Year)
	}
	if input.Brand != nil {
		add("brand", *input.Brand)
	}
	if input.Condition != nil {
		add("condition", *input.Condition)
	}
	if input.CardSet != nil {
		add("card_set", *input.CardSet)
	}
	if input.CardNumber != nil {
		add("card_number", *input.CardNumber)
	}
	if input.PurchasePrice != nil {
		add("purchase_price", *input.PurchasePrice)
	}
	if input.CurrentValue != nil {
		add("current_value", *input.CurrentValue)
	}
	if input.Notes != nil {
		add("notes", *input.Notes)
	}
	if input.ImageURL != nil {
		add("image_url", *input.ImageURL)
	}
	if input.UserID != nil {
		add("user_id", *input.UserID)
	}

	if len(sets) > 0 {
		query := `UPDATE cards SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
		args = append(args, id)
		if _, err := dbtx.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("failed to update card %d: %w", id, err)
		}
	}

	return GetCardByID(dbtx, id)
}

// DeleteCard removes one card and reports whether a row was removed.
func DeleteCard(dbtx DBTX, id int64) (bool, error) {
	res, err := dbtx.Exec(`DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result for card %d: %w", id, err)
	}
	return affected > 0, nil
}

// DeleteAllCards removes every card and returns the exact count
// removed. Count and delete run in one transaction so the number is
// accurate under concurrent writers.
func DeleteAllCards(db *sqlx.DB) (int64, error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var count int64
	if err := tx.Get(&count, `SELECT COUNT(*) FROM cards`); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM cards`); err != nil {
		return 0, fmt.Errorf("failed to delete cards: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit error: %w", err)
	}
	return count, nil
}

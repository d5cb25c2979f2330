package importer

import (
	"log"
	"sync"

	"cardkeep/cardmanager"
	"cardkeep/database"
	"cardkeep/model"
	"cardkeep/textclean"

	"github.com/jmoiron/sqlx"
)

// CardFields are the logical field names a column mapping may bind.
var CardFields = []string{
	"playerName", "sport", "year", "brand", "condition", "cardSet",
	"cardNumber", "purchasePrice", "currentValue", "notes", "imageUrl",
}

// MapRow copies the mapped column values of one row into a
// field-name-keyed map. Fields mapped to "none" or to a column the row
// does not carry are simply absent.
func MapRow(row map[string]string, mapping model.ColumnMapping) map[string]string {
	fields := make(map[string]string)
	for _, field := range CardFields {
		column, ok := mapping[field]
		if !ok || column == model.MappingNone {
			continue
		}
		value, ok := row[column]
		if !ok {
			continue
		}
		fields[field] = value
	}
	return fields
}

// BuildInput coerces the mapped string values into a CardInput.
// Unparsable numeric input is an error so a bad row fails visibly
// instead of importing with a silently defaulted value.
func BuildInput(fields map[string]string) (model.CardInput, error) {
	var input model.CardInput

	setString := func(dest **string, key string) {
		if value, ok := fields[key]; ok {
			v := value
			*dest = &v
		}
	}
	setString(&input.PlayerName, "playerName")
	setString(&input.Sport, "sport")
	setString(&input.Brand, "brand")
	setString(&input.Condition, "condition")
	setString(&input.CardSet, "cardSet")
	setString(&input.CardNumber, "cardNumber")
	setString(&input.ImageURL, "imageUrl")

	if value, ok := fields["notes"]; ok {
		cleaned := textclean.CleanNotes(value)
		input.Notes = &cleaned
	}
	if value, ok := fields["year"]; ok && value != "" {
		year, err := cardmanager.ParseYear(value)
		if err != nil {
			return input, err
		}
		input.Year = &year
	}
	if value, ok := fields["purchasePrice"]; ok && value != "" {
		price, err := cardmanager.ParsePrice(value)
		if err != nil {
			return input, err
		}
		input.PurchasePrice = &price
	}
	if value, ok := fields["currentValue"]; ok && value != "" {
		price, err := cardmanager.ParsePrice(value)
		if err != nil {
			return input, err
		}
		input.CurrentValue = &price
	}

	return input, nil
}

// ImportRows validates and persists every row independently. Rows are
// dispatched concurrently with no cross-row transaction; a failed row
// never rolls back an already-persisted one. The result slice is
// positionally aligned with the input rows.
func ImportRows(db *sqlx.DB, rows []map[string]string, mapping model.ColumnMapping) []model.ImportRowResult {
	results := make([]model.ImportRowResult, len(rows))

	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		go func(i int, row map[string]string) {
			defer wg.Done()
			results[i] = importRow(db, row, mapping)
		}(i, row)
	}
	wg.Wait()

	return results
}

func importRow(db *sqlx.DB, row map[string]string, mapping model.ColumnMapping) model.ImportRowResult {
	fields := MapRow(row, mapping)

	input, err := BuildInput(fields)
	if err != nil {
		return model.ImportRowResult{Success: false, Error: err.Error(), Data: row}
	}

	card, err := cardmanager.BuildCard(input)
	if err != nil {
		return model.ImportRowResult{Success: false, Error: err.Error(), Data: row}
	}

	stored, err := database.CreateCard(db, *card)
	if err != nil {
		log.Printf("Error persisting imported card %q: %v", card.PlayerName, err)
		return model.ImportRowResult{Success: false, Error: "failed to save card", Data: row}
	}

	return model.ImportRowResult{Success: true, Data: stored}
}

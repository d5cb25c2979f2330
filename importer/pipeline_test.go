package importer

import (
	"fmt"
	"testing"

	"cardkeep/cardmanager"
	"cardkeep/database"
	"cardkeep/loader"
	"cardkeep/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, loader.InitDatabase(db))
	return db
}

func TestMapRowSkipsNoneAndMissingColumns(t *testing.T) {
	row := map[string]string{
		"Player": "Mike Trout",
		"Yr":     "2011",
	}
	mapping := model.ColumnMapping{
		"playerName": "Player",
		"year":       "Yr",
		"sport":      model.MappingNone,
		"brand":      "Brand Column That Does Not Exist",
	}

	fields := MapRow(row, mapping)
	assert.Equal(t, map[string]string{
		"playerName": "Mike Trout",
		"year":       "2011",
	}, fields)
}

func TestBuildInputCoercesNumbers(t *testing.T) {
	input, err := BuildInput(map[string]string{
		"playerName":    "Mike Trout",
		"year":          "2011",
		"purchasePrice": "$1,250.00",
		"currentValue":  "980.5",
	})
	require.NoError(t, err)
	require.NotNil(t, input.Year)
	assert.Equal(t, 2011, *input.Year)
	require.NotNil(t, input.PurchasePrice)
	assert.Equal(t, 1250.0, *input.PurchasePrice)
	require.NotNil(t, input.CurrentValue)
	assert.Equal(t, 980.5, *input.CurrentValue)
}

func TestBuildInputRejectsUnparsableNumbers(t *testing.T) {
	_, err := BuildInput(map[string]string{"year": "nineteen eighty-nine"})
	assert.Error(t, err)

	_, err = BuildInput(map[string]string{"purchasePrice": "cheap"})
	assert.Error(t, err)
}

func TestBuildInputCleansNotes(t *testing.T) {
	input, err := BuildInput(map[string]string{
		"notes": "Sharp corners Buy It Now $4.99 shipping",
	})
	require.NoError(t, err)
	require.NotNil(t, input.Notes)
	assert.Equal(t, "Sharp corners", *input.Notes)
}

func TestImportRowsPartialFailure(t *testing.T) {
	db := newTestDB(t)

	mapping := model.ColumnMapping{
		"playerName": "Player",
		"year":       "Year",
		"brand":      "Brand",
	}

	var rows []map[string]string
	for i := 0; i < 10; i++ {
		rows = append(rows, map[string]string{
			"Player": fmt.Sprintf("Player %d", i),
			"Year":   "2020",
			"Brand":  "Topps",
		})
	}
	// two rows without a player name
	rows = append(rows,
		map[string]string{"Year": "2020", "Brand": "Topps"},
		map[string]string{"Player": "", "Year": "2020", "Brand": "Topps"},
	)

	results := ImportRows(db, rows, mapping)
	require.Len(t, results, 12)

	imported, failed := 0, 0
	for _, result := range results {
		if result.Success {
			imported++
		} else {
			failed++
		}
	}
	assert.Equal(t, 10, imported)
	assert.Equal(t, 2, failed)

	// failed rows preserve the original row values
	last := results[11]
	require.False(t, last.Success)
	assert.NotEmpty(t, last.Error)
	original, ok := last.Data.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Topps", original["Brand"])

	cards, err := database.ListCards(db, model.CardFilter{})
	require.NoError(t, err)
	assert.Len(t, cards, 10)
}

func TestImportRowsUnmappedSportGetsDefault(t *testing.T) {
	db := newTestDB(t)

	mapping := model.ColumnMapping{
		"playerName": "Player",
		"sport":      model.MappingNone,
	}
	rows := []map[string]string{
		{"Player": "Connor McDavid", "Sport": "hockey"},
	}

	results := ImportRows(db, rows, mapping)
	require.Len(t, results, 1)
	require.True(t, results[0].Success, results[0].Error)

	stored, ok := results[0].Data.(*model.Card)
	require.True(t, ok)
	assert.Equal(t, cardmanager.DefaultSport, stored.Sport)
}

func TestImportRowsUnparsableYearFailsRow(t *testing.T) {
	db := newTestDB(t)

	mapping := model.ColumnMapping{
		"playerName": "Player",
		"year":       "Year",
	}
	rows := []map[string]string{
		{"Player": "Mike Trout", "Year": "twenty-eleven"},
	}

	results := ImportRows(db, rows, mapping)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "invalid year")
}

package cards

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cardkeep/loader"
	"cardkeep/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*sqlx.DB, *http.ServeMux) {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, loader.InitDatabase(db))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/cards", CollectionHandler(db))
	mux.HandleFunc("/api/cards/", CardItemHandler(db))
	mux.HandleFunc("/api/export", ExportCardsHandler(db))
	return db, mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func createTestCard(t *testing.T, mux *http.ServeMux, payload map[string]interface{}) model.Card {
	t.Helper()
	w := doJSON(t, mux, http.MethodPost, "/api/cards", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var card model.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	return card
}

func TestCreateAndGetCard(t *testing.T) {
	_, mux := newTestServer(t)

	card := createTestCard(t, mux, map[string]interface{}{
		"playerName": "Ken Griffey Jr",
		"sport":      "baseball",
		"year":       1989,
		"brand":      "Upper Deck",
		"condition":  "near_mint",
	})
	assert.Greater(t, card.ID, int64(0))
	assert.NotEmpty(t, card.CreatedAt)

	w := doJSON(t, mux, http.MethodGet, "/api/cards/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, mux, http.MethodGet, "/api/cards/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCardValidation(t *testing.T) {
	_, mux := newTestServer(t)

	w := doJSON(t, mux, http.MethodPost, "/api/cards", map[string]interface{}{
		"sport": "baseball",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "player name")

	w = doJSON(t, mux, http.MethodPost, "/api/cards", map[string]interface{}{
		"playerName":    "Mike Trout",
		"purchasePrice": -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCardsWithFilters(t *testing.T) {
	_, mux := newTestServer(t)

	createTestCard(t, mux, map[string]interface{}{"playerName": "A", "year": 2010, "brand": "Topps"})
	createTestCard(t, mux, map[string]interface{}{"playerName": "B", "year": 2020, "brand": "Panini"})

	w := doJSON(t, mux, http.MethodGet, "/api/cards?year=2010-2019", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cards []model.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "A", cards[0].PlayerName)

	w = doJSON(t, mux, http.MethodGet, "/api/cards?search=panini", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "B", cards[0].PlayerName)
}

func TestPatchCard(t *testing.T) {
	_, mux := newTestServer(t)
	card := createTestCard(t, mux, map[string]interface{}{"playerName": "Mike Trout", "year": 2011})

	w := doJSON(t, mux, http.MethodPatch, "/api/cards/1", map[string]interface{}{
		"currentValue": 250.0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 250.0, updated.CurrentValue)
	assert.Equal(t, card.PlayerName, updated.PlayerName)

	w = doJSON(t, mux, http.MethodPatch, "/api/cards/999", map[string]interface{}{"year": 2000})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, mux, http.MethodPatch, "/api/cards/1", map[string]interface{}{"playerName": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatchCardNormalizesTags(t *testing.T) {
	_, mux := newTestServer(t)
	createTestCard(t, mux, map[string]interface{}{"playerName": "Wayne Gretzky"})

	w := doJSON(t, mux, http.MethodPatch, "/api/cards/1", map[string]interface{}{
		"sport":     "Hockey",
		"condition": "MINT",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "hockey", updated.Sport)
	assert.Equal(t, "mint", updated.Condition)

	// the patched card keeps matching the exact-match tag filter
	w = doJSON(t, mux, http.MethodGet, "/api/cards?sport=hockey", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cards []model.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "Wayne Gretzky", cards[0].PlayerName)
}

func TestDeleteCardEndpoint(t *testing.T) {
	_, mux := newTestServer(t)
	createTestCard(t, mux, map[string]interface{}{"playerName": "Mike Trout"})

	w := doJSON(t, mux, http.MethodDelete, "/api/cards/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, mux, http.MethodDelete, "/api/cards/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAllCardsEndpoint(t *testing.T) {
	_, mux := newTestServer(t)
	createTestCard(t, mux, map[string]interface{}{"playerName": "A"})
	createTestCard(t, mux, map[string]interface{}{"playerName": "B"})

	w := doJSON(t, mux, http.MethodDelete, "/api/cards", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		Count   int64  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Count)
	assert.Contains(t, resp.Message, "2")

	w = doJSON(t, mux, http.MethodGet, "/api/cards", nil)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestCardPriceEndpoint(t *testing.T) {
	_, mux := newTestServer(t)
	createTestCard(t, mux, map[string]interface{}{
		"playerName": "Ken Griffey Jr",
		"year":       1989,
		"brand":      "Upper Deck",
	})

	w := doJSON(t, mux, http.MethodGet, "/api/cards/1/price", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var analysis model.PriceAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.Contains(t, analysis.Query, "Ken Griffey Jr")
	assert.LessOrEqual(t, len(analysis.Items), 10)
	assert.GreaterOrEqual(t, analysis.TotalResults, len(analysis.Items))

	// same card, same analysis
	again := doJSON(t, mux, http.MethodGet, "/api/cards/1/price", nil)
	assert.Equal(t, w.Body.String(), again.Body.String())

	w = doJSON(t, mux, http.MethodGet, "/api/cards/999/price", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidCardID(t *testing.T) {
	_, mux := newTestServer(t)
	w := doJSON(t, mux, http.MethodGet, "/api/cards/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportCards(t *testing.T) {
	_, mux := newTestServer(t)
	createTestCard(t, mux, map[string]interface{}{
		"playerName": "Ken \"The Kid\" Griffey",
		"year":       1989,
		"brand":      "Upper Deck",
	})

	w := doJSON(t, mux, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"), "export should start with a UTF-8 BOM")
	assert.Contains(t, body, "Player Name,Sport,Year")
	// embedded quotes are doubled
	assert.Contains(t, body, `"Ken ""The Kid"" Griffey"`)
}

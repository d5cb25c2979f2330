// Package recognizer delegates card photos to a vision-capable Gemini
// model and maps its answer onto card fields.
package recognizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"cardkeep/cardmanager"
	"cardkeep/model"
	"cardkeep/textclean"

	"google.golang.org/genai"
)

// ErrPlayerNameMissing means the model answered but could not name the
// player. The partial recognition is still returned alongside it so
// the caller can keep it for manual completion.
var ErrPlayerNameMissing = errors.New("player name could not be recognized")

const recognitionPrompt = `You identify sports and trading cards from photographs.
Respond with strict JSON only, no prose, using exactly these keys:
{"playerName": "", "sport": "", "year": 0, "brand": "", "cardSet": "", "cardNumber": "", "condition": ""}
Use an empty string (or 0 for year) for anything you cannot determine.
sport must be one of: baseball, basketball, football, hockey, soccer, golf, racing, wrestling, pokemon, other.
condition must be one of: gem_mint, mint, near_mint, excellent, very_good, good, fair, poor.`

type Recognizer struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, modelName string) (*Recognizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Recognizer{client: client, model: modelName}, nil
}

// Recognize sends the photo to the model and parses its JSON answer.
// On success a second call fills a short notes description; failure of
// that call is non-fatal.
func (rec *Recognizer) Recognize(ctx context.Context, image []byte, mimeType string) (*model.CardRecognition, error) {
	resp, err := rec.client.Models.GenerateContent(ctx, rec.model,
		[]*genai.Content{
			genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromBytes(image, mimeType),
				genai.NewPartFromText("Identify this card."),
			}, genai.RoleUser),
		},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(recognitionPrompt, genai.RoleUser),
		})
	if err != nil {
		return nil, fmt.Errorf("vision model call failed: %w", err)
	}

	card, err := ParseRecognition(resp.Text())
	if err != nil {
		return card, err
	}

	description, err := rec.describe(ctx, card)
	if err != nil {
		log.Printf("WARN: card description call failed: %v", err)
	} else {
		card.Notes = textclean.CleanNotes(description)
	}

	return card, nil
}

func (rec *Recognizer) describe(ctx context.Context, card *model.CardRecognition) (string, error) {
	prompt := fmt.Sprintf(
		"Write one short sentence a collector would put in the notes field for this card: %d %s %s %s. Plain text only.",
		card.Year, card.Brand, card.CardSet, card.PlayerName)

	resp, err := rec.client.Models.GenerateContent(ctx, rec.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

// rawRecognition tolerates the year arriving as a number or a string.
type rawRecognition struct {
	PlayerName string      `json:"playerName"`
	Sport      string      `json:"sport"`
	Year       interface{} `json:"year"`
	Brand      string      `json:"brand"`
	CardSet    string      `json:"cardSet"`
	CardNumber string      `json:"cardNumber"`
	Condition  string      `json:"condition"`
}

// ParseRecognition extracts the first {...} block from the model's
// reply (tolerating surrounding prose) and maps it onto card fields
// with safe defaults. A missing player name is a recognition failure;
// the partial result is returned with ErrPlayerNameMissing.
func ParseRecognition(reply string) (*model.CardRecognition, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("model reply contains no JSON object")
	}

	var raw rawRecognition
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse model reply: %w", err)
	}

	card := &model.CardRecognition{
		PlayerName: strings.TrimSpace(raw.PlayerName),
		Brand:      strings.TrimSpace(raw.Brand),
		CardSet:    strings.TrimSpace(raw.CardSet),
		CardNumber: strings.TrimSpace(raw.CardNumber),
		Sport:      normalizeSport(raw.Sport),
		Condition:  normalizeCondition(raw.Condition),
		Year:       coerceYear(raw.Year),
	}

	if card.PlayerName == "" {
		return card, ErrPlayerNameMissing
	}
	return card, nil
}

func normalizeSport(s string) string {
	sport := strings.ToLower(strings.TrimSpace(s))
	if cardmanager.IsKnownSport(sport) {
		return sport
	}
	return cardmanager.DefaultSport
}

func normalizeCondition(s string) string {
	condition := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	if cardmanager.IsKnownCondition(condition) {
		return condition
	}
	return cardmanager.DefaultCondition
}

func coerceYear(v interface{}) int {
	switch year := v.(type) {
	case float64:
		if year > 0 {
			return int(year)
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(year)); err == nil && parsed > 0 {
			return parsed
		}
	}
	return time.Now().Year()
}

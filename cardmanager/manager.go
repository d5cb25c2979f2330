package cardmanager

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cardkeep/model"
)

// Defaults applied when an optional-with-default field is absent.
const (
	DefaultSport     = "baseball"
	DefaultCondition = "near_mint"
	DefaultBrand     = "Unknown"
)

// KnownSports are the sport tags the UI offers. Anything outside this
// list is kept as supplied; the list drives recognizer fallbacks.
var KnownSports = []string{
	"baseball", "basketball", "football", "hockey", "soccer", "golf",
	"racing", "wrestling", "pokemon", "other",
}

// KnownConditions in rough descending grade order.
var KnownConditions = []string{
	"gem_mint", "mint", "near_mint", "excellent", "very_good", "good",
	"fair", "poor",
}

func IsKnownSport(s string) bool {
	for _, known := range KnownSports {
		if s == known {
			return true
		}
	}
	return false
}

func IsKnownCondition(s string) bool {
	for _, known := range KnownConditions {
		if s == known {
			return true
		}
	}
	return false
}

// BuildCard validates an insert payload and applies defaults. Player
// name is the only hard-required field; sport, condition, brand and
// year fall back to defaults, the rest default to empty/zero. Numeric
// fields must be non-negative.
func BuildCard(input model.CardInput) (*model.Card, error) {
	card := model.Card{
		Sport:     DefaultSport,
		Condition: DefaultCondition,
		Brand:     DefaultBrand,
		Year:      time.Now().Year(),
	}

	if input.PlayerName == nil || strings.TrimSpace(*input.PlayerName) == "" {
		return nil, fmt.Errorf("player name is required")
	}
	card.PlayerName = strings.TrimSpace(*input.PlayerName)

	if input.Sport != nil && strings.TrimSpace(*input.Sport) != "" {
		card.Sport = strings.ToLower(strings.TrimSpace(*input.Sport))
	}
	if input.Condition != nil && strings.TrimSpace(*input.Condition) != "" {
		card.Condition = strings.ToLower(strings.TrimSpace(*input.Condition))
	}
	if input.Brand != nil && strings.TrimSpace(*input.Brand) != "" {
		card.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Year != nil {
		if *input.Year <= 0 {
			return nil, fmt.Errorf("year must be a positive integer")
		}
		card.Year = *input.Year
	}
	if input.CardSet != nil {
		card.CardSet = strings.TrimSpace(*input.CardSet)
	}
	if input.CardNumber != nil {
		card.CardNumber = strings.TrimSpace(*input.CardNumber)
	}
	if input.PurchasePrice != nil {
		if *input.PurchasePrice < 0 {
			return nil, fmt.Errorf("purchase price must not be negative")
		}
		card.PurchasePrice = *input.PurchasePrice
	}
	if input.CurrentValue != nil {
		if *input.CurrentValue < 0 {
			return nil, fmt.Errorf("current value must not be negative")
		}
		card.CurrentValue = *input.CurrentValue
	}
	if input.Notes != nil {
		card.Notes = *input.Notes
	}
	if input.ImageURL != nil {
		card.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	card.UserID = input.UserID

	return &card, nil
}

// ValidatePartial checks a partial-update payload: every supplied
// field must be valid on its own. Sport and condition are lower-cased
// in place so patched cards keep matching the exact-match filters the
// same way freshly built ones do.
func ValidatePartial(input *model.CardInput) error {
	if input.PlayerName != nil && strings.TrimSpace(*input.PlayerName) == "" {
		return fmt.Errorf("player name must not be empty")
	}
	if input.Year != nil && *input.Year <= 0 {
		return fmt.Errorf("year must be a positive integer")
	}
	if input.PurchasePrice != nil && *input.PurchasePrice < 0 {
		return fmt.Errorf("purchase price must not be negative")
	}
	if input.CurrentValue != nil && *input.CurrentValue < 0 {
		return fmt.Errorf("current value must not be negative")
	}
	if input.Sport != nil {
		*input.Sport = strings.ToLower(strings.TrimSpace(*input.Sport))
	}
	if input.Condition != nil {
		*input.Condition = strings.ToLower(strings.TrimSpace(*input.Condition))
	}
	return nil
}

// ParseYear coerces untrusted text into a year. Unparsable input is an
// error, not a silent default.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return year, nil
}

// ParsePrice coerces untrusted text into a currency amount, tolerating
// a leading currency symbol and thousands separators.
func ParsePrice(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return price, nil
}

// Package prices fabricates plausible sold-listing data for a search
// string. It is a deterministic stand-in for a real market-data
// source: the same query always produces the same analysis, and
// nothing here ever talks to a marketplace.
package prices

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"cardkeep/model"
)

const (
	basePrice   = 25.0
	maxDisplay  = 10
	minItems    = 8
	maxItems    = 40
	basePerturb = 20 // percent
	itemPerturb = 40 // percent
)

// valueSignals raise the base price when the query mentions them.
// Bonuses are additive; a query can match several groups.
var valueSignals = []struct {
	terms []string
	bonus float64
}{
	{[]string{"rookie", "rc"}, 50},
	{[]string{"autograph", "auto"}, 150},
	{[]string{"1st", "first edition"}, 75},
	{[]string{"refractor", "prizm"}, 40},
	{[]string{"patch", "jersey"}, 100},
	{[]string{"psa", "bgs"}, 80},
	{[]string{"parallel", "numbered"}, 35},
	{[]string{"ssp", "rare"}, 60},
}

var conditionTags = []string{
	"Mint", "Near Mint", "Excellent", "Good Condition", "Graded", "Ungraded",
}

var flourishes = []string{
	"Sharp Corners", "Pack Fresh", "Rare Find", "Centered", "Investment Grade",
}

var soldDates = []string{
	"1 day ago", "3 days ago", "5 days ago", "1 week ago",
	"2 weeks ago", "3 weeks ago", "1 month ago",
}

// newSeededRand returns a generator seeded from the sum of the query's
// character codes. Every call advances the seed by one and maps
// frac(sin(seed)*10000) onto the inclusive range [min, max], so a
// given query always yields the same draw sequence.
func newSeededRand(query string) func(min, max int) int {
	seed := 0
	for _, r := range query {
		seed += int(r)
	}
	return func(min, max int) int {
		seed++
		x := math.Sin(float64(seed)) * 10000
		frac := x - math.Floor(x)
		return int(math.Floor(frac*float64(max-min+1))) + min
	}
}

// Analyze fabricates a sold-listing analysis for the query. It never
// fails: any internal error degrades to an all-zero, empty result.
func Analyze(query string) model.PriceAnalysis {
	analysis, err := analyze(query)
	if err != nil {
		log.Printf("WARN: price analysis failed for %q: %v", query, err)
		return emptyAnalysis(query)
	}
	return analysis
}

func analyze(query string) (analysis model.PriceAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during price generation: %v", r)
		}
	}()

	rand := newSeededRand(query)
	lowered := strings.ToLower(query)

	base := basePrice
	for _, signal := range valueSignals {
		for _, term := range signal.terms {
			if strings.Contains(lowered, term) {
				base += signal.bonus
				break
			}
		}
	}
	base += base * float64(rand(-basePerturb, basePerturb)) / 100

	count := rand(minItems, maxItems)
	items := make([]model.SoldItem, 0, count)
	prices := make([]float64, 0, count)

	for i := 0; i < count; i++ {
		price := base + base*float64(rand(-itemPerturb, itemPerturb))/100
		price = roundCents(price)
		prices = append(prices, price)

		title := query + " - " + conditionTags[rand(0, len(conditionTags)-1)]
		if rand(0, 2) == 0 {
			title += " " + flourishes[rand(0, len(flourishes)-1)]
		}

		items = append(items, model.SoldItem{
			Title:    title,
			Price:    price,
			SoldDate: soldDates[rand(0, len(soldDates)-1)],
			Link:     fmt.Sprintf("https://www.ebay.com/itm/%d", rand(100000000, 999999999)),
			ImageURL: fmt.Sprintf("https://i.ebayimg.com/images/g/card%d/s-l500.jpg", rand(10000, 99999)),
		})
	}

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	var sum float64
	for _, p := range prices {
		sum += p
	}

	display := items
	if len(display) > maxDisplay {
		display = display[:maxDisplay]
	}

	return model.PriceAnalysis{
		Query:        query,
		Items:        display,
		AveragePrice: roundCents(sum / float64(len(prices))),
		MinPrice:     sorted[0],
		MaxPrice:     sorted[len(sorted)-1],
		MedianPrice:  roundCents(median(sorted)),
		TotalResults: count,
	}, nil
}

// median expects a value-sorted slice; for even counts it averages the
// two central values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func emptyAnalysis(query string) model.PriceAnalysis {
	return model.PriceAnalysis{
		Query: query,
		Items: []model.SoldItem{},
	}
}

// QueryForCard derives the search string used to research a card's
// market value from its own fields.
func QueryForCard(card model.Card) string {
	parts := []string{fmt.Sprintf("%d", card.Year), card.Brand}
	if card.CardSet != "" {
		parts = append(parts, card.CardSet)
	}
	parts = append(parts, card.PlayerName)
	if card.CardNumber != "" {
		parts = append(parts, "#"+card.CardNumber)
	}
	return strings.Join(parts, " ")
}

package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Documented input/output pairs for the observed contamination
// patterns. These are the contract; new patterns need a pair here.
func TestCleanNotes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Sharp corners, great centering", "Sharp corners, great centering"},
		{"Rookie card Buy It Now", "Rookie card"},
		{"Gem mint or Best Offer!!", "Gem mint"},
		{"Pack fresh, Free Shipping", "Pack fresh"},
		{"Graded slab +$4.99 shipping", "Graded slab"},
		{"From my collection $150", "From my collection"},
		{"Item #123456789 near mint", "near mint"},
		{"Lot 42 of vintage cards", "of vintage cards"},
		{"L@@K rare insert", "rare insert"},
		{"Beautiful card [eBay]", "Beautiful card"},
		{"too   many    spaces", "too many spaces"},
		{"WOW!! amazing rookie , see photos", "amazing rookie"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanNotes(tc.in), "input: %q", tc.in)
	}
}

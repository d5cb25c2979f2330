package model

// SoldItem is one fabricated sold listing.
type SoldItem struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	SoldDate string  `json:"soldDate"`
	Link     string  `json:"link"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// PriceAnalysis is the result of a market value lookup. Items is capped
// for display; TotalResults counts the full generated set.
type PriceAnalysis struct {
	Query        string     `json:"query"`
	Items        []SoldItem `json:"items"`
	AveragePrice float64    `json:"averagePrice"`
	MinPrice     float64    `json:"minPrice"`
	MaxPrice     float64    `json:"maxPrice"`
	MedianPrice  float64    `json:"medianPrice"`
	TotalResults int        `json:"totalResults"`
}

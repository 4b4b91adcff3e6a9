package models

import "time"

// PropertyListing holds the raw six-cell record extracted from one
// results-table row, exactly as it appears on the page. Every field is
// independently optional: a missing or empty cell is an empty string.
type PropertyListing struct {
	MLSNumber string
	Address   string
	Price     string
	Beds      string
	Baths     string
	Sqft      string
	ScrapedAt time.Time
	Source    string
}

// Property is the cleaned, typed record ready for PostgreSQL storage.
type Property struct {
	ID           int64
	MLSNumber    string
	Address      string
	Price        float64
	Beds         int
	Baths        float64
	Sqft         int
	PricePerSqft float64
	CreatedAt    time.Time
}

// MarketReport holds the computed market statistics over the cleaned dataset.
type MarketReport struct {
	TotalProperties int
	AveragePrice    float64
	MedianPrice     float64
	MinPrice        float64
	MaxPrice        float64
	AvgPricePerSqft float64
	CountsByBeds    map[int]int
	MostExpensive   *Property
	BestValue       *Property
}

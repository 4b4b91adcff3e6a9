package services

import (
	"testing"
	"time"

	"matrix-scraper/models"
	"matrix-scraper/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func TestCleanerParsePrice(t *testing.T) {
	c := NewCleaner(newTestLogger())

	tests := []struct {
		raw  string
		want float64
	}{
		{"$500,000", 500000},
		{"$1,234,567.89", 1234567.89},
		{"750000", 750000},
		{"", 0},
		{"Call for price", 0},
	}

	for _, tt := range tests {
		got := c.parsePrice(tt.raw)
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerParseInt(t *testing.T) {
	c := NewCleaner(newTestLogger())

	tests := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{"1,500", 1500},
		{"2,200 sqft", 2200},
		{"", 0},
		{"N/A", 0},
	}

	for _, tt := range tests {
		got := c.parseInt(tt.raw)
		if got != tt.want {
			t.Errorf("parseInt(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerParseBaths(t *testing.T) {
	c := NewCleaner(newTestLogger())

	tests := []struct {
		raw  string
		want float64
	}{
		{"2", 2},
		{"2.5", 2.5},
		{"", 0},
	}

	for _, tt := range tests {
		got := c.parseBaths(tt.raw)
		if got != tt.want {
			t.Errorf("parseBaths(%q) = %.1f; want %.1f", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerDropsBlankRows(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.PropertyListing{
		{MLSNumber: "", Address: "  ", Price: "$100,000", ScrapedAt: time.Now()},
		{MLSNumber: "M1", Address: "1 Main St", Price: "$200,000", ScrapedAt: time.Now()},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Errorf("expected 1 property after dropping blank row, got %d", len(cleaned))
	}
}

func TestCleanerKeepsRowWithoutMLSNumber(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.PropertyListing{
		{MLSNumber: "", Address: "2 Oak Ave", Price: "$300,000"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 property, got %d", len(cleaned))
	}
	if cleaned[0].Address != "2 Oak Ave" {
		t.Errorf("Address: got %q, want %q", cleaned[0].Address, "2 Oak Ave")
	}
}

func TestCleanerDeduplicatesMLSNumber(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.PropertyListing{
		{MLSNumber: "M1", Address: "1 Main St"},
		{MLSNumber: "M1", Address: "1 Main St (dup)"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Errorf("expected 1 property after deduplication, got %d", len(cleaned))
	}
}

func TestCleanerPricePerSqft(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.PropertyListing{
		{MLSNumber: "M1", Address: "1 Main St", Price: "$300,000", Sqft: "1,500"},
		{MLSNumber: "M2", Address: "2 Oak Ave", Price: "$100,000", Sqft: ""},
	}

	cleaned := c.Clean(raw)
	if cleaned[0].PricePerSqft != 200 {
		t.Errorf("PricePerSqft: got %.2f, want 200", cleaned[0].PricePerSqft)
	}
	if cleaned[1].PricePerSqft != 0 {
		t.Errorf("PricePerSqft without sqft: got %.2f, want 0", cleaned[1].PricePerSqft)
	}
}

func TestCleanerNormalisesAddress(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.PropertyListing{
		{MLSNumber: "M1", Address: "  1   Main   St  "},
	}

	cleaned := c.Clean(raw)
	if cleaned[0].Address != "1 Main St" {
		t.Errorf("Address: got %q, want %q", cleaned[0].Address, "1 Main St")
	}
}

package services

import (
	"testing"

	"matrix-scraper/models"
	"matrix-scraper/utils"
)

func sampleProperties() []*models.Property {
	return []*models.Property{
		{MLSNumber: "M1", Address: "1 Main St", Price: 300000, Beds: 3, Baths: 2, Sqft: 1500, PricePerSqft: 200},
		{MLSNumber: "M2", Address: "2 Oak Ave", Price: 100000, Beds: 2, Baths: 1, Sqft: 1000, PricePerSqft: 100},
		{MLSNumber: "M3", Address: "3 Palm Blvd", Price: 500000, Beds: 4, Baths: 3, Sqft: 2500, PricePerSqft: 200},
		{MLSNumber: "M4", Address: "4 Bay Dr", Price: 200000, Beds: 3, Baths: 2, Sqft: 0},
		{MLSNumber: "M5", Address: "5 Pine Ct", Price: 0, Beds: 0, Baths: 0, Sqft: 900},
	}
}

func TestReportCounts(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleProperties())
	if r.TotalProperties != 5 {
		t.Errorf("TotalProperties: got %d, want 5", r.TotalProperties)
	}
}

func TestReportPrices(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleProperties())
	// Price stats exclude the zero-price property: 100k, 200k, 300k, 500k.
	if r.AveragePrice != 275000 {
		t.Errorf("AveragePrice: got %.2f, want 275000", r.AveragePrice)
	}
	if r.MedianPrice != 300000 {
		t.Errorf("MedianPrice: got %.2f, want 300000", r.MedianPrice)
	}
	if r.MinPrice != 100000 {
		t.Errorf("MinPrice: got %.2f, want 100000", r.MinPrice)
	}
	if r.MaxPrice != 500000 {
		t.Errorf("MaxPrice: got %.2f, want 500000", r.MaxPrice)
	}
}

func TestReportHighlights(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleProperties())
	if r.MostExpensive == nil || r.MostExpensive.MLSNumber != "M3" {
		t.Errorf("MostExpensive: got %+v, want M3", r.MostExpensive)
	}
	if r.BestValue == nil || r.BestValue.MLSNumber != "M2" {
		t.Errorf("BestValue: got %+v, want M2", r.BestValue)
	}
}

func TestReportPricePerSqft(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleProperties())
	// (200 + 100 + 200) / 3
	if r.AvgPricePerSqft != 166.67 {
		t.Errorf("AvgPricePerSqft: got %.2f, want 166.67", r.AvgPricePerSqft)
	}
}

func TestReportBedroomGrouping(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleProperties())
	if r.CountsByBeds[3] != 2 {
		t.Errorf("3-bed count: got %d, want 2", r.CountsByBeds[3])
	}
	if r.CountsByBeds[2] != 1 {
		t.Errorf("2-bed count: got %d, want 1", r.CountsByBeds[2])
	}
	if _, ok := r.CountsByBeds[0]; ok {
		t.Error("zero-bed properties should not be grouped")
	}
}

func TestReportEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(nil)
	if r.TotalProperties != 0 {
		t.Errorf("expected 0 total properties for empty input")
	}
	if r.MostExpensive != nil || r.BestValue != nil {
		t.Error("highlights should be nil for empty input")
	}
}

package services

import (
	"fmt"
	"sort"
	"strings"

	"matrix-scraper/models"
	"matrix-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(properties []*models.Property) *models.MarketReport {
	report := &models.MarketReport{
		CountsByBeds: make(map[int]int),
	}

	if len(properties) == 0 {
		return report
	}

	report.TotalProperties = len(properties)

	var priced []*models.Property
	var sqftTotal float64
	var sqftCount int

	for _, p := range properties {
		if p.Price > 0 {
			priced = append(priced, p)
		}
		if p.PricePerSqft > 0 {
			sqftTotal += p.PricePerSqft
			sqftCount++
		}
		if p.Beds > 0 {
			report.CountsByBeds[p.Beds]++
		}
	}

	// Price stats (only properties with price > 0)
	if len(priced) > 0 {
		sorted := make([]*models.Property, len(priced))
		copy(sorted, priced)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})

		report.MinPrice = round2(sorted[0].Price)
		report.MaxPrice = round2(sorted[len(sorted)-1].Price)
		report.BestValue = sorted[0]
		report.MostExpensive = sorted[len(sorted)-1]
		report.MedianPrice = round2(sorted[len(sorted)/2].Price)

		var total float64
		for _, p := range sorted {
			total += p.Price
		}
		report.AveragePrice = round2(total / float64(len(sorted)))
	}

	if sqftCount > 0 {
		report.AvgPricePerSqft = round2(sqftTotal / float64(sqftCount))
	}

	return report
}

func (s *InsightService) Print(r *models.MarketReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 MLS MARKET REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total properties : \033[1m%d\033[0m\n", r.TotalProperties)
	fmt.Println()

	// Price Stats
	fmt.Printf("\033[1;33m  Price Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Median price  : \033[1;32m$%.2f\033[0m\n", r.MedianPrice)
		fmt.Printf("  Price range   : \033[1;32m$%.2f – $%.2f\033[0m\n", r.MinPrice, r.MaxPrice)
		if r.AvgPricePerSqft > 0 {
			fmt.Printf("  Avg $/sqft    : \033[1;32m$%.2f\033[0m\n", r.AvgPricePerSqft)
		}
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	// Highlights
	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Premium Option\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s (MLS %s)\n", truncate(r.MostExpensive.Address, 44), r.MostExpensive.MLSNumber)
		fmt.Printf("  Price : \033[1;31m$%.2f\033[0m\n", r.MostExpensive.Price)
		fmt.Println()
	}
	if r.BestValue != nil {
		fmt.Printf("\033[1;33m  Best Value\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s (MLS %s)\n", truncate(r.BestValue.Address, 44), r.BestValue.MLSNumber)
		fmt.Printf("  Price : \033[1;32m$%.2f\033[0m\n", r.BestValue.Price)
		fmt.Println()
	}

	// Inventory by bedrooms
	fmt.Printf("\033[1;33m  Inventory by Bedrooms\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.CountsByBeds) == 0 {
		fmt.Printf("  No bedroom data\n")
	} else {
		beds := make([]int, 0, len(r.CountsByBeds))
		for b := range r.CountsByBeds {
			beds = append(beds, b)
		}
		sort.Ints(beds)
		for _, b := range beds {
			bar := strings.Repeat("█", r.CountsByBeds[b])
			fmt.Printf("  %d bed %s (%d)\n", b, bar, r.CountsByBeds[b])
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

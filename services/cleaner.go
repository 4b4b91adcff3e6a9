package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"matrix-scraper/models"
	"matrix-scraper/utils"
)

var (
	// priceRegexp captures numeric price values
	priceRegexp = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	// intRegexp captures the first whole number in a cell
	intRegexp = regexp.MustCompile(`\d[\d,]*`)
	// bathsRegexp captures whole or half-bath counts like "2" or "2.5"
	bathsRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Cleaner transforms raw PropertyListings into clean, validated Properties.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean processes raw listings and returns cleaned records. Rows with neither
// an MLS number nor an address are dropped; rows are deduplicated by MLS
// number when one is present.
func (c *Cleaner) Clean(raw []*models.PropertyListing) []*models.Property {
	seen := utils.NewKeySet()
	result := make([]*models.Property, 0, len(raw))

	for _, r := range raw {
		mls := strings.TrimSpace(r.MLSNumber)
		address := normaliseText(r.Address)

		if mls == "" && address == "" {
			c.logger.Warn("[cleaner] Dropping row with no MLS number and no address")
			continue
		}

		if mls != "" && !seen.Add(mls) {
			c.logger.Debug("[cleaner] Duplicate MLS number skipped: %s", mls)
			continue
		}

		p := &models.Property{
			MLSNumber: mls,
			Address:   address,
			Price:     c.parsePrice(r.Price),
			Beds:      c.parseInt(r.Beds),
			Baths:     c.parseBaths(r.Baths),
			Sqft:      c.parseInt(r.Sqft),
			CreatedAt: time.Now(),
		}
		if p.Price > 0 && p.Sqft > 0 {
			p.PricePerSqft = round2(p.Price / float64(p.Sqft))
		}

		result = append(result, p)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d properties (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice extracts a numeric price from display text.
// Examples:
//
//	"$500,000" → 500000
//	"$1,200,000.50" → 1200000.50
//	"" → 0
func (c *Cleaner) parsePrice(raw string) float64 {
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := priceRegexp.FindString(cleaned)
	if match == "" {
		return 0
	}

	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return price
}

// parseInt extracts the first whole number from a cell ("1,500 sqft" → 1500).
func (c *Cleaner) parseInt(raw string) int {
	match := intRegexp.FindString(raw)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// parseBaths extracts a bath count, allowing half baths ("2.5").
func (c *Cleaner) parseBaths(raw string) float64 {
	match := bathsRegexp.FindString(raw)
	if match == "" {
		return 0
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return val
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

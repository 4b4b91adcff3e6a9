package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"matrix-scraper/models"
)

// DefaultRowSelector identifies result rows by partial class match. The portal
// decorates listing rows with class names containing this token across its
// display templates, so the loose match tolerates markup variation.
const DefaultRowSelector = "tr[class*='searchResultRow']"

// fieldCount is the fixed shape of a PropertyListing row.
const fieldCount = 6

// Extractor maps results-table rows into PropertyListing records.
type Extractor struct {
	Selector string
	Source   string
}

// New creates an Extractor for the given row selector. An empty selector
// falls back to DefaultRowSelector.
func New(selector, source string) *Extractor {
	if selector == "" {
		selector = DefaultRowSelector
	}
	return &Extractor{Selector: selector, Source: source}
}

// Rows parses the document and returns one PropertyListing per row matching
// the selector, in document order. The first six <td> cells map positionally
// to mlsNumber, address, price, beds, baths and sqft as trimmed text; a
// missing or empty cell yields an empty string. Zero matching rows returns an
// empty slice, not an error.
func (e *Extractor) Rows(html string) ([]*models.PropertyListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("extract: parse document: %w", err)
	}

	now := time.Now()
	listings := make([]*models.PropertyListing, 0)

	doc.Find(e.Selector).Each(func(_ int, row *goquery.Selection) {
		cells := make([]string, fieldCount)
		row.Find("td").EachWithBreak(func(i int, cell *goquery.Selection) bool {
			if i >= fieldCount {
				return false
			}
			cells[i] = strings.TrimSpace(cell.Text())
			return true
		})

		listings = append(listings, &models.PropertyListing{
			MLSNumber: cells[0],
			Address:   cells[1],
			Price:     cells[2],
			Beds:      cells[3],
			Baths:     cells[4],
			Sqft:      cells[5],
			ScrapedAt: now,
			Source:    e.Source,
		})
	})

	return listings, nil
}

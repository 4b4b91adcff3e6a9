package storage

import "matrix-scraper/models"

// ListingWriter is the interface for persisting raw extracted listings.
type ListingWriter interface {
	WriteRaw(listings []*models.PropertyListing) error
	Close() error
}

// PropertyWriter is the interface any cleaned-data storage backend must satisfy.
type PropertyWriter interface {
	Write(properties []*models.Property) error
	Close() error
}

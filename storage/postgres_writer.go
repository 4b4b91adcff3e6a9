package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"matrix-scraper/models"
)

// PostgresWriter persists cleaned properties to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id             SERIAL PRIMARY KEY,
			mls_number     VARCHAR(32)   NOT NULL DEFAULT '',
			address        TEXT          NOT NULL DEFAULT '',
			price          NUMERIC(12,2) NOT NULL DEFAULT 0,
			beds           INTEGER       NOT NULL DEFAULT 0,
			baths          NUMERIC(4,1)  NOT NULL DEFAULT 0,
			sqft           INTEGER       NOT NULL DEFAULT 0,
			price_per_sqft NUMERIC(10,2) NOT NULL DEFAULT 0,
			created_at     TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_properties_mls   ON properties(mls_number);
		CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price);
		CREATE INDEX IF NOT EXISTS idx_properties_beds  ON properties(beds);
	`)
	return err
}

// Clear deletes all existing properties from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM properties")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts ALL cleaned properties, clearing old data first.
func (pw *PostgresWriter) Write(properties []*models.Property) error {
	if len(properties) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(properties); i += batchSize {
		end := i + batchSize
		if end > len(properties) {
			end = len(properties)
		}
		if err := pw.insertBatch(properties[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Property) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*7)

	for idx, p := range batch {
		base := idx * 7
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			p.MLSNumber, p.Address, p.Price, p.Beds, p.Baths, p.Sqft, p.PricePerSqft)
	}

	query := fmt.Sprintf(`
		INSERT INTO properties (mls_number, address, price, beds, baths, sqft, price_per_sqft)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored properties — used by the insight service.
func (pw *PostgresWriter) FetchAll() ([]*models.Property, error) {
	rows, err := pw.db.Query(`
		SELECT id, mls_number, address, price, beds, baths, sqft, price_per_sqft, created_at
		FROM properties
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		p := &models.Property{}
		if err := rows.Scan(
			&p.ID, &p.MLSNumber, &p.Address, &p.Price, &p.Beds,
			&p.Baths, &p.Sqft, &p.PricePerSqft, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

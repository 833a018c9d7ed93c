package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAirportsQuery := `
	CREATE TABLE IF NOT EXISTS airports (
		code TEXT PRIMARY KEY,
		city TEXT NOT NULL,
		country TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`

	createCoordinateCacheQuery := `
	CREATE TABLE IF NOT EXISTS coordinate_cache (
        city TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_airports_city
    ON airports(city);
	`

	statements := []string{
		createAirportsQuery,
		createCoordinateCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type AirportSeed struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Code    string  `json:"code"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Populate the database with airport data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed airports: read %q: %w", jsonPath, err)
	}

	var data []AirportSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed airports: parse json: %w", err)
	}

	rows := make([]AirportSeed, 0, len(data))
	for i, item := range data {
		code := strings.ToUpper(strings.TrimSpace(item.Code))
		if len(code) != 3 {
			return fmt.Errorf("seed airports: invalid IATA code at index %d: %q", i+1, item.Code)
		}

		city := strings.TrimSpace(item.City)
		if city == "" {
			return fmt.Errorf("seed airports: item at index %d: city cannot be empty", i+1)
		}

		item.Code = code
		item.City = city
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed airports: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO airports (
		code,
		city,
		country,
		lat,
		lon
	)
	VALUES (?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed airports: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range rows {
		if _, err := stmt.Exec(a.Code, a.City, a.Country, a.Lat, a.Lon); err != nil {
			return fmt.Errorf("seed airports: insert code=%s: %w", a.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed airports: commit tx: %w", err)
	}

	return nil
}

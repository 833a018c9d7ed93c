package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/adapters/repositories"
	"trip-route-service/internal/config"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/db"
)

// dbtool initializes and seeds the Postgres variant of the schema,
// used when the service runs against a shared database instead of the
// local SQLite file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/airports.json")

	log.Println("Initializing database schema...")
	if err := initSchema(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding airports...")
	seeded, err := seedAirports(pg, seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	// Pre-warm the coordinate cache with the seeded airport locations so
	// a fresh deployment can order routes before learning any cities.
	coords := cache.NewSQLCoordinateCache(pg)
	entries := make(map[string]domain.Coordinates, len(seeded))
	for _, a := range seeded {
		entries[strings.ToLower(a.City)] = domain.Coordinates{Lat: a.Lat, Lon: a.Lon}
	}
	if err := coords.PutMany(context.Background(), entries); err != nil {
		log.Fatalf("coordinate cache warm-up failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func initSchema(pg *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS airports (
			code TEXT PRIMARY KEY,
			city TEXT NOT NULL,
			country TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS coordinate_cache (
			city TEXT PRIMARY KEY,
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_airports_city ON airports (LOWER(city));`,
	}

	for i, stmt := range statements {
		if _, err := pg.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}
	return nil
}

func seedAirports(pg *sql.DB, jsonPath string) ([]repositories.AirportSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed airports: read %q: %w", jsonPath, err)
	}

	var data []repositories.AirportSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed airports: parse json: %w", err)
	}

	tx, err := pg.Begin()
	if err != nil {
		return nil, fmt.Errorf("seed airports: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO airports (code, city, country, lat, lon)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (code) DO UPDATE
	SET city = EXCLUDED.city,
	    country = EXCLUDED.country,
	    lat = EXCLUDED.lat,
	    lon = EXCLUDED.lon;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("seed airports: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range data {
		code := strings.ToUpper(strings.TrimSpace(a.Code))
		if len(code) != 3 {
			return nil, fmt.Errorf("seed airports: invalid IATA code at index %d: %q", i+1, a.Code)
		}
		if _, err := stmt.Exec(code, strings.TrimSpace(a.City), a.Country, a.Lat, a.Lon); err != nil {
			return nil, fmt.Errorf("seed airports: insert code=%s: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("seed airports: commit tx: %w", err)
	}
	return data, nil
}

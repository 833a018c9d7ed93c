package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func seedTestAirports(t *testing.T, db *sql.DB, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "airports.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if err := SeedFromJSON(db, path); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestSqliteAirportRepository(t *testing.T) {
	db := openTestDB(t)
	seedTestAirports(t, db, `[
		{"city": "Marrakech", "country": "Morocco", "code": "rak", "lat": 31.6069, "lon": -8.0363},
		{"city": "Casablanca", "country": "Morocco", "code": "CMN", "lat": 33.3675, "lon": -7.59}
	]`)

	repo := NewSqliteAirportRepository(db)
	ctx := context.Background()

	a, ok, err := repo.AirportByCity(ctx, "marrakech")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit for marrakech")
	}
	// Codes are stored uppercased.
	if a.Code != "RAK" || a.Country != "Morocco" {
		t.Fatalf("airport = %+v", a)
	}

	_, ok, err = repo.AirportByCity(ctx, "atlantis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss for unknown city")
	}

	all, err := repo.ListAirports(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 airports, got %d", len(all))
	}
	// Ordered by code: CMN before RAK.
	if all[0].Code != "CMN" || all[1].Code != "RAK" {
		t.Fatalf("order = %s, %s", all[0].Code, all[1].Code)
	}
}

func TestSeedFromJSONRejectsBadCode(t *testing.T) {
	db := openTestDB(t)

	path := filepath.Join(t.TempDir(), "airports.json")
	if err := os.WriteFile(path, []byte(`[{"city": "Nowhere", "code": "TOOLONG"}]`), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if err := SeedFromJSON(db, path); err == nil {
		t.Fatal("expected error for invalid IATA code")
	}
}

func TestSeedFromJSONIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	seed := `[{"city": "Marrakech", "country": "Morocco", "code": "RAK", "lat": 31.6, "lon": -8.0}]`
	seedTestAirports(t, db, seed)
	seedTestAirports(t, db, seed)

	all, err := NewSqliteAirportRepository(db).ListAirports(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 airport after reseeding, got %d", len(all))
	}
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-route-service/internal/domain"
)

// SQLite-backed implementation of the AirportRepository port.
type SqliteAirportRepository struct{ DB *sql.DB }

func NewSqliteAirportRepository(db *sql.DB) *SqliteAirportRepository {
	return &SqliteAirportRepository{DB: db}
}

// Resolve a city to its airport row, if one exists. Matching is
// case-insensitive on the city name.
func (s *SqliteAirportRepository) AirportByCity(ctx context.Context, city string) (domain.Airport, bool, error) {
	if s.DB == nil {
		return domain.Airport{}, false, errors.New("sqlite airport repository: DB is nil")
	}

	city = strings.TrimSpace(city)
	if city == "" {
		return domain.Airport{}, false, nil
	}

	query := `
	SELECT city, country, code, lat, lon
	FROM airports
	WHERE LOWER(city) = LOWER(?)
	LIMIT 1;
	`
	var a domain.Airport
	err := s.DB.QueryRowContext(ctx, query, city).Scan(&a.City, &a.Country, &a.Code, &a.Lat, &a.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Airport{}, false, nil
	}
	if err != nil {
		return domain.Airport{}, false, fmt.Errorf("airport by city %q: %w", city, err)
	}

	return a, true, nil
}

// Return all gateway-eligible airports.
func (s *SqliteAirportRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite airport repository: DB is nil")
	}

	query := `
	SELECT city, country, code, lat, lon
	FROM airports
	ORDER BY code;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list airports: query airports table: %w", err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0, 64)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.City, &a.Country, &a.Code, &a.Lat, &a.Lon); err != nil {
			return nil, fmt.Errorf("list airports: scan row: %w", err)
		}
		airports = append(airports, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list airports: row iteration: %w", err)
	}

	return airports, nil
}

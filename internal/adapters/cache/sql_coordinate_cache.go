package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
)

// SQLCoordinateCache is a Postgres-backed cache mapping city names to
// coordinates, so the runtime coordinate registry survives restarts.
// City keys are expected to be consistent (e.g., normalized) by the
// caller.
type SQLCoordinateCache struct {
	DB *sql.DB
}

func NewSQLCoordinateCache(db *sql.DB) *SQLCoordinateCache {
	return &SQLCoordinateCache{DB: db}
}

// Fetch cached coordinates for the given cities.
func (s *SQLCoordinateCache) GetMany(
	ctx context.Context,
	cities []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "coordinate.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("coordinate cache: db is nil")
	}

	if len(cities) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(cities))
	for _, c := range cities {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}

		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		uniq = append(uniq, c)
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	q := `
	SELECT city, lon, lat
    FROM coordinate_cache
    WHERE city = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get coordinate cache: query coordinate_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var city string
		var lon, lat float64
		if err := rows.Scan(&city, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get coordinate cache: scan rows: %w", err)
		}
		out[city] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get coordinate cache: row iteration: %w", err)
	}

	return out, nil
}

// Store city -> coordinate mappings in the cache.
func (s *SQLCoordinateCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("coordinate cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert coordinate cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO coordinate_cache (city, lon, lat)
    VALUES ($1, $2, $3)
	ON CONFLICT (city) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`)
	if err != nil {
		return fmt.Errorf("insert coordinate cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for city, c := range results {
		if strings.TrimSpace(city) == "" {
			return fmt.Errorf("insert coordinate cache: empty city key")
		}

		if _, err := stmt.ExecContext(ctx, city, c.Lon, c.Lat); err != nil {
			return fmt.Errorf("insert coordinate cache city=%q: %w", city, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert coordinate cache commit: %w", err)
	}

	return nil
}

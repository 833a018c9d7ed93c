package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-route-service/internal/domain"
)

// SQLite-backed variant of the coordinate cache for local runs.
// City keys are expected to be consistent (e.g., normalized) by the
// caller.
type SqliteCoordinateCache struct {
	DB *sql.DB
}

func NewSqliteCoordinateCache(db *sql.DB) *SqliteCoordinateCache {
	return &SqliteCoordinateCache{DB: db}
}

// Fetch cached coordinates for the given cities.
func (s *SqliteCoordinateCache) GetMany(cities []string) (map[string]domain.Coordinates, error) {
	if s.DB == nil {
		return nil, errors.New("coordinate cache: db is nil")
	}

	if len(cities) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(cities))
	ph := make([]string, 0, len(cities))
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
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	placeholders := strings.Join(ph, ",")
	args := make([]any, 0, len(uniq))
	for _, c := range uniq {
		args = append(args, c)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT city, lon, lat
    FROM coordinate_cache
    WHERE city IN (%s);
	`, placeholders)

	rows, err := s.DB.Query(q, args...)
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

// ListAll returns every cached city coordinate, used to warm the runtime
// registry at startup.
func (s *SqliteCoordinateCache) ListAll() (map[string]domain.Coordinates, error) {
	if s.DB == nil {
		return nil, errors.New("coordinate cache: db is nil")
	}

	rows, err := s.DB.Query(`SELECT city, lon, lat FROM coordinate_cache;`)
	if err != nil {
		return nil, fmt.Errorf("list coordinate cache: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates)
	for rows.Next() {
		var city string
		var lon, lat float64
		if err := rows.Scan(&city, &lon, &lat); err != nil {
			return nil, fmt.Errorf("list coordinate cache: scan rows: %w", err)
		}
		out[city] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list coordinate cache: row iteration: %w", err)
	}

	return out, nil
}

// Store city -> coordinate mappings in the cache.
func (s *SqliteCoordinateCache) PutMany(results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("coordinate cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("insert coordinate cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO coordinate_cache (city, lon, lat)
    VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert coordinate cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for city, c := range results {
		if strings.TrimSpace(city) == "" {
			return fmt.Errorf("insert coordinate cache: empty city key")
		}

		if _, err := stmt.Exec(city, c.Lon, c.Lat); err != nil {
			return fmt.Errorf("insert coordinate cache city=%q: %w", city, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert coordinate cache commit: %w", err)
	}

	return nil
}

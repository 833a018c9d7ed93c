package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/adapters/flights"
	"trip-route-service/internal/adapters/repositories"
	"trip-route-service/internal/api"
	"trip-route-service/internal/config"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/geo"
	"trip-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, Amadeus) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/airports.json")
	port := config.Get("PORT", "8080")

	clientID := os.Getenv("AMADEUS_CLIENT_ID")
	clientSecret := os.Getenv("AMADEUS_CLIENT_SECRET")
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		log.Fatal("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET are required")
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed airport data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteAirportRepository(db)

	// Persist seeded airport coordinates, then warm the runtime index from
	// the cache so learned cities survive restarts.
	coordCache := cache.NewSqliteCoordinateCache(db)
	if err := cacheAirportCoordinates(repo, coordCache); err != nil {
		log.Fatal(err)
	}
	coordIndex := geo.NewIndex()
	warmed, err := coordCache.ListAll()
	if err != nil {
		log.Fatal(err)
	}
	for city, c := range warmed {
		coordIndex.Register(city, c)
	}

	// Offer caching is optional; without Redis every search hits the API.
	var offers ports.OfferCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		offers = cache.NewRedisOfferCache(rdb, 0)
		log.Printf("Offer cache enabled redis_addr=%s", addr)
	}

	provider, err := flights.NewAmadeusProvider(clientID, clientSecret, offers)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(repo, coordIndex, provider)

	// Timeouts are tuned for cold-cache gateway planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func cacheAirportCoordinates(repo *repositories.SqliteAirportRepository, coords *cache.SqliteCoordinateCache) error {
	airports, err := repo.ListAirports(context.Background())
	if err != nil {
		return fmt.Errorf("cache airport coordinates: %w", err)
	}

	entries := make(map[string]domain.Coordinates, len(airports))
	for _, a := range airports {
		entries[strings.ToLower(a.City)] = domain.Coordinates{Lat: a.Lat, Lon: a.Lon}
	}
	if err := coords.PutMany(entries); err != nil {
		return fmt.Errorf("cache airport coordinates: %w", err)
	}
	return nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

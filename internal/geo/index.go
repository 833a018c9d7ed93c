package geo

import (
	"sort"
	"strings"
	"sync"

	"trip-route-service/internal/domain"
)

// Index is a caller-scoped city coordinate lookup.
//
// Lookup order: runtime registry, static table, nearest substring match.
// The registry is an explicit cache keyed by normalized city name;
// entries are learned from upstream itinerary data and registered by the
// caller rather than through hidden cross-request state.
type Index struct {
	mu       sync.RWMutex
	registry map[string]domain.Coordinates
}

func NewIndex() *Index {
	return &Index{registry: make(map[string]domain.Coordinates)}
}

// normalize ensures consistent keys by lowercasing and collapsing whitespace.
func normalize(city string) string {
	return strings.ToLower(strings.Join(strings.Fields(city), " "))
}

// Register stores learned coordinates for a city.
func (x *Index) Register(city string, c domain.Coordinates) {
	key := normalize(city)
	if key == "" {
		return
	}
	x.mu.Lock()
	x.registry[key] = c
	x.mu.Unlock()
}

// Clear drops every registered entry. Static entries are unaffected.
func (x *Index) Clear() {
	x.mu.Lock()
	x.registry = make(map[string]domain.Coordinates)
	x.mu.Unlock()
}

// Registered returns a snapshot of the runtime registry keyed by
// normalized city name.
func (x *Index) Registered() map[string]domain.Coordinates {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make(map[string]domain.Coordinates, len(x.registry))
	for k, v := range x.registry {
		out[k] = v
	}
	return out
}

// Lookup resolves a city to coordinates. Unresolved cities return
// ok=false; callers exclude them from distance-based ordering.
func (x *Index) Lookup(city string) (domain.Coordinates, bool) {
	key := normalize(city)
	if key == "" {
		return domain.Coordinates{}, false
	}

	x.mu.RLock()
	c, ok := x.registry[key]
	x.mu.RUnlock()
	if ok {
		return c, true
	}

	if c, ok := staticCities[key]; ok {
		return c, true
	}

	return x.substringMatch(key)
}

// substringMatch scans both sources for the closest name containment in
// sorted key order, so the fallback is deterministic.
func (x *Index) substringMatch(key string) (domain.Coordinates, bool) {
	x.mu.RLock()
	candidates := make(map[string]domain.Coordinates, len(x.registry)+len(staticCities))
	for k, v := range x.registry {
		candidates[k] = v
	}
	x.mu.RUnlock()
	for k, v := range staticCities {
		if _, exists := candidates[k]; !exists {
			candidates[k] = v
		}
	}

	keys := make([]string, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.Contains(k, key) || strings.Contains(key, k) {
			return candidates[k], true
		}
	}
	return domain.Coordinates{}, false
}

package geo

import "trip-route-service/internal/domain"

// Static city coordinate table, keyed by normalized city name.
// The runtime registry takes precedence over these entries.
var staticCities = map[string]domain.Coordinates{
	"agra":        {Lat: 27.1767, Lon: 78.0081},
	"amsterdam":   {Lat: 52.3676, Lon: 4.9041},
	"bangalore":   {Lat: 12.9716, Lon: 77.5946},
	"bangkok":     {Lat: 13.7563, Lon: 100.5018},
	"barcelona":   {Lat: 41.3874, Lon: 2.1686},
	"berlin":      {Lat: 52.5200, Lon: 13.4050},
	"casablanca":  {Lat: 33.5731, Lon: -7.5898},
	"chefchaouen": {Lat: 35.1688, Lon: -5.2636},
	"chiang mai":  {Lat: 18.7883, Lon: 98.9853},
	"delhi":       {Lat: 28.6139, Lon: 77.2090},
	"essaouira":   {Lat: 31.5085, Lon: -9.7595},
	"fes":         {Lat: 34.0181, Lon: -5.0078},
	"florence":    {Lat: 43.7696, Lon: 11.2558},
	"granada":     {Lat: 37.1773, Lon: -3.5986},
	"hanoi":       {Lat: 21.0278, Lon: 105.8342},
	"istanbul":    {Lat: 41.0082, Lon: 28.9784},
	"jaipur":      {Lat: 26.9124, Lon: 75.7873},
	"kyoto":       {Lat: 35.0116, Lon: 135.7681},
	"lisbon":      {Lat: 38.7223, Lon: -9.1393},
	"london":      {Lat: 51.5072, Lon: -0.1276},
	"madrid":      {Lat: 40.4168, Lon: -3.7038},
	"marrakech":   {Lat: 31.6295, Lon: -7.9811},
	"merzouga":    {Lat: 31.0994, Lon: -4.0126},
	"mumbai":      {Lat: 19.0760, Lon: 72.8777},
	"osaka":       {Lat: 34.6937, Lon: 135.5023},
	"ouarzazate":  {Lat: 30.9335, Lon: -6.9370},
	"paris":       {Lat: 48.8566, Lon: 2.3522},
	"porto":       {Lat: 41.1579, Lon: -8.6291},
	"prague":      {Lat: 50.0755, Lon: 14.4378},
	"rabat":       {Lat: 34.0209, Lon: -6.8416},
	"rome":        {Lat: 41.9028, Lon: 12.4964},
	"seville":     {Lat: 37.3891, Lon: -5.9845},
	"tangier":     {Lat: 35.7595, Lon: -5.8340},
	"tokyo":       {Lat: 35.6762, Lon: 139.6503},
	"udaipur":     {Lat: 24.5854, Lon: 73.7125},
	"valencia":    {Lat: 39.4699, Lon: -0.3763},
	"venice":      {Lat: 45.4408, Lon: 12.3155},
	"vienna":      {Lat: 48.2082, Lon: 16.3738},
}

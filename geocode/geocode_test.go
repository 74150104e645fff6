package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"googlemaps.github.io/maps"
)

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "Springfield", NormalizeQuery("  Springfield  "))
	assert.Equal(t, "New York City", NormalizeQuery("New   York \t City"))
	assert.Equal(t, "", NormalizeQuery("   "))
}

func candidate(formatted, locality, region, country string) maps.GeocodingResult {
	return maps.GeocodingResult{
		FormattedAddress: formatted,
		AddressComponents: []maps.AddressComponent{
			{LongName: locality, Types: []string{"locality"}},
			{LongName: region, Types: []string{"administrative_area_level_1"}},
			{LongName: country, Types: []string{"country"}},
		},
	}
}

func TestPickBestPrefersExactMatch(t *testing.T) {
	results := []maps.GeocodingResult{
		candidate("Springfield, MO, USA", "Springfield", "Missouri", "United States"),
		candidate("Portland, OR, USA", "Portland", "Oregon", "United States"),
	}

	// Exact case-insensitive match against region beats list order.
	best := pickBest("oregon", results)
	assert.Equal(t, "Portland, OR, USA", best.FormattedAddress)

	best = pickBest("PORTLAND", results)
	assert.Equal(t, "Portland, OR, USA", best.FormattedAddress)
}

func TestPickBestFallsBackToFirst(t *testing.T) {
	results := []maps.GeocodingResult{
		candidate("Springfield, IL, USA", "Springfield", "Illinois", "United States"),
		candidate("Springfield, MO, USA", "Springfield", "Missouri", "United States"),
	}

	best := pickBest("Springfield Avenue 12", results)
	assert.Equal(t, "Springfield, IL, USA", best.FormattedAddress)
}

func TestToPlaceExtractsRegionAndCountry(t *testing.T) {
	result := candidate("Melbourne VIC, Australia", "Melbourne", "Victoria", "Australia")
	result.Geometry.Location = maps.LatLng{Lat: -37.81, Lng: 144.96}

	place := toPlace(result)
	assert.Equal(t, "Melbourne VIC, Australia", place.Name)
	assert.Equal(t, "Victoria", place.Region)
	assert.Equal(t, "Australia", place.Country)
	assert.InDelta(t, -37.81, place.Lat, 0.001)
	assert.InDelta(t, 144.96, place.Long, 0.001)
}

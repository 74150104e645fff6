package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// ErrLocationNotFound means the provider returned zero candidates for the
// query. Not retryable within a run; the caller skips the user.
var ErrLocationNotFound = errors.New("geocode: location not found")

// Place is the single best match for a free-text location query.
type Place struct {
	Name    string // canonical place name (formatted address)
	Region  string
	Country string
	Lat     float64
	Long    float64
}

type Client struct {
	maps *maps.Client
}

func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("geocode: missing maps API key")
	}
	mc, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("geocode: create maps client: %w", err)
	}
	return &Client{maps: mc}, nil
}

// Resolve geocodes a free-text location and returns the best candidate.
// Matching is case-insensitive; an exact match on place name, region, or
// country wins, otherwise the provider's first candidate is taken.
func (c *Client) Resolve(ctx context.Context, query string) (Place, error) {
	normalized := NormalizeQuery(query)
	if normalized == "" {
		return Place{}, fmt.Errorf("geocode: empty location query")
	}

	results, err := c.maps.Geocode(ctx, &maps.GeocodingRequest{Address: normalized})
	if err != nil {
		return Place{}, fmt.Errorf("geocode %q: %w", normalized, err)
	}
	if len(results) == 0 {
		return Place{}, fmt.Errorf("geocode %q: %w", normalized, ErrLocationNotFound)
	}

	return toPlace(pickBest(normalized, results)), nil
}

// NormalizeQuery trims the query and collapses internal whitespace runs.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// pickBest prefers a candidate whose locality, region, or country exactly
// matches the query ignoring case; otherwise the first candidate.
func pickBest(query string, results []maps.GeocodingResult) maps.GeocodingResult {
	for _, result := range results {
		for _, component := range result.AddressComponents {
			if !isPlaceComponent(component.Types) {
				continue
			}
			if strings.EqualFold(component.LongName, query) || strings.EqualFold(component.ShortName, query) {
				return result
			}
		}
	}
	return results[0]
}

func isPlaceComponent(componentTypes []string) bool {
	for _, t := range componentTypes {
		switch t {
		case "locality", "administrative_area_level_1", "country":
			return true
		}
	}
	return false
}

func toPlace(result maps.GeocodingResult) Place {
	place := Place{
		Name: result.FormattedAddress,
		Lat:  result.Geometry.Location.Lat,
		Long: result.Geometry.Location.Lng,
	}
	for _, component := range result.AddressComponents {
		for _, t := range component.Types {
			switch t {
			case "administrative_area_level_1":
				place.Region = component.LongName
			case "country":
				place.Country = component.LongName
			}
		}
	}
	return place
}

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLocation(t *testing.T) {
	tests := []struct {
		raw  string
		want Location
	}{
		{"[-157.8, 21.3]", Location{Kind: Coordinates, LngLat: [2]float64{-157.8, 21.3}}},
		{`{"lng": 10, "lat": -5}`, Location{Kind: Coordinates, LngLat: [2]float64{10, -5}}},
		{"Honolulu, HI", Location{Kind: PlaceName, Name: "Honolulu, HI"}},
		{"96815", Location{Kind: PlaceName, Name: "96815"}},
		{"[1, 2", Location{Kind: PlaceName, Name: "[1, 2"}},
		{"[1, 2, 3]", Location{Kind: PlaceName, Name: "[1, 2, 3]"}},
		{`["1", "2"]`, Location{Kind: PlaceName, Name: `["1", "2"]`}},
		{"[200, 10]", Location{Kind: PlaceName, Name: "[200, 10]"}},
		{`"Maui"`, Location{Kind: PlaceName, Name: `"Maui"`}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLocation(tt.raw), tt.raw)
	}
}

package query

import (
	"encoding/json"
	"math"
)

type LocationKind int

const (
	PlaceName LocationKind = iota
	Coordinates
)

// Location is a classified location parameter: either a literal point or a
// place name that still has to be geocoded.
type Location struct {
	Kind   LocationKind
	Name   string
	LngLat [2]float64
}

// ClassifyLocation decides whether raw is an encoded coordinate pair.
// Accepted encodings are a JSON array [lng, lat] and a JSON object with
// "lng" and "lat" keys. Everything else, bare numbers and malformed JSON
// included, is a place name.
func ClassifyLocation(raw string) Location {
	place := Location{Kind: PlaceName, Name: raw}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return place
	}

	var lng, lat float64
	switch v := decoded.(type) {
	case []any:
		if len(v) != 2 {
			return place
		}
		var ok1, ok2 bool
		lng, ok1 = v[0].(float64)
		lat, ok2 = v[1].(float64)
		if !ok1 || !ok2 {
			return place
		}
	case map[string]any:
		var ok1, ok2 bool
		lng, ok1 = v["lng"].(float64)
		lat, ok2 = v["lat"].(float64)
		if !ok1 || !ok2 {
			return place
		}
	default:
		return place
	}

	if math.Abs(lng) > 180 || math.Abs(lat) > 90 {
		return place
	}
	return Location{Kind: Coordinates, LngLat: [2]float64{lng, lat}}
}

package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNoMatch = errors.New("no location matched the query")

// Mapbox is a forward geocoder backed by the Mapbox Geocoding API.
type Mapbox struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewMapbox(baseURL, token string, timeout time.Duration) *Mapbox {
	return &Mapbox{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type featureCollection struct {
	Features []struct {
		PlaceName string `json:"place_name"`
		Geometry  struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Forward returns the [longitude, latitude] of the best match for place.
func (m *Mapbox) Forward(ctx context.Context, place string) ([2]float64, error) {
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		m.baseURL,
		url.PathEscape(place),
		url.Values{"access_token": {m.token}, "limit": {"1"}}.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return [2]float64{}, err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return [2]float64{}, fmt.Errorf("mapbox request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return [2]float64{}, fmt.Errorf("mapbox responded %s", resp.Status)
	}

	var body featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return [2]float64{}, fmt.Errorf("decode mapbox response: %w", err)
	}
	if len(body.Features) == 0 || len(body.Features[0].Geometry.Coordinates) < 2 {
		return [2]float64{}, ErrNoMatch
	}

	c := body.Features[0].Geometry.Coordinates
	return [2]float64{c[0], c[1]}, nil
}

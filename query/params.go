package query

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	PageSize             = 10
	DefaultDistanceMiles = 25
	MetersPerMile        = 1609.34

	// MaxPage keeps (page-1)*PageSize within an int.
	MaxPage = math.MaxInt / PageSize
)

// Params is the filter state of a single listing request. A nil pointer or
// empty value means the filter is absent.
type Params struct {
	Search   string
	PriceMin *float64
	PriceMax *float64
	Ratings  []int
	Location string
	Distance *float64
	Page     int
}

// ParseParams reads the recognised keys out of a listing query string.
// Values that are empty, do not parse or are not finite are treated as
// absent.
func ParseParams(values url.Values) Params {
	p := Params{
		Search:   strings.TrimSpace(values.Get("search")),
		PriceMin: parseFloat(values.Get("price[min]")),
		PriceMax: parseFloat(values.Get("price[max]")),
		Location: strings.TrimSpace(values.Get("location")),
		Distance: parseFloat(values.Get("distance")),
		Page:     1,
	}

	seen := make(map[int]bool)
	for _, key := range []string{"avgRating[]", "avgRating"} {
		for _, raw := range values[key] {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || n < 0 || n > 5 || seen[n] {
				continue
			}
			seen[n] = true
			p.Ratings = append(p.Ratings, n)
		}
	}
	sort.Ints(p.Ratings)

	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
		p.Page = min(n, MaxPage)
	}
	return p
}

// Empty reports whether no filter is present. Page is not a filter.
func (p Params) Empty() bool {
	return p.Search == "" && p.PriceMin == nil && p.PriceMax == nil &&
		len(p.Ratings) == 0 && p.Location == ""
}

// RadiusMeters is the proximity radius, defaulting to DefaultDistanceMiles.
func (p Params) RadiusMeters() float64 {
	miles := float64(DefaultDistanceMiles)
	if p.Distance != nil && *p.Distance > 0 {
		miles = *p.Distance
	}
	return miles * MetersPerMile
}

func parseFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

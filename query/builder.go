package query

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Geocoder resolves a free-text place to a [longitude, latitude] pair.
type Geocoder interface {
	Forward(ctx context.Context, place string) ([2]float64, error)
}

// GeocodeError reports that a place name could not be resolved.
type GeocodeError struct {
	Place string
	Err   error
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode %q: %v", e.Place, e.Err)
}

func (e *GeocodeError) Unwrap() error { return e.Err }

type Builder struct {
	geocoder Geocoder
}

func NewBuilder(geocoder Geocoder) *Builder {
	return &Builder{geocoder: geocoder}
}

// Build turns p into a Filter. The geocoder is only called when the location
// is a place name; its error aborts the build.
func (b *Builder) Build(ctx context.Context, p Params) (Filter, error) {
	var f Filter
	if p.Empty() {
		return f, nil
	}

	if p.Search != "" {
		f.and(TextMatch{
			Fields:  []string{FieldTitle, FieldDescription, FieldLocation},
			Pattern: regexp.QuoteMeta(p.Search),
		})
	}
	if p.PriceMin != nil {
		f.and(Range{Field: FieldPrice, Op: Gte, Value: *p.PriceMin})
	}
	if p.PriceMax != nil {
		f.and(Range{Field: FieldPrice, Op: Lte, Value: *p.PriceMax})
	}
	if len(p.Ratings) > 0 {
		f.and(In{Field: FieldRatingBucket, Values: append([]int(nil), p.Ratings...)})
	}
	if p.Location != "" {
		center, err := b.resolve(ctx, p.Location)
		if err != nil {
			return Filter{}, err
		}
		f.and(Near{Field: FieldGeometry, Center: center, MaxMeters: p.RadiusMeters()})
	}
	return f, nil
}

func (b *Builder) resolve(ctx context.Context, raw string) ([2]float64, error) {
	loc := ClassifyLocation(raw)
	if loc.Kind == Coordinates {
		return loc.LngLat, nil
	}
	if b.geocoder == nil {
		return [2]float64{}, &GeocodeError{Place: loc.Name, Err: errors.New("no geocoder configured")}
	}
	center, err := b.geocoder.Forward(ctx, loc.Name)
	if err != nil {
		return [2]float64{}, &GeocodeError{Place: loc.Name, Err: err}
	}
	return center, nil
}

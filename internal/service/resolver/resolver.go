package resolver

import (
	"context"
	"strings"
	"unicode/utf16"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
)

// Geocoder looks up a free-text place name. Optional.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (models.Location, error)
}

// Resolver turns a typed place name into a coordinate.
// Landmarks win, then the geocoder (if any), then the deterministic hash point.
type Resolver struct {
	landmarks map[string]models.Landmark
	list      []models.Landmark
	base      models.Location
	geocoder  Geocoder
	l         logger.Logger
}

func New(tables models.Tables, geocoder Geocoder, l logger.Logger) *Resolver {
	r := &Resolver{
		landmarks: make(map[string]models.Landmark, len(tables.Landmarks)),
		list:      append([]models.Landmark(nil), tables.Landmarks...),
		base:      tables.HashBase,
		geocoder:  geocoder,
		l:         l,
	}
	for _, lm := range tables.Landmarks {
		r.landmarks[normalize(lm.Name)] = lm
	}
	return r
}

// Resolve never fails: unknown names get a stable point near the base.
func (r *Resolver) Resolve(ctx context.Context, name string) models.Location {
	trimmed := strings.TrimSpace(name)

	if lm, ok := r.landmarks[normalize(trimmed)]; ok {
		return lm.Location()
	}

	if r.geocoder != nil && trimmed != "" {
		loc, err := r.geocoder.Geocode(ctx, trimmed)
		if err == nil {
			return loc
		}
		r.l.Warn(ctx, "geocoder failed, using hash fallback", "location", trimmed, "error", err.Error())
	}

	return HashLocation(r.base, trimmed)
}

// Landmarks returns the known landmarks in table order.
func (r *Resolver) Landmarks() []models.Landmark {
	return append([]models.Landmark(nil), r.list...)
}

// HashLocation offsets base by up to 0.099 degrees on each axis, derived from
// the sum of the name's UTF-16 code units, so characters outside the BMP
// count as two surrogates.
func HashLocation(base models.Location, name string) models.Location {
	var h int
	for _, u := range utf16.Encode([]rune(name)) {
		h += int(u)
	}
	return models.Location{
		Name:      name,
		Latitude:  base.Latitude + float64(h%100)/1000,
		Longitude: base.Longitude + float64((h/100)%100)/1000,
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package models

import (
	"errors"
	"fmt"

	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

// DefaultSurgeRadiusKm is the pickup radius around a surge zone center.
const DefaultSurgeRadiusKm = 2.0

// CategoryRates are the fixed constants of a ride category.
type CategoryRates struct {
	BaseFare      float64 `yaml:"base_fare" json:"base_fare"`
	CostPerKm     float64 `yaml:"cost_per_km" json:"cost_per_km"`
	ETAMultiplier float64 `yaml:"eta_multiplier" json:"eta_multiplier"`
	MaxDistanceKm float64 `yaml:"max_distance_km" json:"max_distance_km"`
}

// SurgeZone is a high-demand area. Zones are matched in table order.
type SurgeZone struct {
	Name       string  `yaml:"name" json:"name"`
	Latitude   float64 `yaml:"latitude" json:"latitude"`
	Longitude  float64 `yaml:"longitude" json:"longitude"`
	RadiusKm   float64 `yaml:"radius_km" json:"radius_km"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

func (z SurgeZone) Center() Location {
	return Location{Name: z.Name, Latitude: z.Latitude, Longitude: z.Longitude}
}

// Recommendation maps a pickup area (substring) to a suggested destination.
type Recommendation struct {
	Area        string `yaml:"area" json:"area"`
	Destination string `yaml:"destination" json:"destination"`
}

// Tables is the immutable configuration the engine works on.
type Tables struct {
	Landmarks       []Landmark                           `yaml:"landmarks"`
	HashBase        Location                             `yaml:"hash_base"`
	SurgeZones      []SurgeZone                          `yaml:"surge_zones"`
	Categories      map[types.RideCategory]CategoryRates `yaml:"categories"`
	Recommendations []Recommendation                     `yaml:"recommendations"`
}

// Rates returns the constants of a category.
func (t Tables) Rates(c types.RideCategory) (CategoryRates, error) {
	r, ok := t.Categories[c]
	if !ok {
		return CategoryRates{}, fmt.Errorf("%w: %d", types.ErrInvalidCategory, int(c))
	}
	return r, nil
}

// Validate checks that the tables can drive an estimate.
func (t Tables) Validate() error {
	var errs []error
	for _, c := range types.Categories() {
		r, ok := t.Categories[c]
		if !ok {
			errs = append(errs, fmt.Errorf("missing rates for category %s", c))
			continue
		}
		if r.BaseFare < 0 || r.CostPerKm < 0 || r.ETAMultiplier <= 0 || r.MaxDistanceKm <= 0 {
			errs = append(errs, fmt.Errorf("invalid rates for category %s", c))
		}
	}
	for i, z := range t.SurgeZones {
		if z.RadiusKm <= 0 || z.Multiplier < 1 {
			errs = append(errs, fmt.Errorf("invalid surge zone #%d %q", i, z.Name))
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy so callers can't mutate shared tables.
func (t Tables) Clone() Tables {
	c := Tables{
		Landmarks:       append([]Landmark(nil), t.Landmarks...),
		HashBase:        t.HashBase,
		SurgeZones:      append([]SurgeZone(nil), t.SurgeZones...),
		Categories:      make(map[types.RideCategory]CategoryRates, len(t.Categories)),
		Recommendations: append([]Recommendation(nil), t.Recommendations...),
	}
	for k, v := range t.Categories {
		c.Categories[k] = v
	}
	return c
}

// DefaultTables returns the Dhaka tables.
func DefaultTables() Tables {
	return Tables{
		Landmarks: []Landmark{
			{Name: "Gulshan 1", Latitude: 23.7939, Longitude: 90.4078},
			{Name: "Bashundhara R/A", Latitude: 23.8200, Longitude: 90.4220},
			{Name: "Mirpur 10", Latitude: 23.8070, Longitude: 90.3680},
			{Name: "Uttara", Latitude: 23.8759, Longitude: 90.3978},
			{Name: "Dhanmondi", Latitude: 23.7461, Longitude: 90.3742},
			{Name: "Motijheel", Latitude: 23.7330, Longitude: 90.4172},
		},
		HashBase: Location{Name: "Dhaka", Latitude: 23.8103, Longitude: 90.4125},
		SurgeZones: []SurgeZone{
			{Name: "Gulshan/Banani", Latitude: 23.78, Longitude: 90.41, RadiusKm: DefaultSurgeRadiusKm, Multiplier: 1.5},
			{Name: "Dhanmondi", Latitude: 23.75, Longitude: 90.38, RadiusKm: DefaultSurgeRadiusKm, Multiplier: 1.3},
			{Name: "Old Dhaka/Motijheel", Latitude: 23.72, Longitude: 90.40, RadiusKm: DefaultSurgeRadiusKm, Multiplier: 1.8},
		},
		Categories: map[types.RideCategory]CategoryRates{
			types.Economy:    {BaseFare: 50, CostPerKm: 25, ETAMultiplier: 1.0, MaxDistanceKm: 30},
			types.Premium:    {BaseFare: 100, CostPerKm: 40, ETAMultiplier: 0.8, MaxDistanceKm: 50},
			types.Motorbike:  {BaseFare: 30, CostPerKm: 15, ETAMultiplier: 0.7, MaxDistanceKm: 40},
			types.Riksha:     {BaseFare: 20, CostPerKm: 10, ETAMultiplier: 1.5, MaxDistanceKm: 10},
			types.AutoRiksha: {BaseFare: 35, CostPerKm: 18, ETAMultiplier: 1.2, MaxDistanceKm: 20},
		},
		Recommendations: []Recommendation{
			{Area: "gulshan", Destination: "Bashundhara R/A"},
			{Area: "dhanmondi", Destination: "Motijheel"},
			{Area: "mirpur", Destination: "Uttara"},
		},
	}
}

package ridecalc

import (
	"math"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
)

const (
	earthRadiusKm = 6371 // радиус Земли в км

	farePerHour    = 3
	farePerWeekday = 5
	fareRain       = 70
	fareNoise      = 12.5

	etaPerKm      = 2
	etaPerHour    = 0.5
	etaPerWeekday = 1
	etaRain       = 10
	etaNoise      = 3
	minETAMinutes = 5
)

type Calculator interface {
	Distance(p1, p2 models.Location) float64
	SurgeMultiplier(pickup models.Location) float64
	Recommend(pickupName string) (string, bool)
	Quote(req models.EstimateRequest, pickup, destination models.Location) (models.Quote, error)
}

// Engine is the fare/ETA simulation. Tables are copied on construction and never mutated.
type Engine struct {
	tables models.Tables
	noise  Noise
}

func New(tables models.Tables, noise Noise) *Engine {
	if noise == nil {
		noise = ZeroNoise{}
	}
	return &Engine{
		tables: tables.Clone(),
		noise:  noise,
	}
}

// Tables returns a copy of the engine tables.
func (e *Engine) Tables() models.Tables {
	return e.tables.Clone()
}

func (e *Engine) Distance(p1, p2 models.Location) float64 {
	return Distance(p1, p2)
}

// Distance вычисляет расстояние между двумя координатами по формуле гаверсинусов, в км.
func Distance(p1, p2 models.Location) float64 {
	lat1Rad := p1.Latitude * math.Pi / 180
	lon1Rad := p1.Longitude * math.Pi / 180
	lat2Rad := p2.Latitude * math.Pi / 180
	lon2Rad := p2.Longitude * math.Pi / 180

	diffLat := lat2Rad - lat1Rad
	diffLon := lon2Rad - lon1Rad

	a := math.Pow(math.Sin(diffLat/2), 2) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(diffLon/2), 2)
	angle := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * angle
}

// Quote runs the simulation for already resolved coordinates.
func (e *Engine) Quote(req models.EstimateRequest, pickup, destination models.Location) (models.Quote, error) {
	rates, err := e.tables.Rates(req.Category)
	if err != nil {
		return models.Quote{}, err
	}

	distance := math.Min(Distance(pickup, destination), rates.MaxDistanceKm)

	rain := 0.0
	if req.Rain {
		rain = 1
	}
	hour := float64(req.Hour)
	weekday := float64(req.Weekday)

	fare := distance*rates.CostPerKm + rates.BaseFare +
		hour*farePerHour + weekday*farePerWeekday + rain*fareRain
	fare = math.Max(rates.BaseFare, fare+e.noise.Uniform(-fareNoise, fareNoise))

	eta := distance*etaPerKm*rates.ETAMultiplier +
		hour*etaPerHour + weekday*etaPerWeekday + rain*etaRain
	eta = math.Max(minETAMinutes, eta+e.noise.Uniform(-etaNoise, etaNoise))

	multiplier := e.SurgeMultiplier(pickup)
	fare *= multiplier
	surgeApplied := multiplier > 1.0

	recommended, _ := e.Recommend(req.Pickup)

	return models.Quote{
		DistanceKm:             distance,
		Fare:                   fare,
		ETAMinutes:             int(eta), // truncate, not round
		SurgeMultiplier:        multiplier,
		SurgeApplied:           surgeApplied,
		Confidence:             Confidence(distance, req.Hour, req.Rain, req.Category),
		RecommendedDestination: recommended,
		Impacts:                Impacts(req.Hour, req.Rain, surgeApplied),
	}, nil
}

// IsRushHour reports 7-9 and 17-19 inclusive.
func IsRushHour(hour int) bool {
	return (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19)
}

func isModerateHour(hour int) bool {
	return (hour >= 10 && hour <= 16) || (hour >= 20 && hour <= 21)
}

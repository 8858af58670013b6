package ridecalc

import (
	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

const (
	longDistanceKm = 30

	impactDistance     = 38
	impactRush         = 25
	impactModerate     = 15
	impactBase         = 5
	impactRain         = 10
	impactSurge        = 15
	impactDemandCapped = 40
)

// Confidence starts at High and loses one level per penalty, never going below Low.
func Confidence(distanceKm float64, hour int, rain bool, category types.RideCategory) types.Confidence {
	score := 3

	if distanceKm > longDistanceKm {
		score--
	}
	if IsRushHour(hour) {
		score--
	}
	if rain {
		score--
	}
	// рикши больше зависят от пробок и маршрута
	if category == types.Riksha || category == types.AutoRiksha {
		score--
	}

	score = max(1, score)

	switch score {
	case 3:
		return types.ConfidenceHigh
	case 2:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// Impacts returns the display-only feature impact percentages.
// Demand level and location situation share one formula.
func Impacts(hour int, rain, surgeApplied bool) models.FeatureImpacts {
	timeImpact := impactBase
	switch {
	case IsRushHour(hour):
		timeImpact = impactRush
	case isModerateHour(hour):
		timeImpact = impactModerate
	}

	situational := impactBase
	if rain {
		situational += impactRain
	}
	if surgeApplied {
		situational += impactSurge
	}
	situational = min(situational, impactDemandCapped)

	return models.FeatureImpacts{
		Distance:          impactDistance,
		TimeOfDay:         timeImpact,
		DemandLevel:       situational,
		LocationSituation: situational,
	}
}

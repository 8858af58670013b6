package ridecalc

import "github.com/Temutjin2k/fare-estimator/internal/domain/models"

// SurgeMultiplier returns the multiplier of the first zone (in table order) whose
// center is within its radius of the pickup, or 1.0.
func (e *Engine) SurgeMultiplier(pickup models.Location) float64 {
	return surgeMultiplier(e.tables.SurgeZones, pickup)
}

func surgeMultiplier(zones []models.SurgeZone, pickup models.Location) float64 {
	for _, z := range zones {
		radius := z.RadiusKm
		if radius <= 0 {
			radius = models.DefaultSurgeRadiusKm
		}
		if Distance(pickup, z.Center()) <= radius {
			return z.Multiplier
		}
	}
	return 1.0
}

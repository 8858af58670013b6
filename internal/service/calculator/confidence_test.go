package ridecalc

import (
	"testing"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		hour     int
		rain     bool
		category types.RideCategory
		want     types.Confidence
	}{
		{"no penalties", 5, 12, false, types.Economy, types.ConfidenceHigh},
		{"rush hour only", 5, 8, false, types.Economy, types.ConfidenceMedium},
		{"evening rush edge", 5, 19, false, types.Premium, types.ConfidenceMedium},
		{"hour 10 is not rush", 5, 10, false, types.Premium, types.ConfidenceHigh},
		{"long distance only", 31, 12, false, types.Premium, types.ConfidenceMedium},
		{"exactly 30km is not long", 30, 12, false, types.Premium, types.ConfidenceHigh},
		{"rain and riksha", 2, 12, true, types.Riksha, types.ConfidenceLow},
		{"auto riksha only", 2, 12, false, types.AutoRiksha, types.ConfidenceMedium},
		{"every penalty stays Low", 45, 18, true, types.AutoRiksha, types.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.distance, tt.hour, tt.rain, tt.category); got != tt.want {
				t.Errorf("Confidence() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestImpacts(t *testing.T) {
	tests := []struct {
		name  string
		hour  int
		rain  bool
		surge bool
		want  models.FeatureImpacts
	}{
		{"night, dry, no surge", 2, false, false, impacts(5, 5)},
		{"rush", 7, false, false, impacts(25, 5)},
		{"moderate noon", 12, false, false, impacts(15, 5)},
		{"moderate 21", 21, false, false, impacts(15, 5)},
		{"late 22", 22, false, false, impacts(5, 5)},
		{"rain", 12, true, false, impacts(15, 15)},
		{"surge", 18, false, true, impacts(25, 20)},
		{"rain and surge", 0, true, true, impacts(5, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Impacts(tt.hour, tt.rain, tt.surge)
			if got != tt.want {
				t.Errorf("Impacts() = %+v, want %+v", got, tt.want)
			}
			if got.DemandLevel != got.LocationSituation {
				t.Errorf("demand and location impacts must match")
			}
		})
	}
}

func impacts(timeOfDay, situational int) models.FeatureImpacts {
	return models.FeatureImpacts{
		Distance:          38,
		TimeOfDay:         timeOfDay,
		DemandLevel:       situational,
		LocationSituation: situational,
	}
}

func TestRandNoise_Range(t *testing.T) {
	n := NewRandNoise(42)
	for range 1000 {
		v := n.Uniform(-3, 3)
		if v < -3 || v > 3 {
			t.Fatalf("noise %v out of range", v)
		}
	}
}

func TestRandNoise_SeedDeterministic(t *testing.T) {
	a, b := NewRandNoise(7), NewRandNoise(7)
	for range 10 {
		if a.Uniform(0, 1) != b.Uniform(0, 1) {
			t.Fatal("same seed must produce the same sequence")
		}
	}
}

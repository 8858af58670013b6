package ridecalc

import (
	"errors"
	"math"
	"testing"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

var (
	gulshan     = models.Location{Name: "Gulshan 1", Latitude: 23.7939, Longitude: 90.4078}
	bashundhara = models.Location{Name: "Bashundhara R/A", Latitude: 23.8200, Longitude: 90.4220}
	dhanmondi   = models.Location{Name: "Dhanmondi", Latitude: 23.7461, Longitude: 90.3742}
	motijheel   = models.Location{Name: "Motijheel", Latitude: 23.7330, Longitude: 90.4172}
	uttara      = models.Location{Name: "Uttara", Latitude: 23.8759, Longitude: 90.3978}
	chittagong  = models.Location{Name: "Chittagong", Latitude: 22.3569, Longitude: 91.7832}
)

func TestDistance_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		p1, p2    models.Location
		wantKm    float64
		tolerance float64
	}{
		{"same point", gulshan, gulshan, 0, 1e-9},
		{"Gulshan 1 to Bashundhara", gulshan, bashundhara, 3.24, 0.01},
		{"Motijheel to Uttara", motijheel, uttara, 16.01, 0.01},
		{"Dhaka to Chittagong (~215km)", gulshan, chittagong, 215, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.p1, tt.p2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("Distance() = %.4f, want %.2f ± %.2f", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	points := []models.Location{gulshan, bashundhara, dhanmondi, motijheel, uttara, chittagong}
	for _, a := range points {
		for _, b := range points {
			if Distance(a, b) != Distance(b, a) {
				t.Fatalf("distance not symmetric for %s and %s", a.Name, b.Name)
			}
		}
		if Distance(a, a) != 0 {
			t.Fatalf("distance to itself must be 0 for %s", a.Name)
		}
	}
}

func TestSurgeMultiplier_DefaultZones(t *testing.T) {
	e := New(models.DefaultTables(), nil)

	tests := []struct {
		name   string
		pickup models.Location
		want   float64
	}{
		{"Gulshan 1 inside Gulshan/Banani", gulshan, 1.5},
		{"Dhanmondi inside Dhanmondi", dhanmondi, 1.3},
		{"Motijheel just outside Old Dhaka", motijheel, 1.0},
		{"zone center itself", models.Location{Latitude: 23.72, Longitude: 90.40}, 1.8},
		{"far away", chittagong, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.SurgeMultiplier(tt.pickup); got != tt.want {
				t.Errorf("SurgeMultiplier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSurgeMultiplier_FirstMatchWins(t *testing.T) {
	tables := models.DefaultTables()
	tables.SurgeZones = []models.SurgeZone{
		{Name: "outer", Latitude: 23.79, Longitude: 90.41, RadiusKm: 3, Multiplier: 1.2},
		{Name: "inner", Latitude: 23.7939, Longitude: 90.4078, RadiusKm: 2, Multiplier: 2.0},
	}
	if got := New(tables, nil).SurgeMultiplier(gulshan); got != 1.2 {
		t.Fatalf("expected first zone in order to win, got %v", got)
	}

	tables.SurgeZones[0], tables.SurgeZones[1] = tables.SurgeZones[1], tables.SurgeZones[0]
	if got := New(tables, nil).SurgeMultiplier(gulshan); got != 2.0 {
		t.Fatalf("expected reordered first zone to win, got %v", got)
	}
}

func TestSurgeMultiplier_ZeroRadiusUsesDefault(t *testing.T) {
	zones := []models.SurgeZone{{Latitude: 23.78, Longitude: 90.41, Multiplier: 1.5}}
	if got := surgeMultiplier(zones, gulshan); got != 1.5 {
		t.Fatalf("expected default 2km radius to match, got %v", got)
	}
}

func TestRecommend(t *testing.T) {
	e := New(models.DefaultTables(), nil)

	tests := []struct {
		pickup string
		want   string
		ok     bool
	}{
		{"Gulshan 1", "Bashundhara R/A", true},
		{"north GULSHAN avenue", "Bashundhara R/A", true},
		{"dhanmondi 27", "Motijheel", true},
		{"Mirpur 10", "Uttara", true},
		{"Uttara", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := e.Recommend(tt.pickup)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Recommend(%q) = (%q, %v), want (%q, %v)", tt.pickup, got, ok, tt.want, tt.ok)
		}
	}
}

func TestQuote_GulshanToBashundhara(t *testing.T) {
	e := New(models.DefaultTables(), ZeroNoise{})
	req := models.EstimateRequest{
		Pickup:      "Gulshan 1",
		Destination: "Bashundhara R/A",
		Hour:        8,
		Weekday:     0,
		Category:    types.Economy,
	}

	q, err := e.Quote(req, gulshan, bashundhara)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}

	d := Distance(gulshan, bashundhara)
	wantFare := (d*25 + 50 + 8*3) * 1.5
	if math.Abs(q.Fare-wantFare) > 1e-9 {
		t.Errorf("fare = %v, want %v", q.Fare, wantFare)
	}
	if q.ETAMinutes != int(d*2+4) {
		t.Errorf("eta = %d, want %d", q.ETAMinutes, int(d*2+4))
	}
	if !q.SurgeApplied || q.SurgeMultiplier != 1.5 {
		t.Errorf("expected 1.5 surge, got %v applied=%v", q.SurgeMultiplier, q.SurgeApplied)
	}
	if q.Confidence != types.ConfidenceMedium {
		t.Errorf("confidence = %s, want Medium", q.Confidence)
	}
	if q.RecommendedDestination != "Bashundhara R/A" {
		t.Errorf("recommended = %q", q.RecommendedDestination)
	}
	want := models.FeatureImpacts{Distance: 38, TimeOfDay: 25, DemandLevel: 20, LocationSituation: 20}
	if q.Impacts != want {
		t.Errorf("impacts = %+v, want %+v", q.Impacts, want)
	}
	if q.FareText() != "232.57 BDT" {
		t.Errorf("fare text = %q", q.FareText())
	}
	if q.ETAText() != "10 mins" {
		t.Errorf("eta text = %q", q.ETAText())
	}
}

func TestQuote_NoiseBounds(t *testing.T) {
	req := models.EstimateRequest{Hour: 12, Weekday: 3, Category: types.Premium}
	d := Distance(uttara, bashundhara)
	base := d*40 + 100 + 12*3 + 3*5

	low, _ := New(models.DefaultTables(), FixedNoise(0)).Quote(req, uttara, bashundhara)
	high, _ := New(models.DefaultTables(), FixedNoise(1)).Quote(req, uttara, bashundhara)

	if math.Abs(low.Fare-(base-12.5)) > 1e-9 || math.Abs(high.Fare-(base+12.5)) > 1e-9 {
		t.Fatalf("fare noise out of range: low=%v high=%v base=%v", low.Fare, high.Fare, base)
	}
	if low.SurgeApplied || high.SurgeApplied {
		t.Fatal("uttara is not in a surge zone")
	}
}

func TestQuote_FloorsAndCaps(t *testing.T) {
	e := New(models.DefaultTables(), FixedNoise(0))

	// same spot at midnight, lowest noise: both floors kick in
	q, err := e.Quote(models.EstimateRequest{Category: types.Riksha}, uttara, uttara)
	if err != nil {
		t.Fatal(err)
	}
	if q.Fare != 20 {
		t.Errorf("fare = %v, want base fare 20", q.Fare)
	}
	if q.ETAMinutes != 5 {
		t.Errorf("eta = %d, want 5", q.ETAMinutes)
	}

	// 16km trip is capped to the riksha max of 10km
	q, err = e.Quote(models.EstimateRequest{Category: types.Riksha}, motijheel, uttara)
	if err != nil {
		t.Fatal(err)
	}
	if q.DistanceKm != 10 {
		t.Errorf("distance = %v, want capped 10", q.DistanceKm)
	}
	if q.DistanceText() != "10.00 km" {
		t.Errorf("distance text = %q", q.DistanceText())
	}
}

func TestQuote_InvariantsWithRandomNoise(t *testing.T) {
	tables := models.DefaultTables()
	points := []models.Location{gulshan, bashundhara, dhanmondi, motijheel, uttara, chittagong}

	for seed := uint64(1); seed <= 5; seed++ {
		e := New(tables, NewRandNoise(seed))
		for _, c := range types.Categories() {
			rates := tables.Categories[c]
			for hour := 0; hour < 24; hour += 5 {
				for _, p := range points {
					req := models.EstimateRequest{Hour: hour, Weekday: int(seed) % 7, Rain: hour%2 == 0, Category: c}
					q, err := e.Quote(req, p, gulshan)
					if err != nil {
						t.Fatal(err)
					}
					if q.Fare < rates.BaseFare {
						t.Fatalf("fare %v below base %v", q.Fare, rates.BaseFare)
					}
					if q.ETAMinutes < 5 {
						t.Fatalf("eta %d below 5", q.ETAMinutes)
					}
					if q.DistanceKm > rates.MaxDistanceKm {
						t.Fatalf("distance %v above cap %v", q.DistanceKm, rates.MaxDistanceKm)
					}
				}
			}
		}
	}
}

func TestQuote_UnknownCategory(t *testing.T) {
	_, err := New(models.DefaultTables(), nil).Quote(models.EstimateRequest{Category: 7}, gulshan, uttara)
	if !errors.Is(err, types.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestEngine_TablesAreCopied(t *testing.T) {
	tables := models.DefaultTables()
	e := New(tables, nil)
	tables.SurgeZones[0].Multiplier = 5

	if got := e.SurgeMultiplier(gulshan); got != 1.5 {
		t.Fatalf("engine must not see caller mutations, got %v", got)
	}
}

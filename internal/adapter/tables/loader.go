package tables

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

// file mirrors models.Tables with categories keyed by name.
type file struct {
	Landmarks       []models.Landmark               `yaml:"landmarks"`
	HashBase        *models.Location                `yaml:"hash_base"`
	SurgeZones      []models.SurgeZone              `yaml:"surge_zones"`
	Categories      map[string]models.CategoryRates `yaml:"categories"`
	Recommendations []models.Recommendation         `yaml:"recommendations"`
}

// Load reads a tables file. Sections missing from the file keep the built-in Dhaka values.
// An empty path returns the defaults.
func Load(path string) (models.Tables, error) {
	t := models.DefaultTables()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Tables{}, fmt.Errorf("failed to read tables file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (models.Tables, error) {
	t := models.DefaultTables()

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return models.Tables{}, fmt.Errorf("failed to parse tables file: %w", err)
	}

	if f.Landmarks != nil {
		t.Landmarks = f.Landmarks
	}
	if f.HashBase != nil {
		t.HashBase = *f.HashBase
	}
	if f.SurgeZones != nil {
		t.SurgeZones = f.SurgeZones
		for i := range t.SurgeZones {
			if t.SurgeZones[i].RadiusKm == 0 {
				t.SurgeZones[i].RadiusKm = models.DefaultSurgeRadiusKm
			}
		}
	}
	for name, rates := range f.Categories {
		c, err := types.ParseRideCategory(name)
		if err != nil {
			return models.Tables{}, err
		}
		t.Categories[c] = rates
	}
	if f.Recommendations != nil {
		t.Recommendations = f.Recommendations
	}

	if err := t.Validate(); err != nil {
		return models.Tables{}, fmt.Errorf("invalid tables file: %w", err)
	}
	return t, nil
}

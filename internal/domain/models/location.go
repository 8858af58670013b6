package models

// Location is a display name resolved to a coordinate.
type Location struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Landmark is a named place with a fixed coordinate.
type Landmark struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

func (l Landmark) Location() Location {
	return Location{Name: l.Name, Latitude: l.Latitude, Longitude: l.Longitude}
}

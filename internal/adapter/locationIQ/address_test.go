package locationIQ

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Banani Road 11" {
			t.Errorf("query not escaped properly: %q", got)
		}
		if r.URL.Query().Get("key") != "secret" {
			t.Errorf("api key not sent")
		}
		w.Write([]byte(`[{"lat":"23.7937","lon":"90.4066","display_name":"Road 11, Banani"}]`))
	}))
	defer srv.Close()

	loc, err := New("secret", srv.URL, 0).Geocode(context.Background(), "Banani Road 11")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if loc.Latitude != 23.7937 || loc.Longitude != 90.4066 || loc.Name != "Banani Road 11" {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestGeocode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		notFound bool
	}{
		{"empty result", http.StatusOK, `[]`, true},
		{"404", http.StatusNotFound, `{"error":"Unable to geocode"}`, true},
		{"server error", http.StatusInternalServerError, ``, false},
		{"bad json", http.StatusOK, `{`, false},
		{"bad latitude", http.StatusOK, `[{"lat":"north","lon":"90.1"}]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New("k", srv.URL, 0).Geocode(context.Background(), "nowhere")
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, types.ErrLocationNotFound) != tt.notFound {
				t.Fatalf("ErrLocationNotFound match = %v, want %v (err %v)", !tt.notFound, tt.notFound, err)
			}
		})
	}
}

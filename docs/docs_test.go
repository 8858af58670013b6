package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestRegisteredDocsAreValidJSON(t *testing.T) {
	tests := map[string][]string{
		EstimatorInstance: {"/estimates", "/estimates/{estimate_id}/booking", "/locations", "/ws/form", "/health"},
		JournalInstance:   {"/admin/estimates", "/admin/estimates/export", "/health"},
	}

	for instance, paths := range tests {
		t.Run(instance, func(t *testing.T) {
			doc, err := swag.ReadDoc(instance)
			if err != nil {
				t.Fatalf("ReadDoc: %v", err)
			}

			var parsed struct {
				Swagger string                     `json:"swagger"`
				Paths   map[string]json.RawMessage `json:"paths"`
			}
			if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, doc)
			}
			if parsed.Swagger != "2.0" {
				t.Errorf("swagger = %q", parsed.Swagger)
			}
			for _, p := range paths {
				if _, ok := parsed.Paths[p]; !ok {
					t.Errorf("path %s not documented", p)
				}
			}
		})
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Temutjin2k/fare-estimator/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
)

var testSafelist = []string{"-created_at", "created_at", "fare", "-fare"}

type fakeJournal struct {
	entries []models.JournalEntry
	err     error

	gotFilters models.Filters
	gotSort    string
}

func (f *fakeJournal) List(_ context.Context, filters models.Filters) ([]models.JournalEntry, models.Metadata, error) {
	f.gotFilters = filters
	if f.err != nil {
		return nil, models.Metadata{}, f.err
	}
	return f.entries, models.CalculateMetadata(len(f.entries), filters.Page, filters.PageSize), nil
}

func (f *fakeJournal) ExportCSV(_ context.Context, w io.Writer, sort string, _ []string) (int, error) {
	f.gotSort = sort
	if f.err != nil {
		return 0, f.err
	}
	fmt.Fprintln(w, "estimate_id,fare")
	for _, e := range f.entries {
		fmt.Fprintf(w, "%s,%.2f\n", e.EstimateID, e.Fare)
	}
	return len(f.entries), nil
}

func newJournalMux(s JournalService) *http.ServeMux {
	h := NewJournal(s, testSafelist, logger.Discard())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/estimates", h.ListEstimates)
	mux.HandleFunc("GET /admin/estimates/export", h.ExportEstimates)
	return mux
}

func TestListEstimates(t *testing.T) {
	s := &fakeJournal{entries: []models.JournalEntry{{Pickup: "Uttara", Fare: 120}, {Pickup: "Mirpur 10", Fare: 80}}}
	mux := newJournalMux(s)

	rec := do(t, mux, http.MethodGet, "/admin/estimates?page=1&page_size=10&sort=-fare", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp dto.JournalListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Estimates) != 2 || resp.Metadata.TotalRecords != 2 || resp.Metadata.LastPage != 1 {
		t.Errorf("resp = %+v", resp)
	}
	if s.gotFilters.Sort != "-fare" || s.gotFilters.PageSize != 10 {
		t.Errorf("filters = %+v", s.gotFilters)
	}
}

func TestListEstimatesDefaults(t *testing.T) {
	s := &fakeJournal{}
	rec := do(t, newJournalMux(s), http.MethodGet, "/admin/estimates", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if s.gotFilters.Page != 1 || s.gotFilters.PageSize != 20 || s.gotFilters.Sort != "-created_at" {
		t.Errorf("filters = %+v", s.gotFilters)
	}
}

func TestListEstimatesValidation(t *testing.T) {
	tests := map[string]string{
		"bad page":      "/admin/estimates?page=abc",
		"zero page":     "/admin/estimates?page=0",
		"big page size": "/admin/estimates?page_size=101",
		"unknown sort":  "/admin/estimates?sort=pickup",
	}
	for name, target := range tests {
		t.Run(name, func(t *testing.T) {
			rec := do(t, newJournalMux(&fakeJournal{}), http.MethodGet, target, "")
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", rec.Code)
			}
		})
	}
}

func TestListEstimatesStoreError(t *testing.T) {
	s := &fakeJournal{err: fmt.Errorf("list: %w", types.ErrDatabaseFailed)}
	rec := do(t, newJournalMux(s), http.MethodGet, "/admin/estimates", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestExportEstimates(t *testing.T) {
	s := &fakeJournal{entries: []models.JournalEntry{{Fare: 120}, {Fare: 80}}}
	rec := do(t, newJournalMux(s), http.MethodGet, "/admin/estimates/export?sort=fare", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, `attachment; filename="estimates-`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 || lines[0] != "estimate_id,fare" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if s.gotSort != "fare" {
		t.Errorf("sort = %q", s.gotSort)
	}
}

func TestExportEstimatesErrors(t *testing.T) {
	rec := do(t, newJournalMux(&fakeJournal{}), http.MethodGet, "/admin/estimates/export?sort=pickup", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid sort status = %d, want 422", rec.Code)
	}

	rec = do(t, newJournalMux(&fakeJournal{err: errors.New("boom")}), http.MethodGet, "/admin/estimates/export", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("failing export status = %d, want 500", rec.Code)
	}
	if rec.Header().Get("Content-Disposition") != "" {
		t.Error("attachment header kept on error")
	}
}

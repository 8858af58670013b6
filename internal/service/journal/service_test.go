package journal

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
)

var safelist = []string{"-created_at", "created_at", "fare", "-fare"}

type txStub struct{ calls int }

func (t *txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type memRepo struct {
	estimates []models.Estimate
	bookings  map[uuid.UUID]models.Booking
	listCalls int
	err       error
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: map[uuid.UUID]models.Booking{}}
}

func (r *memRepo) SaveEstimate(_ context.Context, e models.Estimate, _ string) error {
	if r.err != nil {
		return r.err
	}
	r.estimates = append(r.estimates, e)
	return nil
}

func (r *memRepo) SaveBooking(_ context.Context, b models.Booking) error {
	if r.err != nil {
		return r.err
	}
	r.bookings[b.EstimateID] = b
	return nil
}

func (r *memRepo) List(_ context.Context, f models.Filters) ([]models.JournalEntry, int, error) {
	r.listCalls++
	if r.err != nil {
		return nil, 0, r.err
	}

	all := make([]models.JournalEntry, 0, len(r.estimates))
	for _, e := range r.estimates {
		entry := models.JournalEntry{
			EstimateID: e.ID,
			Pickup:     e.Request.Pickup,
			Category:   e.Request.Category.String(),
			Fare:       e.Fare,
			CreatedAt:  e.CreatedAt,
		}
		if b, ok := r.bookings[e.ID]; ok {
			id := b.ID
			entry.Booked, entry.BookingID = true, &id
		}
		all = append(all, entry)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := min(f.Offset(), len(all))
	end := min(start+f.Limit(), len(all))
	return all[start:end], len(all), nil
}

func seed(r *memRepo, n int) {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := range n {
		r.estimates = append(r.estimates, models.Estimate{
			ID:        uuid.New(),
			Request:   models.EstimateRequest{Pickup: "Mirpur 10", Category: types.Riksha},
			Quote:     models.Quote{Fare: float64(20 + i)},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
}

func TestRecordEstimateAndBooking(t *testing.T) {
	repo := newMemRepo()
	tx := &txStub{}
	s := New(repo, tx, logger.Discard())
	ctx := context.Background()

	est := models.Estimate{ID: uuid.New(), CreatedAt: time.Now()}
	if err := s.RecordEstimate(ctx, models.EstimateComputedEvent{Type: types.EventEstimateComputed, Estimate: est}); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordBooking(ctx, models.BookingConfirmedEvent{Booking: models.Booking{ID: uuid.New(), EstimateID: est.ID}}); err != nil {
		t.Fatal(err)
	}

	if tx.calls != 2 {
		t.Fatalf("expected each record in its own transaction, got %d", tx.calls)
	}
	entries, meta, err := s.List(ctx, models.Filters{Page: 1, PageSize: 10, Sort: "-created_at", SortSafelist: safelist})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !entries[0].Booked || meta.TotalRecords != 1 || meta.LastPage != 1 {
		t.Fatalf("unexpected list %+v %+v", entries, meta)
	}
}

func TestRecord_PropagatesDatabaseFailure(t *testing.T) {
	repo := newMemRepo()
	repo.err = types.ErrDatabaseFailed
	s := New(repo, &txStub{}, logger.Discard())

	err := s.RecordEstimate(context.Background(), models.EstimateComputedEvent{})
	if !errors.Is(err, types.ErrDatabaseFailed) {
		t.Fatalf("RecordEstimate() = %v, want ErrDatabaseFailed so the consumer requeues", err)
	}
}

func TestExportCSV(t *testing.T) {
	repo := newMemRepo()
	seed(repo, 250)
	s := New(repo, &txStub{}, logger.Discard())

	var buf bytes.Buffer
	n, err := s.ExportCSV(context.Background(), &buf, "-created_at", safelist)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if n != 250 {
		t.Fatalf("wrote %d rows, want 250", n)
	}
	if repo.listCalls != 3 {
		t.Fatalf("expected 3 pages, got %d", repo.listCalls)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 251 {
		t.Fatalf("expected header + 250 rows, got %d", len(records))
	}
	header := strings.Join(records[0], ",")
	if !strings.HasPrefix(header, "estimate_id,pickup,destination") || !strings.Contains(header, "booking_id") {
		t.Fatalf("unexpected header %q", header)
	}
	// newest first
	if records[1][8] != "269" {
		t.Fatalf("first row fare = %q, want 269", records[1][8])
	}
}

func TestExportCSV_EmptyStillHasHeader(t *testing.T) {
	s := New(newMemRepo(), &txStub{}, logger.Discard())

	var buf bytes.Buffer
	n, err := s.ExportCSV(context.Background(), &buf, "-created_at", safelist)
	if err != nil || n != 0 {
		t.Fatalf("ExportCSV() = %d, %v", n, err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "estimate_id,") {
		t.Fatalf("expected only the header, got %q", buf.String())
	}
}

package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/metrics"
	"github.com/Temutjin2k/fare-estimator/pkg/postgres"
)

// JournalSortSafelist are the sort keys accepted by List.
var JournalSortSafelist = []string{"-created_at", "created_at", "fare", "-fare", "distance_km", "-distance_km", "eta_minutes", "-eta_minutes"}

type JournalRepo struct {
	db      *pgxpool.Pool
	service string
}

func NewJournalRepo(db *pgxpool.Pool, service string) *JournalRepo {
	return &JournalRepo{db: db, service: service}
}

// SaveEstimate inserts the estimate. Redelivered events are ignored.
func (r *JournalRepo) SaveEstimate(ctx context.Context, e models.Estimate, requestID string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDatabaseQuery(r.service, "save_estimate", err, time.Since(start)) }()

	q := TxorDB(ctx, r.db)

	var recommended *string
	if e.RecommendedDestination != "" {
		recommended = &e.RecommendedDestination
	}

	query := `INSERT INTO estimates (id, pickup, destination, pickup_lat, pickup_lon, destination_lat, destination_lon,
	                                 hour, weekday, rain, category, distance_km, fare, eta_minutes, surge_multiplier,
	                                 confidence, recommended, request_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	          ON CONFLICT (id) DO NOTHING;`

	_, err = q.Exec(ctx, query,
		e.ID, e.Request.Pickup, e.Request.Destination,
		e.Pickup.Latitude, e.Pickup.Longitude, e.Destination.Latitude, e.Destination.Longitude,
		e.Request.Hour, e.Request.Weekday, e.Request.Rain, e.Request.Category.String(),
		e.DistanceKm, e.Fare, e.ETAMinutes, e.SurgeMultiplier,
		string(e.Confidence), recommended, requestID, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("journal repo: SaveEstimate: %w: %w", types.ErrDatabaseFailed, err)
	}
	return nil
}

// SaveBooking inserts the booking. A second booking of the same estimate is ignored.
func (r *JournalRepo) SaveBooking(ctx context.Context, b models.Booking) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDatabaseQuery(r.service, "save_booking", err, time.Since(start)) }()

	q := TxorDB(ctx, r.db)

	var passenger *string
	if b.PassengerID != "" {
		passenger = &b.PassengerID
	}

	query := `INSERT INTO bookings (id, estimate_id, passenger_id, status, category, fare, confirmed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7);`

	_, err = q.Exec(ctx, query, b.ID, b.EstimateID, passenger, string(b.Status), b.Category.String(), b.Fare, b.ConfirmedAt)
	if postgres.IsUniqueViolation(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("journal repo: SaveBooking: %w: %w", types.ErrDatabaseFailed, err)
	}
	return nil
}

// List returns one page of the journal and the total number of estimates.
func (r *JournalRepo) List(ctx context.Context, f models.Filters) (entries []models.JournalEntry, total int, err error) {
	start := time.Now()
	defer func() { metrics.RecordDatabaseQuery(r.service, "list_journal", err, time.Since(start)) }()

	q := TxorDB(ctx, r.db)

	// sort column comes from the safelist only
	query := fmt.Sprintf(`
		SELECT count(*) OVER(),
		       e.id, e.pickup, e.destination, e.hour, e.weekday, e.rain, e.category,
		       e.distance_km, e.fare::float8, e.eta_minutes, e.surge_multiplier, e.confidence,
		       b.id, e.created_at
		FROM estimates e
		LEFT JOIN bookings b ON b.estimate_id = e.id
		ORDER BY e.%s %s, e.id ASC
		LIMIT $1 OFFSET $2;`, f.SortColumn(), f.SortDirection())

	rows, err := q.Query(ctx, query, f.Limit(), f.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("journal repo: List: %w: %w", types.ErrDatabaseFailed, err)
	}
	defer rows.Close()

	entries = make([]models.JournalEntry, 0, f.Limit())
	for rows.Next() {
		var (
			e         models.JournalEntry
			bookingID *uuid.UUID
		)
		if err := rows.Scan(
			&total,
			&e.EstimateID, &e.Pickup, &e.Destination, &e.Hour, &e.Weekday, &e.Rain, &e.Category,
			&e.DistanceKm, &e.Fare, &e.ETAMinutes, &e.SurgeMultiplier, &e.Confidence,
			&bookingID, &e.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("journal repo: List scan: %w", err)
		}
		e.BookingID = bookingID
		e.Booked = bookingID != nil
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("journal repo: List rows: %w", err)
	}

	return entries, total, nil
}

package journal

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
	"github.com/Temutjin2k/fare-estimator/pkg/trm"
)

const exportPageSize = 100

type Repo interface {
	SaveEstimate(ctx context.Context, e models.Estimate, requestID string) error
	SaveBooking(ctx context.Context, b models.Booking) error
	List(ctx context.Context, f models.Filters) ([]models.JournalEntry, int, error)
}

// Service keeps the audit journal of estimator events.
type Service struct {
	repo Repo
	trm  trm.TxManager
	l    logger.Logger
}

func New(repo Repo, trm trm.TxManager, l logger.Logger) *Service {
	return &Service{repo: repo, trm: trm, l: l}
}

func (s *Service) RecordEstimate(ctx context.Context, ev models.EstimateComputedEvent) error {
	ctx = wrap.WithAction(ctx, "journal_record_estimate")

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		return s.repo.SaveEstimate(ctx, ev.Estimate, ev.RequestID)
	})
	if err != nil {
		return wrap.Error(ctx, err)
	}

	s.l.Debug(ctx, "estimate journaled", "fare", ev.Estimate.Fare)
	return nil
}

func (s *Service) RecordBooking(ctx context.Context, ev models.BookingConfirmedEvent) error {
	ctx = wrap.WithAction(ctx, "journal_record_booking")

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		return s.repo.SaveBooking(ctx, ev.Booking)
	})
	if err != nil {
		return wrap.Error(ctx, err)
	}

	s.l.Debug(ctx, "booking journaled", "booking_id", ev.Booking.ID.String())
	return nil
}

// List returns one page of journal entries with pagination metadata.
func (s *Service) List(ctx context.Context, f models.Filters) ([]models.JournalEntry, models.Metadata, error) {
	ctx = wrap.WithAction(ctx, "journal_list")

	entries, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, err)
	}
	return entries, models.CalculateMetadata(total, f.Page, f.PageSize), nil
}

// ExportCSV writes every journal entry in sort order, header first.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, sort string, safelist []string) (int, error) {
	ctx = wrap.WithAction(ctx, "journal_export")

	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(models.JournalEntry{}); err != nil {
		return 0, wrap.Error(ctx, fmt.Errorf("failed to write csv header: %w", err))
	}

	written := 0
	for page := 1; ; page++ {
		f, err := models.NewFilters(page, exportPageSize, sort, safelist)
		if err != nil {
			return written, wrap.Error(ctx, err)
		}

		entries, total, err := s.repo.List(ctx, f)
		if err != nil {
			return written, wrap.Error(ctx, err)
		}

		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return written, wrap.Error(ctx, fmt.Errorf("failed to encode csv row: %w", err))
			}
			written++
		}

		if len(entries) < exportPageSize || page*exportPageSize >= total {
			break
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, wrap.Error(ctx, fmt.Errorf("failed to flush csv: %w", err))
	}
	return written, nil
}

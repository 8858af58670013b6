package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Temutjin2k/fare-estimator/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
	"github.com/Temutjin2k/fare-estimator/pkg/validator"
)

type JournalService interface {
	List(ctx context.Context, f models.Filters) ([]models.JournalEntry, models.Metadata, error)
	ExportCSV(ctx context.Context, w io.Writer, sort string, safelist []string) (int, error)
}

type Journal struct {
	s            JournalService
	sortSafelist []string
	l            logger.Logger
}

// NewJournal takes the sort keys accepted by the journal store, default first.
func NewJournal(s JournalService, sortSafelist []string, l logger.Logger) *Journal {
	return &Journal{
		s:            s,
		sortSafelist: sortSafelist,
		l:            l,
	}
}

// ListEstimates godoc
// @Summary      Journaled estimates
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page"       default(1)
// @Param        page_size  query     int     false  "Page size"  default(20)
// @Param        sort       query     string  false  "Sort key, prefix with - for descending"  default(-created_at)
// @Success      200        {object}  dto.JournalListResponse
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      422        {object}  map[string]any
// @Router       /admin/estimates [get]
func (h *Journal) ListEstimates(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "admin_list_estimates")

	v := validator.New()
	qs := r.URL.Query()

	page := readInt(qs, "page", 1, v)
	pageSize := readInt(qs, "page_size", 20, v)
	sort := readString(qs, "sort", h.sortSafelist[0])

	filters, err := models.NewFilters(page, pageSize, sort, h.sortSafelist)
	if err != nil {
		internalErrorResponse(w, "internal error")
		return
	}

	if filters.Validate(v); !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	entries, meta, err := h.s.List(ctx, filters)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list journal", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	resp := dto.JournalListResponse{Estimates: entries, Metadata: meta}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// ExportEstimates godoc
// @Summary      Export journal as CSV
// @Tags         Admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        sort  query  string  false  "Sort key"  default(-created_at)
// @Success      200
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]any
// @Router       /admin/estimates/export [get]
func (h *Journal) ExportEstimates(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "admin_export_estimates")

	sort := readString(r.URL.Query(), "sort", h.sortSafelist[0])

	v := validator.New()
	if v.Check(validator.PermittedValue(sort, h.sortSafelist...), "sort", "invalid sort value"); !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	filename := "estimates-" + time.Now().UTC().Format("20060102-150405") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	// rows are buffered, so a failure before the first flush still gets a JSON error
	rows, err := h.s.ExportCSV(ctx, w, sort, h.sortSafelist)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "csv export failed", err, "rows", rows)
		if rows == 0 {
			w.Header().Del("Content-Disposition")
			errorResponse(w, GetCode(err), err.Error())
		}
		return
	}

	h.l.Info(ctx, "journal exported", "rows", rows)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/sangkips/beatlicense-api/internal/domain/report"
	"github.com/sangkips/beatlicense-api/internal/domain/repository"
	"github.com/sangkips/beatlicense-api/internal/logging"
	"github.com/sangkips/beatlicense-api/internal/metrics"
	"github.com/sangkips/beatlicense-api/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

// SalesReportService fetches every revenue source for a date range and
// aggregates the results into a Report
type SalesReportService struct {
	sources  repository.SalesSourceRepository
	priceIDs []string
	opts     report.AggregateOptions
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSalesReportService creates a new sales report service. priceIDs is the
// membership price id allow-list.
func NewSalesReportService(
	sources repository.SalesSourceRepository,
	priceIDs []string,
	opts report.AggregateOptions,
	logger zerolog.Logger,
) *SalesReportService {
	return &SalesReportService{
		sources:  sources,
		priceIDs: priceIDs,
		opts:     opts,
		logger:   logging.Component(logger, "SalesReportService"),
		now:      time.Now,
	}
}

// sourceError remembers which category failed
type sourceError struct {
	category enum.RevenueCategory
	err      error
}

func (e *sourceError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.category, e.err)
}

func (e *sourceError) Unwrap() error {
	return e.err
}

// Generate builds the report for dr. Any source failure aborts the whole
// report with a classified *apperror.AppError.
func (s *SalesReportService) Generate(ctx context.Context, dr report.DateRange) (*report.Report, error) {
	started := time.Now()

	src, err := s.fetch(ctx, dr)
	if err != nil {
		if ctx.Err() != nil {
			// the caller went away; nothing failed on the store side
			s.logger.Debug().
				Err(err).
				Str("start", dr.StartDate()).
				Str("end", dr.EndDate()).
				Msg("Sales report abandoned")
			return nil, apperror.ClassifyStoreError(err)
		}
		metrics.ReportsGenerated.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, s.classify(err, dr)
	}
	recordSourceCounts(src)

	agg := report.Aggregate(report.Normalize(src), s.opts)
	rep := report.Assemble(dr, agg, s.now())

	elapsed := time.Since(started)
	metrics.ReportsGenerated.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.ReportGenerationDuration.Observe(float64(elapsed.Milliseconds()))
	if rep.Totals.UnattributedSales > 0 {
		metrics.UnattributedEvents.Add(float64(rep.Totals.UnattributedSales))
		s.logger.Warn().
			Int("unattributed_sales", rep.Totals.UnattributedSales).
			Str("unattributed_revenue", rep.Totals.UnattributedRevenue.StringFixed(2)).
			Str("policy", s.opts.Unresolved.String()).
			Msg("Some revenue events have no earner")
	}

	s.logger.Info().
		Str("start", dr.StartDate()).
		Str("end", dr.EndDate()).
		Int("days", dr.Days()).
		Int("records", src.Len()).
		Int("sales", rep.Totals.TotalSales).
		Str("revenue", rep.Totals.TotalRevenue.StringFixed(2)).
		Dur("elapsed", elapsed).
		Msg("Sales report generated")

	return rep, nil
}

// fetch queries the six sources concurrently. Each goroutine owns one field of
// SourceRecords, so no locking is needed; the first failure cancels the rest.
func (s *SalesReportService) fetch(ctx context.Context, dr report.DateRange) (report.SourceRecords, error) {
	var src report.SourceRecords
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		src.TrackLicenses, err = s.sources.ListTrackLicenses(gctx, dr)
		return wrapSource(enum.RevenueCategoryTrackLicense, err)
	})
	g.Go(func() (err error) {
		src.SyncProposals, err = s.sources.ListSyncProposals(gctx, dr)
		return wrapSource(enum.RevenueCategorySyncProposal, err)
	})
	g.Go(func() (err error) {
		src.CustomSyncRequests, err = s.sources.ListCustomSyncRequests(gctx, dr)
		return wrapSource(enum.RevenueCategoryCustomSync, err)
	})
	g.Go(func() (err error) {
		src.WhiteLabelClients, err = s.sources.ListWhiteLabelSetupFees(gctx, dr)
		return wrapSource(enum.RevenueCategoryWhiteLabelSetup, err)
	})
	g.Go(func() (err error) {
		src.WhiteLabelPayments, err = s.sources.ListWhiteLabelPayments(gctx, dr)
		return wrapSource(enum.RevenueCategoryWhiteLabelMonthly, err)
	})
	g.Go(func() (err error) {
		src.Subscriptions, err = s.sources.ListMembershipSubscriptions(gctx, dr, s.priceIDs)
		return wrapSource(enum.RevenueCategoryMembershipSubscription, err)
	})

	if err := g.Wait(); err != nil {
		return report.SourceRecords{}, err
	}
	return src, nil
}

func wrapSource(cat enum.RevenueCategory, err error) error {
	if err != nil {
		return &sourceError{category: cat, err: err}
	}
	return nil
}

// recordSourceCounts is only called once every source has succeeded
func recordSourceCounts(src report.SourceRecords) {
	counts := map[enum.RevenueCategory]int{
		enum.RevenueCategoryTrackLicense:           len(src.TrackLicenses),
		enum.RevenueCategorySyncProposal:           len(src.SyncProposals),
		enum.RevenueCategoryCustomSync:             len(src.CustomSyncRequests),
		enum.RevenueCategoryWhiteLabelSetup:        len(src.WhiteLabelClients),
		enum.RevenueCategoryWhiteLabelMonthly:      len(src.WhiteLabelPayments),
		enum.RevenueCategoryMembershipSubscription: len(src.Subscriptions),
	}
	for cat, n := range counts {
		metrics.SourceRecords.WithLabelValues(cat.String()).Add(float64(n))
	}
}

func (s *SalesReportService) classify(err error, dr report.DateRange) error {
	appErr := apperror.ClassifyStoreError(err)

	category := "unknown"
	var se *sourceError
	if errors.As(err, &se) {
		category = se.category.String()
	}
	metrics.SourceFailures.WithLabelValues(category, string(appErr.Kind)).Inc()

	s.logger.Error().
		Err(err).
		Str("category", category).
		Str("kind", string(appErr.Kind)).
		Str("start", dr.StartDate()).
		Str("end", dr.EndDate()).
		Msg("Failed to fetch sales data")
	return appErr
}

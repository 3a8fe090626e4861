package report

import (
	"time"

	"github.com/sangkips/beatlicense-api/internal/domain/enum"
)

// Report is the assembled result of one generation request. It is built
// once by Assemble and only read afterwards.
type Report struct {
	DateRange   DateRange                           `json:"date_range"`
	GeneratedAt time.Time                           `json:"generated_at"`
	Totals      Totals                              `json:"totals"`
	Categories  [enum.CategoryCount]CategorySummary `json:"categories"`
	Earners     []EarnerSummary                     `json:"earners"`
	Days        []DaySummary                        `json:"days"`
}

// Assemble combines a date range and an aggregation into a Report. The
// earner and day slices are copied so later changes to agg do not leak in.
func Assemble(dr DateRange, agg Aggregation, generatedAt time.Time) *Report {
	earners := make([]EarnerSummary, len(agg.Earners))
	copy(earners, agg.Earners)
	days := make([]DaySummary, len(agg.Days))
	copy(days, agg.Days)

	return &Report{
		DateRange:   dr,
		GeneratedAt: generatedAt.UTC(),
		Totals:      agg.Totals,
		Categories:  agg.Categories,
		Earners:     earners,
		Days:        days,
	}
}

// Category returns the summary row for cat
func (r *Report) Category(cat enum.RevenueCategory) CategorySummary {
	if !cat.Valid() {
		return CategorySummary{Category: cat}
	}
	return r.Categories[cat]
}

// TopEarners returns at most n earners in report order; n <= 0 returns all
func (r *Report) TopEarners(n int) []EarnerSummary {
	if n <= 0 || n >= len(r.Earners) {
		return r.Earners
	}
	return r.Earners[:n]
}

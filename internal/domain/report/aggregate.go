package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// UnresolvedPolicy decides what happens to events whose earner join was missing
type UnresolvedPolicy int

const (
	// UnresolvedDrop leaves such events out of the earner view only
	UnresolvedDrop UnresolvedPolicy = iota
	// UnresolvedBucket credits them to an explicit "unknown" earner
	UnresolvedBucket
)

func (p UnresolvedPolicy) String() string {
	if p == UnresolvedBucket {
		return "bucket"
	}
	return "drop"
}

// ParseUnresolvedPolicy accepts "drop" or "bucket"; empty means drop
func ParseUnresolvedPolicy(s string) (UnresolvedPolicy, error) {
	switch s {
	case "", "drop":
		return UnresolvedDrop, nil
	case "bucket":
		return UnresolvedBucket, nil
	default:
		return UnresolvedDrop, fmt.Errorf("unknown unresolved earner policy %q", s)
	}
}

// AggregateOptions tunes Aggregate
type AggregateOptions struct {
	Unresolved UnresolvedPolicy
}

// CategoryCounts holds one counter per revenue category
type CategoryCounts [enum.CategoryCount]int

// Get returns the counter for c
func (c CategoryCounts) Get(cat enum.RevenueCategory) int {
	if !cat.Valid() {
		return 0
	}
	return c[cat]
}

// MarshalJSON renders the counters as an object keyed by category
func (c CategoryCounts) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, enum.CategoryCount)
	for _, cat := range enum.RevenueCategories() {
		m[cat.String()] = c[cat]
	}
	return json.Marshal(m)
}

// Totals are the report-wide figures
type Totals struct {
	TotalRevenue        decimal.Decimal
	TotalSales          int
	AverageSale         decimal.Decimal
	EarnerCount         int
	UnattributedSales   int
	UnattributedRevenue decimal.Decimal
}

// MarshalJSON converts decimal amounts to numbers for API responses
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalRevenue        float64 `json:"total_revenue"`
		TotalSales          int     `json:"total_sales"`
		AverageSale         float64 `json:"average_sale"`
		EarnerCount         int     `json:"earner_count"`
		UnattributedSales   int     `json:"unattributed_sales"`
		UnattributedRevenue float64 `json:"unattributed_revenue"`
	}{
		TotalRevenue:        t.TotalRevenue.InexactFloat64(),
		TotalSales:          t.TotalSales,
		AverageSale:         t.AverageSale.InexactFloat64(),
		EarnerCount:         t.EarnerCount,
		UnattributedSales:   t.UnattributedSales,
		UnattributedRevenue: t.UnattributedRevenue.InexactFloat64(),
	})
}

// CategorySummary is one row of the category breakdown
type CategorySummary struct {
	Category   enum.RevenueCategory
	Count      int
	Revenue    decimal.Decimal
	Percentage float64
}

// MarshalJSON converts decimal amounts to numbers for API responses
func (c CategorySummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category   enum.RevenueCategory `json:"category"`
		Label      string               `json:"label"`
		Count      int                  `json:"count"`
		Revenue    float64              `json:"revenue"`
		Percentage float64              `json:"percentage"`
	}{
		Category:   c.Category,
		Label:      c.Category.Label(),
		Count:      c.Count,
		Revenue:    c.Revenue.InexactFloat64(),
		Percentage: c.Percentage,
	})
}

// EarnerSummary is the revenue credited to one earner
type EarnerSummary struct {
	EarnerID     string
	Name         string
	Email        string
	Kind         EarnerKind
	Counts       CategoryCounts
	TotalCount   int
	TotalRevenue decimal.Decimal
}

// MarshalJSON converts decimal amounts to numbers for API responses
func (e EarnerSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EarnerID     string         `json:"earner_id"`
		Name         string         `json:"name"`
		Email        string         `json:"email"`
		Kind         string         `json:"kind"`
		Counts       CategoryCounts `json:"counts"`
		TotalCount   int            `json:"total_count"`
		TotalRevenue float64        `json:"total_revenue"`
	}{
		EarnerID:     e.EarnerID,
		Name:         e.Name,
		Email:        e.Email,
		Kind:         e.Kind.String(),
		Counts:       e.Counts,
		TotalCount:   e.TotalCount,
		TotalRevenue: e.TotalRevenue.InexactFloat64(),
	})
}

// DaySummary is the activity of one UTC calendar day
type DaySummary struct {
	Date         time.Time
	Counts       CategoryCounts
	TotalCount   int
	TotalRevenue decimal.Decimal
}

// MarshalJSON renders the date as YYYY-MM-DD and amounts as numbers
func (d DaySummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date         string         `json:"date"`
		Counts       CategoryCounts `json:"counts"`
		TotalCount   int            `json:"total_count"`
		TotalRevenue float64        `json:"total_revenue"`
	}{
		Date:         d.Date.Format(DateLayout),
		Counts:       d.Counts,
		TotalCount:   d.TotalCount,
		TotalRevenue: d.TotalRevenue.InexactFloat64(),
	})
}

// Aggregation is the output of Aggregate
type Aggregation struct {
	Totals     Totals
	Categories [enum.CategoryCount]CategorySummary
	Earners    []EarnerSummary
	Days       []DaySummary
}

// Aggregate folds events into the category, earner and day views in one pass.
// Earners are ordered by revenue descending; ties keep first-seen order.
// Days are ordered chronologically.
func Aggregate(events []RevenueEvent, opts AggregateOptions) Aggregation {
	var agg Aggregation
	for _, cat := range enum.RevenueCategories() {
		agg.Categories[cat] = CategorySummary{Category: cat, Revenue: decimal.Zero}
	}

	total := decimal.Zero
	unattributed := decimal.Zero
	earnerIndex := make(map[string]int)
	dayIndex := make(map[time.Time]int)

	for _, ev := range events {
		if !ev.Category.Valid() {
			continue
		}
		total = total.Add(ev.Amount)
		agg.Totals.TotalSales++

		cs := &agg.Categories[ev.Category]
		cs.Count++
		cs.Revenue = cs.Revenue.Add(ev.Amount)

		earner := ev.Earner
		if !earner.Resolved() {
			agg.Totals.UnattributedSales++
			unattributed = unattributed.Add(ev.Amount)
			if opts.Unresolved == UnresolvedBucket {
				earner = Earner{Kind: EarnerUnresolved, ID: UnresolvedEarnerID, Name: UnknownName, Email: UnknownEmail}
			}
		}
		if earner.ID != "" {
			i, ok := earnerIndex[earner.ID]
			if !ok {
				i = len(agg.Earners)
				earnerIndex[earner.ID] = i
				agg.Earners = append(agg.Earners, EarnerSummary{
					EarnerID:     earner.ID,
					Name:         earner.Name,
					Email:        earner.Email,
					Kind:         earner.Kind,
					TotalRevenue: decimal.Zero,
				})
			}
			es := &agg.Earners[i]
			es.Counts[ev.Category]++
			es.TotalCount++
			es.TotalRevenue = es.TotalRevenue.Add(ev.Amount)
		}

		day := ev.Day()
		j, ok := dayIndex[day]
		if !ok {
			j = len(agg.Days)
			dayIndex[day] = j
			agg.Days = append(agg.Days, DaySummary{Date: day, TotalRevenue: decimal.Zero})
		}
		ds := &agg.Days[j]
		ds.Counts[ev.Category]++
		ds.TotalCount++
		ds.TotalRevenue = ds.TotalRevenue.Add(ev.Amount)
	}

	if total.IsPositive() {
		hundred := decimal.NewFromInt(100)
		for i := range agg.Categories {
			agg.Categories[i].Percentage = agg.Categories[i].Revenue.Div(total).Mul(hundred).InexactFloat64()
		}
	}

	sort.SliceStable(agg.Earners, func(a, b int) bool {
		return agg.Earners[a].TotalRevenue.GreaterThan(agg.Earners[b].TotalRevenue)
	})
	sort.Slice(agg.Days, func(a, b int) bool {
		return agg.Days[a].Date.Before(agg.Days[b].Date)
	})

	agg.Totals.TotalRevenue = total
	agg.Totals.UnattributedRevenue = unattributed
	agg.Totals.EarnerCount = len(agg.Earners)
	agg.Totals.AverageSale = decimal.Zero
	if agg.Totals.TotalSales > 0 {
		agg.Totals.AverageSale = total.Div(decimal.NewFromInt(int64(agg.Totals.TotalSales))).Round(2)
	}
	return agg
}

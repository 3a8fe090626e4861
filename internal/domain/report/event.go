package report

import (
	"time"

	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

const (
	// UnknownName and UnknownEmail stand in for missing profile fields
	UnknownName  = "Unknown"
	UnknownEmail = "unknown"

	// MembershipEarnerID buckets all membership revenue under one earner
	MembershipEarnerID = "membership_subscriptions"

	// UnresolvedEarnerID is the bucket used when unresolved events are kept
	UnresolvedEarnerID = "unknown"
)

// EarnerKind distinguishes real parties from placeholder buckets
type EarnerKind int

const (
	// EarnerUnresolved means the record's relationship join was missing
	EarnerUnresolved EarnerKind = iota
	// EarnerParty is a real account credited with the revenue
	EarnerParty
	// EarnerAggregate is a synthetic bucket for revenue with no natural party
	EarnerAggregate
)

func (k EarnerKind) String() string {
	switch k {
	case EarnerParty:
		return "party"
	case EarnerAggregate:
		return "aggregate"
	default:
		return "unresolved"
	}
}

// Earner identifies who is credited with a revenue event
type Earner struct {
	Kind  EarnerKind
	ID    string
	Name  string
	Email string
}

// PartyEarner builds an earner for a real account, substituting the
// Unknown sentinels for blank fields.
func PartyEarner(id, name, email string) Earner {
	if name == "" {
		name = UnknownName
	}
	if email == "" {
		email = UnknownEmail
	}
	return Earner{Kind: EarnerParty, ID: id, Name: name, Email: email}
}

// AggregateEarner builds a synthetic bucket earner
func AggregateEarner(id, name string) Earner {
	return Earner{Kind: EarnerAggregate, ID: id, Name: name, Email: UnknownEmail}
}

// Resolved reports whether the event can be attributed to an earner bucket
func (e Earner) Resolved() bool {
	return e.Kind != EarnerUnresolved
}

// RevenueEvent is one normalized revenue-producing transaction
type RevenueEvent struct {
	Category   enum.RevenueCategory
	Amount     decimal.Decimal
	OccurredAt time.Time
	Earner     Earner
	SourceID   string
}

// Day returns the UTC calendar day of the event
func (e RevenueEvent) Day() time.Time {
	return StartOfDay(e.OccurredAt)
}

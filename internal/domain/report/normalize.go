package report

import (
	"github.com/google/uuid"
	"github.com/sangkips/beatlicense-api/internal/domain/entity"
	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// firstAmount returns the first present, non-zero value of the chain, or zero.
// Negative amounts resolve to zero.
func firstAmount(chain ...decimal.NullDecimal) decimal.Decimal {
	for _, v := range chain {
		if v.Valid && !v.Decimal.IsZero() {
			if v.Decimal.IsNegative() {
				return decimal.Zero
			}
			return v.Decimal
		}
	}
	return decimal.Zero
}

func profileEarner(p *entity.Profile) Earner {
	if p == nil {
		return Earner{Kind: EarnerUnresolved}
	}
	return PartyEarner(p.ID.String(), p.FullName(), p.Email)
}

// WhiteLabelClientEarner is the placeholder earner for a client's recurring payments
func WhiteLabelClientEarner(clientID uuid.UUID) Earner {
	id := clientID.String()
	return AggregateEarner(id, "White Label Client "+id[:8])
}

// MembershipEarner is the single placeholder earner for all membership revenue
func MembershipEarner() Earner {
	return AggregateEarner(MembershipEarnerID, "Membership Subscriptions")
}

// NormalizeTrackLicense credits the license amount to the track's producer
func NormalizeTrackLicense(l entity.TrackLicense) RevenueEvent {
	earner := Earner{Kind: EarnerUnresolved}
	if l.Track != nil {
		earner = profileEarner(l.Track.Producer)
	}
	return RevenueEvent{
		Category:   enum.RevenueCategoryTrackLicense,
		Amount:     firstAmount(l.Amount),
		OccurredAt: l.CreatedAt.UTC(),
		Earner:     earner,
		SourceID:   l.ID.String(),
	}
}

// NormalizeSyncProposal credits the agreed fee to the owner of the proposed track
func NormalizeSyncProposal(p entity.SyncProposal) RevenueEvent {
	earner := Earner{Kind: EarnerUnresolved}
	if p.Track != nil {
		earner = profileEarner(p.Track.Producer)
	}
	return RevenueEvent{
		Category:   enum.RevenueCategorySyncProposal,
		Amount:     firstAmount(p.FinalAmount, p.NegotiatedAmount, p.SyncFee),
		OccurredAt: p.CreatedAt.UTC(),
		Earner:     earner,
		SourceID:   p.ID.String(),
	}
}

// NormalizeCustomSync credits the agreed fee to the request's preferred producer
func NormalizeCustomSync(r entity.CustomSyncRequest) RevenueEvent {
	return RevenueEvent{
		Category:   enum.RevenueCategoryCustomSync,
		Amount:     firstAmount(r.FinalAmount, r.NegotiatedAmount, r.SyncFee),
		OccurredAt: r.CreatedAt.UTC(),
		Earner:     profileEarner(r.PreferredProducer),
		SourceID:   r.ID.String(),
	}
}

// NormalizeWhiteLabelSetup credits the setup fee to the client's account owner
func NormalizeWhiteLabelSetup(c entity.WhiteLabelClient) RevenueEvent {
	return RevenueEvent{
		Category:   enum.RevenueCategoryWhiteLabelSetup,
		Amount:     firstAmount(c.SetupFee),
		OccurredAt: c.CreatedAt.UTC(),
		Earner:     profileEarner(c.Owner),
		SourceID:   c.ID.String(),
	}
}

// NormalizeWhiteLabelPayment books a recurring payment against its client's bucket
func NormalizeWhiteLabelPayment(p entity.WhiteLabelPayment) RevenueEvent {
	return RevenueEvent{
		Category:   enum.RevenueCategoryWhiteLabelMonthly,
		Amount:     firstAmount(p.Amount),
		OccurredAt: p.PaymentDate.UTC(),
		Earner:     WhiteLabelClientEarner(p.ClientID),
		SourceID:   p.ID.String(),
	}
}

// NormalizeSubscription prices a subscription from the tier table
func NormalizeSubscription(s entity.UserSubscription) RevenueEvent {
	return RevenueEvent{
		Category:   enum.RevenueCategoryMembershipSubscription,
		Amount:     ResolveTier(s.PriceID).MonthlyAmount,
		OccurredAt: s.CreatedAt.UTC(),
		Earner:     MembershipEarner(),
		SourceID:   s.ID.String(),
	}
}

// SourceRecords holds the raw records fetched for one report, one slice per category
type SourceRecords struct {
	TrackLicenses      []entity.TrackLicense
	SyncProposals      []entity.SyncProposal
	CustomSyncRequests []entity.CustomSyncRequest
	WhiteLabelClients  []entity.WhiteLabelClient
	WhiteLabelPayments []entity.WhiteLabelPayment
	Subscriptions      []entity.UserSubscription
}

// Len returns the total number of raw records
func (s SourceRecords) Len() int {
	return len(s.TrackLicenses) + len(s.SyncProposals) + len(s.CustomSyncRequests) +
		len(s.WhiteLabelClients) + len(s.WhiteLabelPayments) + len(s.Subscriptions)
}

// Normalize converts every record into a RevenueEvent. Events are emitted
// category by category in report order, each category in fetch order.
func Normalize(src SourceRecords) []RevenueEvent {
	events := make([]RevenueEvent, 0, src.Len())
	for _, r := range src.TrackLicenses {
		events = append(events, NormalizeTrackLicense(r))
	}
	for _, r := range src.SyncProposals {
		events = append(events, NormalizeSyncProposal(r))
	}
	for _, r := range src.CustomSyncRequests {
		events = append(events, NormalizeCustomSync(r))
	}
	for _, r := range src.WhiteLabelClients {
		events = append(events, NormalizeWhiteLabelSetup(r))
	}
	for _, r := range src.WhiteLabelPayments {
		events = append(events, NormalizeWhiteLabelPayment(r))
	}
	for _, r := range src.Subscriptions {
		events = append(events, NormalizeSubscription(r))
	}
	return events
}

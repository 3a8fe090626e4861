package repository

import (
	"context"

	"github.com/sangkips/beatlicense-api/internal/domain/entity"
	"github.com/sangkips/beatlicense-api/internal/domain/report"
)

// SalesSourceRepository reads the raw records behind each revenue category.
// Every method returns only eligible records whose category timestamp falls
// inside the range, ordered by that timestamp and then by id.
type SalesSourceRepository interface {
	ListTrackLicenses(ctx context.Context, dr report.DateRange) ([]entity.TrackLicense, error)
	ListSyncProposals(ctx context.Context, dr report.DateRange) ([]entity.SyncProposal, error)
	ListCustomSyncRequests(ctx context.Context, dr report.DateRange) ([]entity.CustomSyncRequest, error)
	ListWhiteLabelSetupFees(ctx context.Context, dr report.DateRange) ([]entity.WhiteLabelClient, error)
	ListWhiteLabelPayments(ctx context.Context, dr report.DateRange) ([]entity.WhiteLabelPayment, error)
	// ListMembershipSubscriptions only returns subscriptions whose price id is in priceIDs
	ListMembershipSubscriptions(ctx context.Context, dr report.DateRange, priceIDs []string) ([]entity.UserSubscription, error)
}

package repository

import (
	"context"

	"github.com/sangkips/beatlicense-api/internal/domain/entity"
	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/sangkips/beatlicense-api/internal/domain/report"
	domainRepo "github.com/sangkips/beatlicense-api/internal/domain/repository"
	"gorm.io/gorm"
)

type salesSourceRepository struct {
	db *gorm.DB
}

// NewSalesSourceRepository creates a new sales source repository
func NewSalesSourceRepository(db *gorm.DB) domainRepo.SalesSourceRepository {
	return &salesSourceRepository{db: db}
}

// ListTrackLicenses returns licenses that have not been soft-deleted
func (r *salesSourceRepository) ListTrackLicenses(ctx context.Context, dr report.DateRange) ([]entity.TrackLicense, error) {
	var licenses []entity.TrackLicense
	err := r.db.WithContext(ctx).
		Scopes(Between("created_at", dr), Chronological("created_at")).
		Preload("Track.Producer").
		Find(&licenses).Error
	if err != nil {
		return nil, err
	}
	return licenses, nil
}

// ListSyncProposals returns accepted proposals that have been paid
func (r *salesSourceRepository) ListSyncProposals(ctx context.Context, dr report.DateRange) ([]entity.SyncProposal, error) {
	var proposals []entity.SyncProposal
	err := r.db.WithContext(ctx).
		Where("status = ? AND payment_status = ?", enum.ProposalStatusAccepted, enum.PaymentStatusPaid).
		Scopes(Between("created_at", dr), Chronological("created_at")).
		Preload("Track.Producer").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

// ListCustomSyncRequests returns paid custom sync deals
func (r *salesSourceRepository) ListCustomSyncRequests(ctx context.Context, dr report.DateRange) ([]entity.CustomSyncRequest, error) {
	var requests []entity.CustomSyncRequest
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", enum.PaymentStatusPaid).
		Scopes(Between("created_at", dr), Chronological("created_at")).
		Preload("PreferredProducer").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListWhiteLabelSetupFees returns clients whose setup fee has been paid
func (r *salesSourceRepository) ListWhiteLabelSetupFees(ctx context.Context, dr report.DateRange) ([]entity.WhiteLabelClient, error) {
	var clients []entity.WhiteLabelClient
	err := r.db.WithContext(ctx).
		Where("setup_fee_paid = ?", true).
		Scopes(Between("created_at", dr), Chronological("created_at")).
		Preload("Owner").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// ListWhiteLabelPayments returns paid recurring payments, ranged on payment_date
func (r *salesSourceRepository) ListWhiteLabelPayments(ctx context.Context, dr report.DateRange) ([]entity.WhiteLabelPayment, error) {
	var payments []entity.WhiteLabelPayment
	err := r.db.WithContext(ctx).
		Where("status = ?", enum.PaymentStatusPaid).
		Scopes(Between("payment_date", dr), Chronological("payment_date")).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// ListMembershipSubscriptions returns active subscriptions on an allowed price id
func (r *salesSourceRepository) ListMembershipSubscriptions(ctx context.Context, dr report.DateRange, priceIDs []string) ([]entity.UserSubscription, error) {
	if len(priceIDs) == 0 {
		return []entity.UserSubscription{}, nil
	}
	var subs []entity.UserSubscription
	err := r.db.WithContext(ctx).
		Where("status = ? AND price_id IN ?", enum.SubscriptionStatusActive, priceIDs).
		Scopes(Between("created_at", dr), Chronological("created_at")).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sangkips/beatlicense-api/internal/domain/entity"
	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/sangkips/beatlicense-api/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.Profile{},
		&entity.Track{},
		&entity.TrackLicense{},
		&entity.SyncProposal{},
		&entity.CustomSyncRequest{},
		&entity.WhiteLabelClient{},
		&entity.WhiteLabelPayment{},
		&entity.UserSubscription{},
		&entity.AppSetting{},
	))
	return db
}

func utc(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func januaryFirst(t *testing.T) report.DateRange {
	t.Helper()
	dr, err := report.ParseDateRange("2024-01-01", "2024-01-01")
	require.NoError(t, err)
	return dr
}

func seedProducer(t *testing.T, db *gorm.DB) (*entity.Profile, *entity.Track) {
	t.Helper()
	p := &entity.Profile{FirstName: "Nia", LastName: "Okafor", Email: "nia@example.com"}
	require.NoError(t, db.Create(p).Error)
	tr := &entity.Track{Title: "Harmattan", ProducerID: &p.ID}
	require.NoError(t, db.Create(tr).Error)
	return p, tr
}

func TestListTrackLicenses_DayBoundsAndSoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesSourceRepository(db)
	producer, track := seedProducer(t, db)

	inside := []*entity.TrackLicense{
		{TrackID: &track.ID, Amount: money("10"), CreatedAt: utc("2024-01-01 00:00:00")},
		{TrackID: &track.ID, Amount: money("20"), CreatedAt: utc("2024-01-01 23:59:59")},
		{TrackID: &track.ID, Amount: money("30"), CreatedAt: utc("2024-01-01 12:00:00")},
	}
	outside := []*entity.TrackLicense{
		{TrackID: &track.ID, Amount: money("99"), CreatedAt: utc("2023-12-31 23:59:59")},
		{TrackID: &track.ID, Amount: money("99"), CreatedAt: utc("2024-01-02 00:00:00")},
	}
	for _, l := range append(inside, outside...) {
		require.NoError(t, db.Create(l).Error)
	}
	deleted := &entity.TrackLicense{TrackID: &track.ID, Amount: money("500"), CreatedAt: utc("2024-01-01 08:00:00")}
	require.NoError(t, db.Create(deleted).Error)
	require.NoError(t, db.Delete(deleted).Error)

	got, err := repo.ListTrackLicenses(context.Background(), januaryFirst(t))
	require.NoError(t, err)
	require.Len(t, got, 3)

	// chronological
	assert.Equal(t, inside[0].ID, got[0].ID)
	assert.Equal(t, inside[2].ID, got[1].ID)
	assert.Equal(t, inside[1].ID, got[2].ID)

	require.NotNil(t, got[0].Track)
	require.NotNil(t, got[0].Track.Producer)
	assert.Equal(t, producer.ID, got[0].Track.Producer.ID)
	assert.True(t, decimal.NewFromInt(10).Equal(got[0].Amount.Decimal))
}

func TestListTrackLicenses_MissingProducerJoin(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesSourceRepository(db)

	orphan := &entity.Track{Title: "No Owner"}
	require.NoError(t, db.Create(orphan).Error)
	require.NoError(t, db.Create(&entity.TrackLicense{TrackID: &orphan.ID, CreatedAt: utc("2024-01-01 10:00:00")}).Error)

	got, err := repo.ListTrackLicenses(context.Background(), januaryFirst(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Track)
	assert.Nil(t, got[0].Track.Producer)
	assert.False(t, got[0].Amount.Valid)
}

func TestListSyncProposals_RequiresAcceptedAndPaid(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesSourceRepository(db)
	_, track := seedProducer(t, db)
	at := utc("2024-01-01 09:00:00")

	eligible := &entity.SyncProposal{TrackID: &track.ID, Status: enum.ProposalStatusAccepted, PaymentStatus: enum.PaymentStatusPaid, FinalAmount: money("750"), CreatedAt: at}
	rows := []*entity.SyncProposal{
		eligible,
		{TrackID: &track.ID, Status: enum.ProposalStatusAccepted, PaymentStatus: enum.PaymentStatusPending, CreatedAt: at},
		{TrackID: &track.ID, Status: enum.ProposalStatusRejected, PaymentStatus: enum.PaymentStatusPaid, CreatedAt: at},
	}
	for _, p := range rows {
		require.NoError(t, db.Create(p).Error)
	}

	got, err := repo.ListSyncProposals(context.Background(), januaryFirst(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, eligible.ID, got[0].ID)
	require.NotNil(t, got[0].Track)
	require.NotNil(t, got[0].Track.Producer)
	assert.Equal(t, "Nia Okafor", got[0].Track.Producer.FullName())
}

func TestListCustomSyncRequests_RequiresPaid(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesSourceRepository(db)
	producer, _ := seedProducer(t, db)
	at := utc("2024-01-01 15:00:00")

	paid := &entity.CustomSyncRequest{PreferredProducerID: &producer.ID, PaymentStatus: enum.PaymentStatusPaid, SyncFee: money("300"), CreatedAt: at}
	require.NoError(t, db.Create(paid).Error)
	require.NoError(t, db.Create(&entity.CustomSyncRequest{PaymentStatus: enum.PaymentStatusRefunded, CreatedAt: at}).Error)

	got, err := repo.ListCustomSyncRequests(context.Background(), januaryFirst(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, paid.ID, got[0].ID)
	require.NotNil(t, got[0].PreferredProducer)
	assert.Equal(t, producer.Email, got[0].PreferredProducer.Email)
}

func TestListWhiteLabel(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesSourceRepository(db)
	owner, _ := seedProducer(t, db)

	paidClient := &entity.WhiteLabelClient{OwnerID: &owner.ID, SetupFee: money("1500"), SetupFeePaid: true, CreatedAt: utc("2024-01-01 11:00:00")}
	unpaidClient := &entity.WhiteLabelClient{OwnerID: &owner.ID, SetupFee: money("1500"), CreatedAt: utc("2024-01-01 11:00:00")}
	require.NoError(t, db.Create(paidClient).Error)
	require.NoError(t, db.Create(unpaidClient).Error)

	// ranged on payment_date, not created_at
	inRange := &entity.WhiteLabelPayment{ClientID: paidClient.ID, Amount: money("99"), Status: enum.PaymentStatusPaid, PaymentDate: utc("2024-01-01 06:00:00"), CreatedAt: utc("2024-02-15 00:00:00")}
	require.NoError(t, db.Create(inRange).Error)
	require.NoError(t, db.Create(&entity.WhiteLabelPayment{ClientID: paidClient.ID, Status: enum.PaymentStatusPaid, PaymentDate: utc("2024-01-03 06:00:00"), CreatedAt: utc("2024-01-01 06:00:00")}).Error)
	require.NoError(t, db.Create(&entity.WhiteLabelPayment{ClientID: paidClient.ID, Status: enum.PaymentStatusFailed, PaymentDate: utc("2024-01-01 07:00:00")}).Error)

	ctx := context.Background()
	clients, err := repo.ListWhiteLabelSetupFees(ctx, januaryFirst(t))
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, paidClient.ID, clients[0].ID)
	require.NotNil(t, clients[0].Owner)
	assert.Equal(t, owner.ID, clients[0].Owner.ID)

	payments, err := repo.ListWhiteLabelPayments(ctx, januaryFirst(t))
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, inRange.ID, payments[0].ID)
}

func TestListMembershipSubscriptions_AllowList(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesSourceRepository(db)
	at := utc("2024-01-01 18:30:00")

	gold := &entity.UserSubscription{UserID: uuid.New(), PriceID: "gold_access", Status: enum.SubscriptionStatusActive, CreatedAt: at}
	require.NoError(t, db.Create(gold).Error)
	require.NoError(t, db.Create(&entity.UserSubscription{UserID: uuid.New(), PriceID: "gold_access", Status: enum.SubscriptionStatusCanceled, CreatedAt: at}).Error)
	require.NoError(t, db.Create(&entity.UserSubscription{UserID: uuid.New(), PriceID: "beta_tester", Status: enum.SubscriptionStatusActive, CreatedAt: at}).Error)

	ctx := context.Background()
	got, err := repo.ListMembershipSubscriptions(ctx, januaryFirst(t), report.TierPriceIDs())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, gold.ID, got[0].ID)

	none, err := repo.ListMembershipSubscriptions(ctx, januaryFirst(t), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSettingsRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	got, err := repo.Get(ctx, entity.SettingDefaultCoverImage)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Upsert(ctx, &entity.AppSetting{Key: entity.SettingDefaultCoverImage, Value: "covers/2024.png"}))
	require.NoError(t, repo.Upsert(ctx, &entity.AppSetting{Key: entity.SettingDefaultCoverImage, Value: "covers/2025.png", UpdatedBy: "ops@example.com"}))

	got, err = repo.Get(ctx, entity.SettingDefaultCoverImage)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "covers/2025.png", got.Value)
	assert.Equal(t, "ops@example.com", got.UpdatedBy)
}

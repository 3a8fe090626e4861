package service

import (
	"context"
	"sync"

	"github.com/sangkips/beatlicense-api/internal/domain/entity"
	"github.com/sangkips/beatlicense-api/internal/domain/report"
	"github.com/sangkips/beatlicense-api/pkg/coverstore"
)

type fakeSources struct {
	licenses     []entity.TrackLicense
	proposals    []entity.SyncProposal
	customSync   []entity.CustomSyncRequest
	clients      []entity.WhiteLabelClient
	payments     []entity.WhiteLabelPayment
	subs         []entity.UserSubscription
	proposalsErr error
	blockCustom  bool

	mu       sync.Mutex
	priceIDs []string
}

func (f *fakeSources) ListTrackLicenses(ctx context.Context, dr report.DateRange) ([]entity.TrackLicense, error) {
	return f.licenses, nil
}

func (f *fakeSources) ListSyncProposals(ctx context.Context, dr report.DateRange) ([]entity.SyncProposal, error) {
	if f.proposalsErr != nil {
		return nil, f.proposalsErr
	}
	return f.proposals, nil
}

func (f *fakeSources) ListCustomSyncRequests(ctx context.Context, dr report.DateRange) ([]entity.CustomSyncRequest, error) {
	if f.blockCustom {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.customSync, nil
}

func (f *fakeSources) ListWhiteLabelSetupFees(ctx context.Context, dr report.DateRange) ([]entity.WhiteLabelClient, error) {
	return f.clients, nil
}

func (f *fakeSources) ListWhiteLabelPayments(ctx context.Context, dr report.DateRange) ([]entity.WhiteLabelPayment, error) {
	return f.payments, nil
}

func (f *fakeSources) ListMembershipSubscriptions(ctx context.Context, dr report.DateRange, priceIDs []string) ([]entity.UserSubscription, error) {
	f.mu.Lock()
	f.priceIDs = priceIDs
	f.mu.Unlock()
	return f.subs, nil
}

type memorySettings struct {
	values map[string]*entity.AppSetting
	err    error
}

func newMemorySettings() *memorySettings {
	return &memorySettings{values: map[string]*entity.AppSetting{}}
}

func (m *memorySettings) Get(ctx context.Context, key string) (*entity.AppSetting, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *memorySettings) Upsert(ctx context.Context, setting *entity.AppSetting) error {
	if m.err != nil {
		return m.err
	}
	cp := *setting
	m.values[setting.Key] = &cp
	return nil
}

type fakeCovers struct {
	images map[string]*coverstore.Image
	opened []string
}

func (f *fakeCovers) Open(ctx context.Context, id string) (*coverstore.Image, error) {
	f.opened = append(f.opened, id)
	img, ok := f.images[id]
	if !ok {
		return nil, coverstore.ErrNotFound
	}
	return img, nil
}

func (f *fakeCovers) Name() string {
	return "fake"
}

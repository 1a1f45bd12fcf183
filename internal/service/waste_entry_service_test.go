package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/apperr"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/messaging"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/repository"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntryStore struct {
	entries map[uuid.UUID]*model.WasteEntry
	totals  []model.LeaderboardEntry
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{entries: make(map[uuid.UUID]*model.WasteEntry)}
}

func (f *fakeEntryStore) Create(e *model.WasteEntry) error {
	cp := *e
	f.entries[e.ID] = &cp
	return nil
}

func (f *fakeEntryStore) FindByID(id uuid.UUID) (*model.WasteEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntryStore) FindAll() ([]model.WasteEntry, error) {
	var out []model.WasteEntry
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEntryStore) FindByEmployeeID(employeeID string) ([]model.WasteEntry, error) {
	var out []model.WasteEntry
	for _, e := range f.entries {
		if e.EmployeeID == employeeID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) UpdateStatus(id uuid.UUID, status model.EntryStatus, updatedAt time.Time) error {
	e, ok := f.entries[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.Status = status
	e.UpdatedAt = updatedAt
	return nil
}

func (f *fakeEntryStore) Summary(_ time.Time) (*model.SummaryData, error) {
	return &model.SummaryData{}, nil
}

func (f *fakeEntryStore) LeaderboardTotals() ([]model.LeaderboardEntry, error) {
	return f.totals, nil
}

func newEntryFixture() (*service.WasteEntryService, *fakeEntryStore, *fakeOutbox) {
	store := newFakeEntryStore()
	outbox := &fakeOutbox{}
	svc := service.NewWasteEntryService(store, newFakeObjectStore(), outbox).
		WithClock(func() time.Time { return time.Unix(1_700_000_000, 0).UTC() })
	return svc, store, outbox
}

func validEntryRequest() *model.CreateEntryRequest {
	location := "Zone A depot"
	return &model.CreateEntryRequest{
		WasteType: model.WastePlastic,
		AmountKg:  12.5,
		DateTime:  time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		Location:  &location,
	}
}

func TestCreateEntry_Success(t *testing.T) {
	svc, store, _ := newEntryFixture()

	entry, err := svc.CreateEntry("emp-1", "Asha", validEntryRequest())

	require.NoError(t, err)
	assert.Equal(t, model.EntryPending, entry.Status)
	assert.Equal(t, "emp-1", entry.EmployeeID)
	assert.Equal(t, "Asha", entry.EmployeeName)
	assert.Len(t, store.entries, 1)
}

func TestCreateEntry_Validation(t *testing.T) {
	svc, store, _ := newEntryFixture()

	bad := validEntryRequest()
	bad.WasteType = "uranium"
	_, err := svc.CreateEntry("emp-1", "Asha", bad)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	bad = validEntryRequest()
	bad.AmountKg = 0
	_, err = svc.CreateEntry("emp-1", "Asha", bad)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	bad = validEntryRequest()
	bad.AmountKg = 1000.5
	_, err = svc.CreateEntry("emp-1", "Asha", bad)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	bad = validEntryRequest()
	bad.DateTime = time.Time{}
	_, err = svc.CreateEntry("emp-1", "Asha", bad)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	assert.Empty(t, store.entries)
}

func TestReview_ApprovesPendingEntry(t *testing.T) {
	svc, store, outbox := newEntryFixture()

	entry, err := svc.CreateEntry("emp-1", "Asha", validEntryRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Review(entry.ID, model.EntryApproved))

	assert.Equal(t, model.EntryApproved, store.entries[entry.ID].Status)
	require.Len(t, outbox.messages, 1)
	assert.Equal(t, messaging.RoutingKeyEntryReviewed, outbox.messages[0].routingKey)
	msg, ok := outbox.messages[0].payload.(messaging.EntryReviewedMessage)
	require.True(t, ok)
	assert.Equal(t, "emp-1", msg.EmployeeID)
	assert.Equal(t, string(model.EntryApproved), msg.NewStatus)
}

func TestReview_RejectsNonReviewStatus(t *testing.T) {
	svc, _, _ := newEntryFixture()

	entry, err := svc.CreateEntry("emp-1", "Asha", validEntryRequest())
	require.NoError(t, err)

	err = svc.Review(entry.ID, model.EntryPending)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestReview_AlreadyReviewed(t *testing.T) {
	svc, _, outbox := newEntryFixture()

	entry, err := svc.CreateEntry("emp-1", "Asha", validEntryRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Review(entry.ID, model.EntryRejected))

	err = svc.Review(entry.ID, model.EntryApproved)

	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Equal(t, "Entry has already been reviewed", err.Error())
	assert.Len(t, outbox.messages, 1, "second review must not enqueue")
}

func TestReview_UnknownEntry(t *testing.T) {
	svc, _, _ := newEntryFixture()

	err := svc.Review(uuid.New(), model.EntryApproved)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEntryImageUpload_KeyAndTypeChecks(t *testing.T) {
	svc, _, _ := newEntryFixture()

	resp, err := svc.RequestImageUpload(context.Background(), "emp-1", "pile.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "wasteImages/emp-1/pile.png", resp.FilePath)

	_, err = svc.RequestImageUpload(context.Background(), "emp-1", "pile.svg", "image/svg+xml")
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestLeaderboard_AssignsRanks(t *testing.T) {
	svc, store, _ := newEntryFixture()
	store.totals = []model.LeaderboardEntry{
		{EmployeeID: "emp-2", EmployeeName: "Ravi", TotalKg: 80},
		{EmployeeID: "emp-1", EmployeeName: "Asha", TotalKg: 45.5},
	}

	resp, err := svc.Leaderboard()

	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 2)
	assert.Equal(t, 1, resp.Leaderboard[0].Rank)
	assert.Equal(t, 2, resp.Leaderboard[1].Rank)
}

func TestLeaderboard_EmptyNotNil(t *testing.T) {
	svc, _, _ := newEntryFixture()

	resp, err := svc.Leaderboard()

	require.NoError(t, err)
	assert.NotNil(t, resp.Leaderboard)
	assert.Empty(t, resp.Leaderboard)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/apperr"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/messaging"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/repository"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/storage"

	"github.com/google/uuid"
)

const maxEntryAmountKg = 1000.0

// EntryStore is satisfied by repository.WasteEntryRepository.
type EntryStore interface {
	Create(e *model.WasteEntry) error
	FindByID(id uuid.UUID) (*model.WasteEntry, error)
	FindAll() ([]model.WasteEntry, error)
	FindByEmployeeID(employeeID string) ([]model.WasteEntry, error)
	UpdateStatus(id uuid.UUID, status model.EntryStatus, updatedAt time.Time) error
	Summary(now time.Time) (*model.SummaryData, error)
	LeaderboardTotals() ([]model.LeaderboardEntry, error)
}

type WasteEntryService struct {
	entryRepo EntryStore
	objects   storage.ObjectStore
	outbox    OutboxWriter
	now       func() time.Time
}

func NewWasteEntryService(entryRepo EntryStore, objects storage.ObjectStore, outbox OutboxWriter) *WasteEntryService {
	return &WasteEntryService{
		entryRepo: entryRepo,
		objects:   objects,
		outbox:    outbox,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (s *WasteEntryService) WithClock(now func() time.Time) *WasteEntryService {
	s.now = now
	return s
}

// CreateEntry persists a pending collection record for review.
func (s *WasteEntryService) CreateEntry(employeeID, employeeName string, req *model.CreateEntryRequest) (*model.WasteEntry, error) {
	if !model.AllowedWasteTypes[req.WasteType] {
		return nil, apperr.InvalidArgument("Invalid waste type")
	}
	if req.AmountKg <= 0 || req.AmountKg > maxEntryAmountKg {
		return nil, apperr.InvalidArgument("Amount must be between 0 and 1000 kg")
	}
	if req.DateTime.IsZero() {
		return nil, apperr.InvalidArgument("Collection date/time is required")
	}

	now := s.now()
	entry := &model.WasteEntry{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		WasteType:    req.WasteType,
		AmountKg:     req.AmountKg,
		DateTime:     req.DateTime,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
		Status:       model.EntryPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.entryRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("persist entry: %w", err)
	}

	return entry, nil
}

func (s *WasteEntryService) GetEntries() (*model.EntryListResponse, error) {
	entries, err := s.entryRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.WasteEntry{}
	}
	return &model.EntryListResponse{Entries: entries, Total: len(entries)}, nil
}

func (s *WasteEntryService) GetEmployeeEntries(employeeID string) (*model.EntryListResponse, error) {
	entries, err := s.entryRepo.FindByEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.WasteEntry{}
	}
	return &model.EntryListResponse{Entries: entries, Total: len(entries)}, nil
}

// Review approves or rejects a pending entry and notifies the
// submitting employee. Reviewed entries cannot be re-reviewed.
func (s *WasteEntryService) Review(id uuid.UUID, status model.EntryStatus) error {
	if status != model.EntryApproved && status != model.EntryRejected {
		return apperr.InvalidArgument("Status must be approved or rejected")
	}

	entry, err := s.entryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Entry not found")
		}
		return err
	}

	if entry.Status != model.EntryPending {
		return apperr.InvalidArgument("Entry has already been reviewed")
	}

	if err := s.entryRepo.UpdateStatus(id, status, s.now()); err != nil {
		return err
	}

	err = s.outbox.Create(messaging.RoutingKeyEntryReviewed, messaging.EntryReviewedMessage{
		EntryID:    id.String(),
		EmployeeID: entry.EmployeeID,
		WasteType:  string(entry.WasteType),
		AmountKg:   entry.AmountKg,
		NewStatus:  string(status),
		Timestamp:  s.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("enqueue review event: %w", err)
	}

	return nil
}

// RequestImageUpload presigns a direct upload for an entry photo. The
// client uploads first, then includes the returned public URL in the
// create request.
func (s *WasteEntryService) RequestImageUpload(ctx context.Context, employeeID, fileName, contentType string) (*model.RequestImageUploadResponse, error) {
	if !allowedImageTypes[contentType] {
		return nil, apperr.InvalidArgument("Only JPEG, PNG, WebP, and GIF images are allowed")
	}

	safeName := storage.SanitizeFileName(fileName, s.now())
	key := storage.WasteImageKey(employeeID, safeName)

	uploadURL, err := s.objects.PresignPut(ctx, key, contentType, uploadGrantTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &model.RequestImageUploadResponse{
		UploadURL: uploadURL,
		FilePath:  key,
		MaxBytes:  maxImageBytes,
	}, nil
}

func (s *WasteEntryService) Summary() (*model.SummaryData, error) {
	return s.entryRepo.Summary(s.now())
}

// Leaderboard ranks employees by approved collection weight, heaviest
// first.
func (s *WasteEntryService) Leaderboard() (*model.LeaderboardResponse, error) {
	totals, err := s.entryRepo.LeaderboardTotals()
	if err != nil {
		return nil, err
	}

	for i := range totals {
		totals[i].Rank = i + 1
	}
	if totals == nil {
		totals = []model.LeaderboardEntry{}
	}

	return &model.LeaderboardResponse{Leaderboard: totals}, nil
}

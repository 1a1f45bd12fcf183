// Package service implements the business logic behind the HTTP
// handlers: the complaint intake pipeline, image attachments, waste
// entry review and the dashboard aggregates.
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
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/validation"

	"github.com/google/uuid"
)

const (
	uploadGrantTTL = 15 * time.Minute
	maxImageBytes  = 5 * 1024 * 1024
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ComplaintStore is the persistence surface the complaint pipeline
// needs; satisfied by repository.ComplaintRepository.
type ComplaintStore interface {
	Create(c *model.Complaint) error
	FindByID(id uuid.UUID) (*model.Complaint, error)
	FindAll() ([]model.Complaint, error)
	UpdateImageURL(id uuid.UUID, imageURL string) error
	UpdateStatus(id uuid.UUID, status model.ComplaintStatus, resolvedAt *time.Time) error
	AssignEmployee(id uuid.UUID, employeeID string) error
}

// SubmissionLimiter decides admit/reject per client address.
type SubmissionLimiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}

// OutboxWriter enqueues a notification event for async publishing.
type OutboxWriter interface {
	Create(routingKey string, payload interface{}) error
}

type ComplaintService struct {
	complaintRepo ComplaintStore
	limiter       SubmissionLimiter
	objects       storage.ObjectStore
	outbox        OutboxWriter
	now           func() time.Time
}

func NewComplaintService(complaintRepo ComplaintStore, limiter SubmissionLimiter, objects storage.ObjectStore, outbox OutboxWriter) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		limiter:       limiter,
		objects:       objects,
		outbox:        outbox,
		now:           time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (s *ComplaintService) WithClock(now func() time.Time) *ComplaintService {
	s.now = now
	return s
}

// Submit runs the intake pipeline: rate limit, validate, sanitize,
// persist. Each stage's rejection prevents all later side effects; this
// is the only path that creates a Complaint.
func (s *ComplaintService) Submit(ctx context.Context, clientID string, raw map[string]interface{}) (*model.Complaint, error) {
	allowed, err := s.limiter.Allow(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if !allowed {
		return nil, apperr.ResourceExhausted("Too many submissions. Please try again later.")
	}

	submission, fieldErrors := validation.ValidateComplaint(raw)
	if fieldErrors != nil {
		return nil, apperr.ValidationFailed(fieldErrors)
	}

	now := s.now()
	complaint := &model.Complaint{
		ID:            uuid.New(),
		FullName:      submission.FullName,
		Phone:         submission.Phone,
		Address:       submission.Address,
		Zone:          submission.Zone,
		WardNumber:    submission.WardNumber,
		ComplaintType: model.ComplaintType(submission.ComplaintType),
		Description:   submission.Description,
		Status:        model.ComplaintOpen,
		IssueDate:     now,
		CreatedAt:     now,
	}

	if err := s.complaintRepo.Create(complaint); err != nil {
		return nil, fmt.Errorf("persist complaint: %w", err)
	}

	return complaint, nil
}

// RequestImageUpload issues a time-boxed, content-type-bound write
// authorization for a complaint image.
func (s *ComplaintService) RequestImageUpload(ctx context.Context, complaintID, fileName, contentType string) (*model.RequestImageUploadResponse, error) {
	if complaintID == "" {
		return nil, apperr.InvalidArgument("Invalid complaint ID")
	}
	id, err := uuid.Parse(complaintID)
	if err != nil {
		return nil, apperr.InvalidArgument("Invalid complaint ID")
	}

	if _, err := s.complaintRepo.FindByID(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Complaint not found")
		}
		return nil, fmt.Errorf("look up complaint: %w", err)
	}

	if !allowedImageTypes[contentType] {
		return nil, apperr.InvalidArgument("Only JPEG, PNG, WebP, and GIF images are allowed")
	}

	safeName := storage.SanitizeFileName(fileName, s.now())
	key := storage.ComplaintImageKey(complaintID, safeName)

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

// FinalizeImageUpload verifies the direct-to-storage upload happened —
// the file path is untrusted input — then makes the object public and
// links its address to the complaint.
func (s *ComplaintService) FinalizeImageUpload(ctx context.Context, complaintID, filePath string) (string, error) {
	if complaintID == "" || filePath == "" {
		return "", apperr.InvalidArgument("Missing complaintId or filePath")
	}
	id, err := uuid.Parse(complaintID)
	if err != nil {
		return "", apperr.InvalidArgument("Invalid complaint ID")
	}

	exists, size, err := s.objects.Head(ctx, filePath)
	if err != nil {
		return "", fmt.Errorf("check upload: %w", err)
	}
	if !exists {
		return "", apperr.NotFound("Uploaded file not found")
	}
	if size > maxImageBytes {
		return "", apperr.InvalidArgument("Uploaded file exceeds the 5 MiB limit")
	}

	if err := s.objects.MakePublic(ctx, filePath); err != nil {
		return "", fmt.Errorf("make upload public: %w", err)
	}
	imageURL := s.objects.PublicURL(filePath)

	if err := s.complaintRepo.UpdateImageURL(id, imageURL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.NotFound("Complaint not found")
		}
		return "", fmt.Errorf("link image: %w", err)
	}

	return imageURL, nil
}

func (s *ComplaintService) GetComplaints() (*model.ComplaintListResponse, error) {
	complaints, err := s.complaintRepo.FindAll()
	if err != nil {
		return nil, err
	}

	if complaints == nil {
		complaints = []model.Complaint{}
	}

	return &model.ComplaintListResponse{
		Complaints: complaints,
		Total:      len(complaints),
	}, nil
}

func (s *ComplaintService) GetComplaintByID(id uuid.UUID) (*model.Complaint, error) {
	complaint, err := s.complaintRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Complaint not found")
		}
		return nil, err
	}
	return complaint, nil
}

// UpdateStatus moves a complaint through open/investigating/resolved.
// Resolving stamps resolvedAt; leaving resolved clears it. A status
// change notifies the assigned employee, if any.
func (s *ComplaintService) UpdateStatus(id uuid.UUID, status model.ComplaintStatus) error {
	complaint, err := s.complaintRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Complaint not found")
		}
		return err
	}

	var resolvedAt *time.Time
	if status == model.ComplaintResolved {
		now := s.now()
		resolvedAt = &now
	}

	if err := s.complaintRepo.UpdateStatus(id, status, resolvedAt); err != nil {
		return err
	}

	var assigned string
	if complaint.AssignedEmployeeID != nil {
		assigned = *complaint.AssignedEmployeeID
	}
	err = s.outbox.Create(messaging.RoutingKeyComplaintStatus, messaging.ComplaintStatusMessage{
		ComplaintID:        id.String(),
		NewStatus:          string(status),
		AssignedEmployeeID: assigned,
		Zone:               complaint.Zone,
		Timestamp:          s.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("enqueue status event: %w", err)
	}

	return nil
}

// Assign hands a complaint to an employee and notifies them.
func (s *ComplaintService) Assign(id uuid.UUID, employeeID string) error {
	complaint, err := s.complaintRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Complaint not found")
		}
		return err
	}

	if err := s.complaintRepo.AssignEmployee(id, employeeID); err != nil {
		return err
	}

	err = s.outbox.Create(messaging.RoutingKeyComplaintAssign, messaging.ComplaintAssignedMessage{
		ComplaintID: id.String(),
		EmployeeID:  employeeID,
		Zone:        complaint.Zone,
		WardNumber:  complaint.WardNumber,
		Timestamp:   s.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("enqueue assign event: %w", err)
	}

	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type ComplaintStatus string

const (
	ComplaintOpen          ComplaintStatus = "open"
	ComplaintInvestigating ComplaintStatus = "investigating"
	ComplaintResolved      ComplaintStatus = "resolved"
)

type ComplaintType string

const (
	ComplaintWasteNotCollected ComplaintType = "waste_not_collected"
	ComplaintLateCollection    ComplaintType = "late_collection"
	ComplaintMixedWasteIssue   ComplaintType = "mixed_waste_issue"
	ComplaintStaffBehavior     ComplaintType = "staff_behavior"
	ComplaintWrongLocation     ComplaintType = "wrong_location"
	ComplaintOther             ComplaintType = "other"
)

// AllowedComplaintTypes is the closed set accepted from citizens.
var AllowedComplaintTypes = map[ComplaintType]bool{
	ComplaintWasteNotCollected: true,
	ComplaintLateCollection:    true,
	ComplaintMixedWasteIssue:   true,
	ComplaintStaffBehavior:     true,
	ComplaintWrongLocation:     true,
	ComplaintOther:             true,
}

// ComplaintSubmission holds the sanitized citizen input. Consumed once
// by the submission pipeline; never persisted on its own.
type ComplaintSubmission struct {
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Zone          string `json:"zone"`
	WardNumber    string `json:"wardNumber"`
	ComplaintType string `json:"complaintType"`
	Description   string `json:"description"`
}

// Complaint is the persisted record. After creation only Status,
// AssignedEmployeeID, ResolvedAt and ImageURL ever change.
type Complaint struct {
	ID                 uuid.UUID       `json:"id"`
	FullName           string          `json:"fullName"`
	Phone              string          `json:"phone"`
	Address            string          `json:"address"`
	Zone               string          `json:"zone"`
	WardNumber         string          `json:"wardNumber"`
	ComplaintType      ComplaintType   `json:"complaintType"`
	Description        string          `json:"description"`
	ImageURL           *string         `json:"imageUrl"`
	Status             ComplaintStatus `json:"status"`
	AssignedEmployeeID *string         `json:"assignedEmployeeId"`
	IssueDate          time.Time       `json:"issueDate"`
	CreatedAt          time.Time       `json:"createdAt"`
	ResolvedAt         *time.Time      `json:"resolvedAt"`
}

// Request/Response DTOs
type SubmitComplaintResponse struct {
	Success     bool   `json:"success"`
	ComplaintID string `json:"complaintId"`
}

type RequestImageUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type RequestImageUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FilePath  string `json:"filePath"`
	MaxBytes  int64  `json:"maxBytes"`
}

type FinalizeImageUploadRequest struct {
	FilePath string `json:"filePath"`
}

type FinalizeImageUploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}

type UpdateComplaintStatusRequest struct {
	Status ComplaintStatus `json:"status" binding:"required"`
}

type AssignComplaintRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
}

type ComplaintListResponse struct {
	Complaints []Complaint `json:"complaints"`
	Total      int         `json:"total"`
}

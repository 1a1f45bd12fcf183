package handler

import (
	"net/http"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/ratelimit"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComplaintHandler struct {
	complaintService *service.ComplaintService
}

func NewComplaintHandler(complaintService *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// Handles POST /complaints - public citizen intake. Rate limit, then
// validation, then persistence; nothing is written on rejection.
func (h *ComplaintHandler) SubmitComplaint(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	clientID := c.ClientIP()
	if clientID == "" {
		clientID = ratelimit.UnknownClient
	}

	complaint, err := h.complaintService.Submit(c.Request.Context(), clientID, raw)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.SubmitComplaintResponse{
		Success:     true,
		ComplaintID: complaint.ID.String(),
	})
}

// Handles POST /complaints/:id/image - issues a presigned upload grant
// for a complaint photo.
func (h *ComplaintHandler) RequestImageUpload(c *gin.Context) {
	var req model.RequestImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.complaintService.RequestImageUpload(c.Request.Context(), c.Param("id"), req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Handles POST /complaints/:id/image/finalize - verifies the direct
// upload landed and links its public address to the complaint.
func (h *ComplaintHandler) FinalizeImageUpload(c *gin.Context) {
	var req model.FinalizeImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	imageURL, err := h.complaintService.FinalizeImageUpload(c.Request.Context(), c.Param("id"), req.FilePath)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.FinalizeImageUploadResponse{
		Success:  true,
		ImageURL: imageURL,
	})
}

// Handles GET /complaints - admin triage list, newest first.
func (h *ComplaintHandler) GetComplaints(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	response, err := h.complaintService.GetComplaints()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Handles GET /complaints/:id - single complaint for admin review.
func (h *ComplaintHandler) GetComplaintByID(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	complaint, err := h.complaintService.GetComplaintByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// Handles PATCH /complaints/:id/status - admin triage transitions.
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var req model.UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validStatuses := map[model.ComplaintStatus]bool{
		model.ComplaintOpen:          true,
		model.ComplaintInvestigating: true,
		model.ComplaintResolved:      true,
	}
	if !validStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if err := h.complaintService.UpdateStatus(id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// Handles PATCH /complaints/:id/assign - hands a complaint to an
// employee.
func (h *ComplaintHandler) Assign(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var req model.AssignComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.complaintService.Assign(id, req.EmployeeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Complaint assigned successfully"})
}

// Health check endpoint for service status monitoring.
func (h *ComplaintHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// requireAdmin enforces the gateway-set role header.
func requireAdmin(c *gin.Context) bool {
	if c.GetHeader("X-User-Role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return false
	}
	return true
}

package handler

import (
	"net/http"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WasteEntryHandler struct {
	entryService *service.WasteEntryService
}

func NewWasteEntryHandler(entryService *service.WasteEntryService) *WasteEntryHandler {
	return &WasteEntryHandler{entryService: entryService}
}

// Handles POST /entries - employee submits a collection record for
// review.
func (h *WasteEntryHandler) CreateEntry(c *gin.Context) {
	employeeID := c.GetHeader("X-User-ID")
	employeeName := c.GetHeader("X-User-Name")

	if employeeID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req model.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.entryService.CreateEntry(employeeID, employeeName, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Entry submitted for review",
		"entry":   entry,
	})
}

// Handles GET /entries - all entries, for the admin review tab.
func (h *WasteEntryHandler) GetEntries(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	response, err := h.entryService.GetEntries()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Handles GET /entries/my - authenticated employee's own entries.
func (h *WasteEntryHandler) GetMyEntries(c *gin.Context) {
	employeeID := c.GetHeader("X-User-ID")
	if employeeID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	response, err := h.entryService.GetEmployeeEntries(employeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Handles PATCH /entries/:id/status - admin approves or rejects a
// pending entry.
func (h *WasteEntryHandler) UpdateStatus(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var req model.UpdateEntryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.entryService.Review(id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// Handles POST /entries/image-upload - presigns a direct upload for an
// entry photo; the client includes the public URL in the create
// request.
func (h *WasteEntryHandler) RequestImageUpload(c *gin.Context) {
	employeeID := c.GetHeader("X-User-ID")
	if employeeID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req model.RequestImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.entryService.RequestImageUpload(c.Request.Context(), employeeID, req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Handles GET /dashboard/summary - approved weight over the dashboard
// windows.
func (h *WasteEntryHandler) GetSummary(c *gin.Context) {
	summary, err := h.entryService.Summary()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Handles GET /dashboard/leaderboard - employees ranked by approved
// collection weight.
func (h *WasteEntryHandler) GetLeaderboard(c *gin.Context) {
	response, err := h.entryService.Leaderboard()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

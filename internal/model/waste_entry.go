package model

import (
	"time"

	"github.com/google/uuid"
)

type WasteType string

const (
	WastePlastic    WasteType = "plastic"
	WastePaper      WasteType = "paper"
	WasteOrganic    WasteType = "organic"
	WasteMetal      WasteType = "metal"
	WasteGlass      WasteType = "glass"
	WasteElectronic WasteType = "electronic"
)

var AllowedWasteTypes = map[WasteType]bool{
	WastePlastic:    true,
	WastePaper:      true,
	WasteOrganic:    true,
	WasteMetal:      true,
	WasteGlass:      true,
	WasteElectronic: true,
}

type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryApproved EntryStatus = "approved"
	EntryRejected EntryStatus = "rejected"
)

// WasteEntry is a collection record submitted by an employee and
// reviewed by an admin.
type WasteEntry struct {
	ID           uuid.UUID   `json:"id"`
	EmployeeID   string      `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	WasteType    WasteType   `json:"wasteType"`
	AmountKg     float64     `json:"amountKg"`
	DateTime     time.Time   `json:"dateTime"`
	Location     *string     `json:"location,omitempty"`
	ImageURL     *string     `json:"imageUrl,omitempty"`
	Status       EntryStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

type CreateEntryRequest struct {
	WasteType WasteType `json:"wasteType" binding:"required"`
	AmountKg  float64   `json:"amountKg" binding:"required"`
	DateTime  time.Time `json:"dateTime" binding:"required"`
	Location  *string   `json:"location"`
	ImageURL  *string   `json:"imageUrl"`
}

type UpdateEntryStatusRequest struct {
	Status EntryStatus `json:"status" binding:"required"`
}

type EntryListResponse struct {
	Entries []WasteEntry `json:"entries"`
	Total   int          `json:"total"`
}

// SummaryData aggregates approved collection weight over trailing
// windows, mirroring the admin dashboard cards.
type SummaryData struct {
	TodayKg     float64 `json:"todayKg"`
	ThisWeekKg  float64 `json:"thisWeekKg"`
	ThisMonthKg float64 `json:"thisMonthKg"`
	ThisYearKg  float64 `json:"thisYearKg"`
}

type LeaderboardEntry struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	TotalKg      float64 `json:"totalKg"`
	Rank         int     `json:"rank"`
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

package repository

import (
	"database/sql"
	"time"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"

	"github.com/google/uuid"
)

type WasteEntryRepository struct {
	db *sql.DB
}

func NewWasteEntryRepository(db *sql.DB) *WasteEntryRepository {
	return &WasteEntryRepository{db: db}
}

func (r *WasteEntryRepository) Create(e *model.WasteEntry) error {
	query := `
		INSERT INTO waste_entries (id, employee_id, employee_name, waste_type,
			amount_kg, date_time, location, image_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(query,
		e.ID,
		e.EmployeeID,
		e.EmployeeName,
		e.WasteType,
		e.AmountKg,
		e.DateTime,
		e.Location,
		e.ImageURL,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *WasteEntryRepository) FindByID(id uuid.UUID) (*model.WasteEntry, error) {
	query := `
		SELECT id, employee_id, employee_name, waste_type, amount_kg, date_time,
			location, image_url, status, created_at, updated_at
		FROM waste_entries
		WHERE id = $1
	`
	row := r.db.QueryRow(query, id)
	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *WasteEntryRepository) FindAll() ([]model.WasteEntry, error) {
	query := `
		SELECT id, employee_id, employee_name, waste_type, amount_kg, date_time,
			location, image_url, status, created_at, updated_at
		FROM waste_entries
		ORDER BY date_time DESC
	`
	return r.queryEntries(query)
}

func (r *WasteEntryRepository) FindByEmployeeID(employeeID string) ([]model.WasteEntry, error) {
	query := `
		SELECT id, employee_id, employee_name, waste_type, amount_kg, date_time,
			location, image_url, status, created_at, updated_at
		FROM waste_entries
		WHERE employee_id = $1
		ORDER BY date_time DESC
	`
	return r.queryEntries(query, employeeID)
}

func (r *WasteEntryRepository) UpdateStatus(id uuid.UUID, status model.EntryStatus, updatedAt time.Time) error {
	result, err := r.db.Exec(
		`UPDATE waste_entries SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// summaryWindows returns the lower bounds of the dashboard windows:
// start of today, trailing 7 and 30 days from it, and start of the year.
func summaryWindows(now time.Time) (today, weekAgo, monthAgo, yearStart time.Time) {
	today = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo = today.Add(-7 * 24 * time.Hour)
	monthAgo = today.Add(-30 * 24 * time.Hour)
	yearStart = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	return
}

// Summary sums approved weight over the dashboard windows in one pass.
func (r *WasteEntryRepository) Summary(now time.Time) (*model.SummaryData, error) {
	today, weekAgo, monthAgo, yearStart := summaryWindows(now)

	query := `
		SELECT
			COALESCE(SUM(amount_kg) FILTER (WHERE date_time >= $1), 0),
			COALESCE(SUM(amount_kg) FILTER (WHERE date_time >= $2), 0),
			COALESCE(SUM(amount_kg) FILTER (WHERE date_time >= $3), 0),
			COALESCE(SUM(amount_kg) FILTER (WHERE date_time >= $4), 0)
		FROM waste_entries
		WHERE status = 'approved'
	`
	s := &model.SummaryData{}
	err := r.db.QueryRow(query, today, weekAgo, monthAgo, yearStart).Scan(
		&s.TodayKg,
		&s.ThisWeekKg,
		&s.ThisMonthKg,
		&s.ThisYearKg,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// LeaderboardTotals returns per-employee approved totals, heaviest
// first. Ranks are assigned by the service.
func (r *WasteEntryRepository) LeaderboardTotals() ([]model.LeaderboardEntry, error) {
	query := `
		SELECT employee_id, MAX(employee_name), SUM(amount_kg) AS total_kg
		FROM waste_entries
		WHERE status = 'approved'
		GROUP BY employee_id
		ORDER BY total_kg DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.TotalKg); err != nil {
			return nil, err
		}
		totals = append(totals, e)
	}
	return totals, rows.Err()
}

func (r *WasteEntryRepository) queryEntries(query string, args ...interface{}) ([]model.WasteEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.WasteEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*model.WasteEntry, error) {
	e := &model.WasteEntry{}
	var location, imageURL sql.NullString

	err := row.Scan(
		&e.ID,
		&e.EmployeeID,
		&e.EmployeeName,
		&e.WasteType,
		&e.AmountKg,
		&e.DateTime,
		&location,
		&imageURL,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if location.Valid {
		e.Location = &location.String
	}
	if imageURL.Valid {
		e.ImageURL = &imageURL.String
	}
	return e, nil
}

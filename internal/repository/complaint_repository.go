package repository

import (
	"database/sql"
	"time"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type ComplaintRepository struct {
	db *sql.DB
}

func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(c *model.Complaint) error {
	query := `
		INSERT INTO complaints (id, full_name, phone, address, zone, ward_number,
			complaint_type, description, image_url, status, assigned_employee_id,
			issue_date, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(query,
		c.ID,
		c.FullName,
		c.Phone,
		c.Address,
		c.Zone,
		c.WardNumber,
		c.ComplaintType,
		c.Description,
		c.ImageURL,
		c.Status,
		c.AssignedEmployeeID,
		c.IssueDate,
		c.CreatedAt,
		c.ResolvedAt,
	)
	return err
}

func (r *ComplaintRepository) FindByID(id uuid.UUID) (*model.Complaint, error) {
	query := `
		SELECT id, full_name, phone, address, zone, ward_number, complaint_type,
			description, image_url, status, assigned_employee_id, issue_date,
			created_at, resolved_at
		FROM complaints
		WHERE id = $1
	`
	c := &model.Complaint{}
	var imageURL, assignedEmployeeID sql.NullString
	var resolvedAt sql.NullTime

	err := r.db.QueryRow(query, id).Scan(
		&c.ID,
		&c.FullName,
		&c.Phone,
		&c.Address,
		&c.Zone,
		&c.WardNumber,
		&c.ComplaintType,
		&c.Description,
		&imageURL,
		&c.Status,
		&assignedEmployeeID,
		&c.IssueDate,
		&c.CreatedAt,
		&resolvedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if imageURL.Valid {
		c.ImageURL = &imageURL.String
	}
	if assignedEmployeeID.Valid {
		c.AssignedEmployeeID = &assignedEmployeeID.String
	}
	if resolvedAt.Valid {
		c.ResolvedAt = &resolvedAt.Time
	}

	return c, nil
}

func (r *ComplaintRepository) FindAll() ([]model.Complaint, error) {
	query := `
		SELECT id, full_name, phone, address, zone, ward_number, complaint_type,
			description, image_url, status, assigned_employee_id, issue_date,
			created_at, resolved_at
		FROM complaints
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []model.Complaint
	for rows.Next() {
		var c model.Complaint
		var imageURL, assignedEmployeeID sql.NullString
		var resolvedAt sql.NullTime

		err := rows.Scan(
			&c.ID,
			&c.FullName,
			&c.Phone,
			&c.Address,
			&c.Zone,
			&c.WardNumber,
			&c.ComplaintType,
			&c.Description,
			&imageURL,
			&c.Status,
			&assignedEmployeeID,
			&c.IssueDate,
			&c.CreatedAt,
			&resolvedAt,
		)
		if err != nil {
			return nil, err
		}

		if imageURL.Valid {
			c.ImageURL = &imageURL.String
		}
		if assignedEmployeeID.Valid {
			c.AssignedEmployeeID = &assignedEmployeeID.String
		}
		if resolvedAt.Valid {
			c.ResolvedAt = &resolvedAt.Time
		}
		complaints = append(complaints, c)
	}

	return complaints, rows.Err()
}

func (r *ComplaintRepository) UpdateImageURL(id uuid.UUID, imageURL string) error {
	result, err := r.db.Exec(`UPDATE complaints SET image_url = $2 WHERE id = $1`, id, imageURL)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *ComplaintRepository) UpdateStatus(id uuid.UUID, status model.ComplaintStatus, resolvedAt *time.Time) error {
	result, err := r.db.Exec(
		`UPDATE complaints SET status = $2, resolved_at = $3 WHERE id = $1`,
		id, status, resolvedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *ComplaintRepository) AssignEmployee(id uuid.UUID, employeeID string) error {
	result, err := r.db.Exec(
		`UPDATE complaints SET assigned_employee_id = $2 WHERE id = $1`,
		id, employeeID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

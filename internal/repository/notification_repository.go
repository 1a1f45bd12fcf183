package repository

import (
	"database/sql"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, employee_id, complaint_id, entry_id, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(query,
		n.ID,
		n.EmployeeID,
		n.ComplaintID,
		n.EntryID,
		n.Title,
		n.Message,
		n.IsRead,
		n.CreatedAt,
	)
	return err
}

func (r *NotificationRepository) GetByEmployeeID(employeeID string) ([]model.Notification, error) {
	query := `
		SELECT id, employee_id, complaint_id, entry_id, title, message, is_read, created_at
		FROM notifications
		WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT 50
	`
	rows, err := r.db.Query(query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		var complaintID, entryID sql.NullString
		err := rows.Scan(
			&n.ID,
			&n.EmployeeID,
			&complaintID,
			&entryID,
			&n.Title,
			&n.Message,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if complaintID.Valid {
			uid, _ := uuid.Parse(complaintID.String)
			n.ComplaintID = &uid
		}
		if entryID.Valid {
			uid, _ := uuid.Parse(entryID.String)
			n.EntryID = &uid
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *NotificationRepository) GetUnreadCount(employeeID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE employee_id = $1 AND is_read = FALSE`
	var count int
	err := r.db.QueryRow(query, employeeID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NotificationRepository) MarkAsRead(notificationID uuid.UUID, employeeID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND employee_id = $2`
	result, err := r.db.Exec(query, notificationID, employeeID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(employeeID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE employee_id = $1 AND is_read = FALSE`
	_, err := r.db.Exec(query, employeeID)
	return err
}

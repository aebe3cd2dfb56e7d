package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/placement-portal/internal/model"
)

// NotificationRepo reads the per-student message mailbox and marks it
// read. Rows are written by ApplicationRepo.SetStatusAndNotify inside the
// status-change transaction; nothing else creates notifications.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// ListByStudent returns all notifications for a student, newest first.
func (r *NotificationRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, student_id, message, is_read, created_at
		 FROM notifications WHERE student_id=?
		 ORDER BY created_at DESC, id DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.StudentID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountUnread returns the number of unread notifications for a student.
func (r *NotificationRepo) CountUnread(ctx context.Context, studentID uint64) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE student_id=? AND is_read=0",
		studentID).Scan(&n)
	return n, err
}

// MarkAllRead flags every unread notification of a student as read.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, studentID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE student_id=? AND is_read=0",
		studentID)
	return err
}

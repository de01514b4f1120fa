package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "userUID", n.UserUID, "type", n.Type)

	query := `INSERT INTO notifications (user_uid, type, title, message, link, is_read, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	n.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, n.UserUID, n.Type, n.Title, n.Message, n.Link, n.IsRead, n.CreatedOn).Scan(&n.ID)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)

	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "userUID", n.UserUID)
	} else {
		logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	}
	return err
}

func (r *notificationRepository) List(ctx context.Context, userUID string, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE user_uid = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userUID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_uid, type, title, message, link, is_read, created_on
	          FROM notifications WHERE user_uid = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserUID, &n.Type, &n.Title, &n.Message, &n.Link, &n.IsRead, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id int32, userUID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_uid = $2`
	result, err := r.db.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("notification not found or access denied: %w", domain.ErrNotFound)
	}
	return nil
}

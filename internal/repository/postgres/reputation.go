package postgres

import (
	"context"
	"database/sql"
	"time"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/repository"
)

type reputationRepository struct {
	db *sql.DB
}

func NewReputationRepository(db *sql.DB) repository.ReputationRepository {
	return &reputationRepository{db: db}
}

func (r *reputationRepository) CreateLog(ctx context.Context, l *domain.ReputationLog) error {
	logger.EnterMethod("reputationRepository.CreateLog", "userUID", l.UserUID, "sourceType", l.SourceType, "points", l.Points)

	query := `INSERT INTO reputation_logs (user_uid, source_type, source_id, points, reason, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	l.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, l.UserUID, l.SourceType, l.SourceID, l.Points, l.Reason, l.CreatedOn).Scan(&l.ID)

	if err != nil {
		logger.ExitMethodWithError("reputationRepository.CreateLog", err)
	} else {
		logger.ExitMethod("reputationRepository.CreateLog", "logID", l.ID)
	}
	return err
}

func (r *reputationRepository) ListByUser(ctx context.Context, uid string, page, pageSize int32) ([]domain.ReputationLog, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM reputation_logs WHERE user_uid = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, uid).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, user_uid, source_type, source_id, points, reason, created_on
	          FROM reputation_logs WHERE user_uid = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, uid, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []domain.ReputationLog
	for rows.Next() {
		var l domain.ReputationLog
		if err := rows.Scan(&l.ID, &l.UserUID, &l.SourceType, &l.SourceID, &l.Points, &l.Reason, &l.CreatedOn); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, count, rows.Err()
}

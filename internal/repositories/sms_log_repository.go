package repositories

import (
	"context"

	"repair-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SMSLogRepository struct {
	DB *pgxpool.Pool
}

func NewSMSLogRepository(db *pgxpool.Pool) *SMSLogRepository {
	return &SMSLogRepository{DB: db}
}

func (r *SMSLogRepository) Create(ctx context.Context, l *models.SMSLog) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO sms_logs(job_id, phone, message, status, error_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sent_at
	`, l.JobID, l.Phone, l.Message, l.Status, l.ErrorMessage).Scan(&l.ID, &l.SentAt)
}

// List returns the most recent attempts first.
func (r *SMSLogRepository) List(ctx context.Context, limit int) ([]*models.SMSLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx, `
		SELECT id, job_id, phone, message, status, error_message, sent_at
		FROM sms_logs ORDER BY sent_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.SMSLog
	for rows.Next() {
		var l models.SMSLog
		if err := rows.Scan(&l.ID, &l.JobID, &l.Phone, &l.Message, &l.Status, &l.ErrorMessage, &l.SentAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

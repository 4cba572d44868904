package repositories

import (
	"context"
	"errors"

	"repair-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PhotoRepository struct {
	DB *pgxpool.Pool
}

func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{DB: db}
}

func (r *PhotoRepository) Create(ctx context.Context, p *models.RepairJobPhoto) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO repair_job_photos(repair_job_id, object_key, filename, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, uploaded_at
	`, p.RepairJobID, p.ObjectKey, p.Filename, p.Description).Scan(&p.ID, &p.UploadedAt)
}

func (r *PhotoRepository) Get(ctx context.Context, id int) (*models.RepairJobPhoto, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, repair_job_id, object_key, filename, description, uploaded_at
		FROM repair_job_photos WHERE id = $1
	`, id)

	var p models.RepairJobPhoto
	err := row.Scan(&p.ID, &p.RepairJobID, &p.ObjectKey, &p.Filename, &p.Description, &p.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByJob returns a job's photos in upload order.
func (r *PhotoRepository) ListByJob(ctx context.Context, repairJobID int) ([]*models.RepairJobPhoto, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, repair_job_id, object_key, filename, description, uploaded_at
		FROM repair_job_photos WHERE repair_job_id = $1
		ORDER BY uploaded_at ASC
	`, repairJobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*models.RepairJobPhoto
	for rows.Next() {
		var p models.RepairJobPhoto
		if err := rows.Scan(&p.ID, &p.RepairJobID, &p.ObjectKey, &p.Filename, &p.Description, &p.UploadedAt); err != nil {
			return nil, err
		}
		photos = append(photos, &p)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM repair_job_photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PhotoRepository) CountByJob(ctx context.Context, repairJobID int) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM repair_job_photos WHERE repair_job_id = $1`, repairJobID).Scan(&n)
	return n, err
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"repair-backend/internal/models"
	"repair-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a job lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Job identifiers are AJ-<n>, seeded so the first job ever is AJ-1001.
const (
	jobIDPrefix = "AJ"
	jobIDSeed   = 1000
)

type JobRepository struct {
	DB *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{DB: db}
}

const jobSelect = `
	SELECT j.id, j.job_id, j.customer_name, j.phone_number, j.bike_description, j.status,
	       j.estimated_repair_time, j.repair_details, j.internal_notes, j.estimated_cost,
	       j.created_by_user_id, COALESCE(u.name, '') AS created_by_name,
	       j.created_at, j.updated_at, j.ready_notified_at
	FROM repair_jobs j
	LEFT JOIN users u ON u.id = j.created_by_user_id
`

func scanJob(row pgx.Row) (*models.RepairJob, error) {
	var j models.RepairJob
	err := row.Scan(&j.ID, &j.JobID, &j.CustomerName, &j.PhoneNumber, &j.BikeDescription, &j.Status,
		&j.EstimatedRepairTime, &j.RepairDetails, &j.InternalNotes, &j.EstimatedCost,
		&j.CreatedByUserID, &j.CreatedByName,
		&j.CreatedAt, &j.UpdatedAt, &j.ReadyNotifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// Create inserts a new job. When the job carries no identifier one is
// assigned as AJ-<max numeric suffix + 1> in the same statement, so the
// scan and the insert are atomic and the unique index on job_id backstops
// concurrent creations. A job that already has an identifier keeps it.
func (r *JobRepository) Create(ctx context.Context, j *models.RepairJob) error {
	if j.Status == "" {
		j.Status = models.StatusReceived
	}
	if j.EstimatedRepairTime == "" {
		j.EstimatedRepairTime = models.EstimateUnknown
	}

	if j.JobID != "" {
		return r.DB.QueryRow(ctx, `
			INSERT INTO repair_jobs(job_id, customer_name, phone_number, bike_description, status, estimated_repair_time, created_by_user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`, j.JobID, j.CustomerName, j.PhoneNumber, j.BikeDescription, j.Status, j.EstimatedRepairTime, j.CreatedByUserID,
		).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	}

	query := `
		WITH next_num AS (
			SELECT COALESCE(MAX(CAST(SPLIT_PART(job_id, '-', 2) AS INTEGER)), $1::integer) + 1 AS num
			FROM repair_jobs
		)
		INSERT INTO repair_jobs(job_id, customer_name, phone_number, bike_description, status, estimated_repair_time, created_by_user_id)
		SELECT $2 || '-' || num, $3, $4, $5, $6, $7, $8
		FROM next_num
		RETURNING id, job_id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		jobIDSeed,
		jobIDPrefix,
		j.CustomerName,
		j.PhoneNumber,
		j.BikeDescription,
		j.Status,
		j.EstimatedRepairTime,
		j.CreatedByUserID,
	).Scan(&j.ID, &j.JobID, &j.CreatedAt, &j.UpdatedAt)
}

// GetByJobID fetches one job by its public identifier.
func (r *JobRepository) GetByJobID(ctx context.Context, jobID string) (*models.RepairJob, error) {
	row := r.DB.QueryRow(ctx, jobSelect+` WHERE j.job_id = $1`, jobID)
	return scanJob(row)
}

// FindByJobIDAndPhone is the public tracking lookup: identifier and phone
// must both match the same record. The identifier comparison is
// case-insensitive, the phone comparison exact.
func (r *JobRepository) FindByJobIDAndPhone(ctx context.Context, jobID, phone string) (*models.RepairJob, error) {
	row := r.DB.QueryRow(ctx, jobSelect+` WHERE UPPER(j.job_id) = UPPER($1) AND j.phone_number = $2`, jobID, phone)
	return scanJob(row)
}

// ListParams are the dashboard list controls.
type ListParams struct {
	Search        string
	Status        string
	ShowCompleted bool
	SortBy        string // validated against sortColumns
	Page          int    // 1-based
	PerPage       int
}

// sortColumns whitelists dashboard sort keys. A leading '-' on the request
// key means descending.
var sortColumns = map[string]string{
	"created_at":            "j.created_at",
	"job_id":                "j.job_id",
	"customer_name":         "j.customer_name",
	"status":                "j.status",
	"estimated_repair_time": "j.estimated_repair_time",
	"estimated_cost":        "j.estimated_cost",
	"created_by":            "created_by_name",
}

// OrderClause resolves a request sort key to a SQL ORDER BY expression,
// falling back to newest-first for unknown keys.
func OrderClause(sortBy string) string {
	dir := "ASC"
	key := sortBy
	if strings.HasPrefix(key, "-") {
		dir = "DESC"
		key = key[1:]
	}
	col, ok := sortColumns[key]
	if !ok {
		return "j.created_at DESC"
	}
	return col + " " + dir
}

// List returns one dashboard page of jobs plus the total match count.
func (r *JobRepository) List(ctx context.Context, p ListParams) ([]*models.RepairJob, int, error) {
	var where []string
	var args []interface{}

	if !p.ShowCompleted {
		where = append(where, "j.status <> 'COMPLETED'")
	}
	if p.Status != "" {
		args = append(args, p.Status)
		where = append(where, fmt.Sprintf("j.status = $%d", len(args)))
	}
	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(j.job_id ILIKE $%d OR j.customer_name ILIKE $%d OR j.phone_number ILIKE $%d OR COALESCE(u.name, '') ILIKE $%d)",
			n, n, n, n))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM repair_jobs j
		LEFT JOIN users u ON u.id = j.created_by_user_id
	` + clause
	var total int
	if err := r.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if p.PerPage <= 0 {
		p.PerPage = 20
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	args = append(args, p.PerPage, (p.Page-1)*p.PerPage)
	query := fmt.Sprintf("%s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		jobSelect, clause, OrderClause(p.SortBy), len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []*models.RepairJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

// Update applies the staff edit form to a job.
func (r *JobRepository) Update(ctx context.Context, jobID string, req *models.UpdateJobRequest) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE repair_jobs
		SET status = $1, estimated_repair_time = $2, estimated_cost = $3,
		    repair_details = $4, internal_notes = $5, updated_at = NOW()
		WHERE job_id = $6
	`, req.Status, req.EstimatedRepairTime, req.EstimatedCost, req.RepairDetails, req.InternalNotes, jobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus assigns a status without touching the rest of the record.
func (r *JobRepository) SetStatus(ctx context.Context, jobID, status string) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE repair_jobs SET status = $1, updated_at = NOW() WHERE job_id = $2
	`, status, jobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetReadyNotified stamps the time the ready SMS was delivered.
func (r *JobRepository) SetReadyNotified(ctx context.Context, jobID string, at time.Time) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE repair_jobs SET ready_notified_at = $1, updated_at = NOW() WHERE job_id = $2
	`, at, jobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a job; photo rows go with it via FK cascade.
func (r *JobRepository) Delete(ctx context.Context, jobID string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM repair_jobs WHERE job_id = $1`, jobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCreatedBetween returns all jobs created inside the range, oldest
// first. An unbounded range returns everything.
func (r *JobRepository) ListCreatedBetween(ctx context.Context, dr timeutil.DateRange) ([]*models.RepairJob, error) {
	query := jobSelect
	var args []interface{}
	if dr.Bounded {
		query += ` WHERE j.created_at >= $1 AND j.created_at <= $2`
		args = append(args, dr.Start, dr.End)
	}
	query += ` ORDER BY j.created_at ASC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.RepairJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// DashboardStats are the stat-card counts on the staff dashboard.
type DashboardStats struct {
	Total     int `json:"total_jobs"`
	Pending   int `json:"pending_jobs"`
	Ready     int `json:"ready_jobs"`
	Completed int `json:"completed_jobs"`
}

// Stats counts jobs per dashboard card in one query.
func (r *JobRepository) Stats(ctx context.Context) (*DashboardStats, error) {
	var s DashboardStats
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status <> 'COMPLETED'),
		       COUNT(*) FILTER (WHERE status = 'READY'),
		       COUNT(*) FILTER (WHERE status = 'COMPLETED')
		FROM repair_jobs
	`).Scan(&s.Total, &s.Pending, &s.Ready, &s.Completed)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

package repositories

import (
	"context"
	"os"
	"testing"

	"repair-backend/internal/database"
	"repair-backend/internal/models"
	"repair-backend/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "j.created_at ASC", OrderClause("created_at"))
	assert.Equal(t, "j.created_at DESC", OrderClause("-created_at"))
	assert.Equal(t, "j.customer_name ASC", OrderClause("customer_name"))
	assert.Equal(t, "j.estimated_cost DESC", OrderClause("-estimated_cost"))
	assert.Equal(t, "created_by_name ASC", OrderClause("created_by"))

	// Anything outside the whitelist falls back to newest-first
	assert.Equal(t, "j.created_at DESC", OrderClause(""))
	assert.Equal(t, "j.created_at DESC", OrderClause("phone_number"))
	assert.Equal(t, "j.created_at DESC", OrderClause("1; DROP TABLE repair_jobs"))
	assert.Equal(t, "j.created_at DESC", OrderClause("-unknown"))
}

// testPool connects to the database named by TEST_DATABASE_URL and
// migrates it. Tests using it are skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.NewMigrator(pool, migrations.FS).RunMigrations(context.Background()))
	return pool
}

func TestJobIDAssignment(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	_, err := pool.Exec(ctx, `TRUNCATE repair_jobs CASCADE`)
	require.NoError(t, err)

	repo := NewJobRepository(pool)

	first := &models.RepairJob{CustomerName: "Jan Peeters", PhoneNumber: "+32499000001"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "AJ-1001", first.JobID)

	second := &models.RepairJob{CustomerName: "Lena Mertens", PhoneNumber: "+32499000002"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, "AJ-1002", second.JobID)

	// Max plus one, even across a gap left by a deletion
	require.NoError(t, repo.Delete(ctx, "AJ-1001"))
	third := &models.RepairJob{CustomerName: "Tom Claes", PhoneNumber: "+32499000003"}
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, "AJ-1003", third.JobID)

	// A job arriving with an identifier keeps it and bumps the maximum
	pre := &models.RepairJob{JobID: "AJ-2000", CustomerName: "An Smets", PhoneNumber: "+32499000004"}
	require.NoError(t, repo.Create(ctx, pre))
	assert.Equal(t, "AJ-2000", pre.JobID)

	next := &models.RepairJob{CustomerName: "Bart Nys", PhoneNumber: "+32499000005"}
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, "AJ-2001", next.JobID)
}

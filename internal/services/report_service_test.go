package services

import (
	"context"
	"testing"
	"time"

	"repair-backend/internal/models"
	"repair-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportStore struct {
	jobs []*models.RepairJob
	got  timeutil.DateRange
}

func (f *fakeReportStore) ListCreatedBetween(ctx context.Context, dr timeutil.DateRange) ([]*models.RepairJob, error) {
	f.got = dr
	var out []*models.RepairJob
	for _, j := range f.jobs {
		if dr.Contains(j.CreatedAt) {
			out = append(out, j)
		}
	}
	return out, nil
}

func ptr(f float64) *float64 { return &f }

func costedJob(id string, cost *float64, status string, created time.Time) *models.RepairJob {
	return &models.RepairJob{
		JobID:         id,
		CustomerName:  "Customer " + id,
		Status:        status,
		EstimatedCost: cost,
		CreatedAt:     created,
	}
}

func TestBuildSummaryStatistics(t *testing.T) {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, timeutil.ShopTZ)
	jobs := []*models.RepairJob{
		costedJob("AJ-1001", ptr(50), models.StatusCompleted, created),
		costedJob("AJ-1002", ptr(100), models.StatusReady, created),
		costedJob("AJ-1003", ptr(150), models.StatusInProgress, created),
		costedJob("AJ-1004", ptr(300), models.StatusCompleted, created),
		costedJob("AJ-1005", nil, models.StatusReceived, created),
	}

	s := buildSummary(jobs, timeutil.DateRange{}, 100)

	assert.Equal(t, 5, s.TotalJobs)
	assert.Equal(t, 4, s.CostedJobs)
	assert.InDelta(t, 600.0, s.TotalCost, 0.001)
	assert.InDelta(t, 150.0, s.AverageCost, 0.001)
	assert.InDelta(t, 125.0, s.MedianCost, 0.001) // even count: mean of 100 and 150
	assert.InDelta(t, 300.0, s.MaxCost, 0.001)
	assert.InDelta(t, 50.0, s.MinCost, 0.001)

	assert.Equal(t, 2, s.StatusCounts[models.StatusCompleted])
	assert.Equal(t, 1, s.StatusCounts[models.StatusReceived])

	// Top list keeps only jobs at or above the floor, highest first
	require.Len(t, s.HighValue, 3)
	assert.Equal(t, "AJ-1004", s.HighValue[0].JobID)
	assert.InDelta(t, 300.0, s.HighValue[0].EstimatedCost, 0.001)
	assert.Equal(t, "AJ-1003", s.HighValue[1].JobID)
	assert.Equal(t, "AJ-1002", s.HighValue[2].JobID)
}

func TestBuildSummaryOddMedian(t *testing.T) {
	created := timeutil.Now()
	jobs := []*models.RepairJob{
		costedJob("AJ-1", ptr(10), models.StatusReceived, created),
		costedJob("AJ-2", ptr(20), models.StatusReceived, created),
		costedJob("AJ-3", ptr(90), models.StatusReceived, created),
	}

	s := buildSummary(jobs, timeutil.DateRange{}, 100)
	assert.InDelta(t, 20.0, s.MedianCost, 0.001)
	assert.Empty(t, s.HighValue)
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := buildSummary(nil, timeutil.DateRange{}, 100)

	assert.Equal(t, 0, s.TotalJobs)
	assert.Zero(t, s.TotalCost)
	assert.Zero(t, s.AverageCost)
	assert.Zero(t, s.MedianCost)
	assert.Zero(t, s.MaxCost)
	assert.Zero(t, s.MinCost)
	assert.Empty(t, s.HighValue)
	assert.Nil(t, s.Daily)
}

func TestBuildSummaryTopListCapped(t *testing.T) {
	created := timeutil.Now()
	var jobs []*models.RepairJob
	for i := 0; i < 15; i++ {
		jobs = append(jobs, costedJob("AJ-"+string(rune('A'+i)), ptr(float64(100+i)), models.StatusReady, created))
	}

	s := buildSummary(jobs, timeutil.DateRange{}, 100)
	require.Len(t, s.HighValue, 10)
	assert.InDelta(t, 114.0, s.HighValue[0].EstimatedCost, 0.001)
	assert.InDelta(t, 105.0, s.HighValue[9].EstimatedCost, 0.001)
}

func TestBuildSummaryDailyBreakdown(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, timeutil.ShopTZ)
	dr := timeutil.DateRange{Bounded: true, Start: start, End: timeutil.EndOfDay(start.AddDate(0, 0, 2))}

	jobs := []*models.RepairJob{
		costedJob("AJ-1", ptr(40), models.StatusReceived, start.Add(9*time.Hour)),
		costedJob("AJ-2", ptr(60), models.StatusReceived, start.Add(17*time.Hour)),
		costedJob("AJ-3", nil, models.StatusReceived, start.AddDate(0, 0, 2).Add(10*time.Hour)),
		costedJob("AJ-4", ptr(30), models.StatusReceived, start.AddDate(0, 0, 2).Add(11*time.Hour)),
	}

	s := buildSummary(jobs, dr, 100)

	// Only days with costed jobs appear; the empty middle day gets no row
	// and the uncosted AJ-3 contributes nothing to its day.
	require.Len(t, s.Daily, 2)
	assert.Equal(t, "2026-03-01", s.Daily[0].Date)
	assert.Equal(t, 2, s.Daily[0].JobCount)
	assert.InDelta(t, 100.0, s.Daily[0].TotalCost, 0.001)

	assert.Equal(t, "2026-03-03", s.Daily[1].Date)
	assert.Equal(t, 1, s.Daily[1].JobCount)
	assert.InDelta(t, 30.0, s.Daily[1].TotalCost, 0.001)
}

func TestBuildSummaryDailyEmptyWithoutCostedJobs(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, timeutil.ShopTZ)
	dr := timeutil.DateRange{Bounded: true, Start: day, End: timeutil.EndOfDay(day)}

	jobs := []*models.RepairJob{
		costedJob("AJ-1", nil, models.StatusReceived, day.Add(12*time.Hour)),
	}

	s := buildSummary(jobs, dr, 100)

	assert.Equal(t, 1, s.TotalJobs)
	assert.Equal(t, 0, s.CostedJobs)
	assert.Empty(t, s.Daily)
}

func TestBuildSummaryDailyGate(t *testing.T) {
	// June range, no DST transition: June 1 to July 2 spans exactly 31 days.
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, timeutil.ShopTZ)
	job := costedJob("AJ-1", ptr(75), models.StatusReceived, start.Add(10*time.Hour))

	at31 := timeutil.DateRange{Bounded: true, Start: start, End: timeutil.EndOfDay(start.AddDate(0, 0, 31))}
	s := buildSummary([]*models.RepairJob{job}, at31, 100)
	require.Len(t, s.Daily, 1)
	assert.Equal(t, "2026-06-01", s.Daily[0].Date)

	at32 := timeutil.DateRange{Bounded: true, Start: start, End: timeutil.EndOfDay(start.AddDate(0, 0, 32))}
	s = buildSummary([]*models.RepairJob{job}, at32, 100)
	assert.Nil(t, s.Daily)
}

func TestSummarizeResolvesFilter(t *testing.T) {
	store := &fakeReportStore{}
	svc := NewReportService(store, 100, "Alamana Jo")

	s, err := svc.Summarize(context.Background(), timeutil.FilterToday, "", "")
	require.NoError(t, err)
	assert.True(t, store.got.Bounded)
	assert.Equal(t, timeutil.FilterToday, s.Filter)

	_, err = svc.Summarize(context.Background(), timeutil.FilterCustom, "bad", "dates")
	assert.Error(t, err)
}

func TestGeneratePDF(t *testing.T) {
	created := timeutil.Now()
	store := &fakeReportStore{jobs: []*models.RepairJob{
		costedJob("AJ-1001", ptr(250), models.StatusCompleted, created),
	}}
	svc := NewReportService(store, 100, "Alamana Jo")

	s, err := svc.Summarize(context.Background(), timeutil.FilterAll, "", "")
	require.NoError(t, err)

	data, err := svc.GeneratePDF(s)
	require.NoError(t, err)
	assert.True(t, len(data) > 500)
	assert.Equal(t, "%PDF", string(data[:4]))
}

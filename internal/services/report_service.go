package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"repair-backend/internal/models"
	"repair-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// reportStore is the slice of the job repository reporting reads from.
type reportStore interface {
	ListCreatedBetween(ctx context.Context, dr timeutil.DateRange) ([]*models.RepairJob, error)
}

// ReportService computes revenue summaries over estimated costs. Figures
// are always recomputed from the database; stale money numbers are worse
// than a slow report.
type ReportService struct {
	Jobs           reportStore
	HighValueFloor float64
	ShopName       string
}

func NewReportService(jobs reportStore, highValueFloor float64, shopName string) *ReportService {
	return &ReportService{Jobs: jobs, HighValueFloor: highValueFloor, ShopName: shopName}
}

// DayBucket is one day of the breakdown, present only for ranges of at
// most 31 days.
type DayBucket struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	JobCount  int     `json:"job_count"`
	TotalCost float64 `json:"total_cost"`
}

// HighValueJob is one entry of the top list.
type HighValueJob struct {
	JobID         string  `json:"job_id"`
	CustomerName  string  `json:"customer_name"`
	Status        string  `json:"status"`
	EstimatedCost float64 `json:"estimated_cost"`
	CreatedAt     string  `json:"created_at"`
}

// Summary is the full report payload.
type Summary struct {
	Filter       string         `json:"filter"`
	RangeStart   string         `json:"range_start,omitempty"`
	RangeEnd     string         `json:"range_end,omitempty"`
	TotalJobs    int            `json:"total_jobs"`
	CostedJobs   int            `json:"costed_jobs"`
	TotalCost    float64        `json:"total_cost"`
	AverageCost  float64        `json:"average_cost"`
	MedianCost   float64        `json:"median_cost"`
	MaxCost      float64        `json:"max_cost"`
	MinCost      float64        `json:"min_cost"`
	StatusCounts map[string]int `json:"status_counts"`
	Daily        []DayBucket    `json:"daily,omitempty"`
	HighValue    []HighValueJob `json:"high_value"`
}

// Summarize resolves the date filter and builds the report.
func (s *ReportService) Summarize(ctx context.Context, filter, startStr, endStr string) (*Summary, error) {
	dr, err := timeutil.ResolveRange(filter, startStr, endStr, timeutil.Now())
	if err != nil {
		return nil, err
	}

	jobs, err := s.Jobs.ListCreatedBetween(ctx, dr)
	if err != nil {
		return nil, err
	}

	summary := buildSummary(jobs, dr, s.HighValueFloor)
	summary.Filter = filter
	if filter == "" {
		summary.Filter = timeutil.FilterAll
	}
	return summary, nil
}

// buildSummary aggregates fetched jobs. Jobs without an estimated cost
// count toward job totals but are excluded from every money statistic.
func buildSummary(jobs []*models.RepairJob, dr timeutil.DateRange, floor float64) *Summary {
	summary := &Summary{
		TotalJobs:    len(jobs),
		StatusCounts: make(map[string]int),
		HighValue:    []HighValueJob{},
	}
	if dr.Bounded {
		summary.RangeStart = dr.Start.Format(timeutil.DateLayout)
		summary.RangeEnd = dr.End.Format(timeutil.DateLayout)
	}

	var costs []float64
	for _, j := range jobs {
		summary.StatusCounts[j.Status]++
		if j.EstimatedCost != nil {
			costs = append(costs, *j.EstimatedCost)
		}
	}

	summary.CostedJobs = len(costs)
	if len(costs) > 0 {
		sorted := append([]float64(nil), costs...)
		sort.Float64s(sorted)

		for _, c := range sorted {
			summary.TotalCost += c
		}
		summary.AverageCost = summary.TotalCost / float64(len(sorted))
		summary.MedianCost = median(sorted)
		summary.MinCost = sorted[0]
		summary.MaxCost = sorted[len(sorted)-1]
	}

	if dr.Bounded && dr.SpanDays() <= 31 {
		summary.Daily = dailyBreakdown(jobs)
	}

	summary.HighValue = highValueJobs(jobs, floor)
	return summary
}

// median of an already sorted slice; even counts average the middle pair.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// dailyBreakdown buckets costed jobs per shop-timezone day, ascending.
// Uncosted jobs contribute nothing and a day without costed jobs gets no
// row, so zero costed jobs means an empty breakdown.
func dailyBreakdown(jobs []*models.RepairJob) []DayBucket {
	byDay := make(map[string]*DayBucket)
	for _, j := range jobs {
		if j.EstimatedCost == nil {
			continue
		}
		key := j.CreatedAt.In(timeutil.ShopTZ).Format(timeutil.DateLayout)
		bucket, ok := byDay[key]
		if !ok {
			bucket = &DayBucket{Date: key}
			byDay[key] = bucket
		}
		bucket.JobCount++
		bucket.TotalCost += *j.EstimatedCost
	}

	days := make([]DayBucket, 0, len(byDay))
	for _, b := range byDay {
		days = append(days, *b)
	}
	sort.Slice(days, func(a, b int) bool { return days[a].Date < days[b].Date })
	return days
}

// highValueJobs returns up to ten jobs at or above the cost floor,
// highest first.
func highValueJobs(jobs []*models.RepairJob, floor float64) []HighValueJob {
	var picked []*models.RepairJob
	for _, j := range jobs {
		if j.EstimatedCost != nil && *j.EstimatedCost >= floor {
			picked = append(picked, j)
		}
	}
	sort.SliceStable(picked, func(a, b int) bool {
		return *picked[a].EstimatedCost > *picked[b].EstimatedCost
	})
	if len(picked) > 10 {
		picked = picked[:10]
	}

	result := []HighValueJob{}
	for _, j := range picked {
		result = append(result, HighValueJob{
			JobID:         j.JobID,
			CustomerName:  j.CustomerName,
			Status:        j.Status,
			EstimatedCost: *j.EstimatedCost,
			CreatedAt:     j.CreatedAt.In(timeutil.ShopTZ).Format(timeutil.DateLayout),
		})
	}
	return result
}

// GeneratePDF renders the summary as a printable A4 report.
func (s *ReportService) GeneratePDF(summary *Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Repair Report", s.ShopName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 15:04")), "", 1, "C", false, 0, "")
	if summary.RangeStart != "" {
		pdf.CellFormat(190, 6, fmt.Sprintf("Period: %s to %s", summary.RangeStart, summary.RangeEnd), "", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Totals box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Total jobs: %d", summary.TotalJobs), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Jobs with estimate: %d", summary.CostedJobs), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Total: EUR %.2f", summary.TotalCost), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Average: EUR %.2f", summary.AverageCost), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Median: EUR %.2f", summary.MedianCost), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Min / Max: EUR %.2f / EUR %.2f", summary.MinCost, summary.MaxCost), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Status counts
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Jobs by Status", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, status := range models.Statuses {
		if n := summary.StatusCounts[status]; n > 0 {
			pdf.CellFormat(120, 6, models.StatusLabel(status), "1", 0, "L", false, 0, "")
			pdf.CellFormat(70, 6, fmt.Sprintf("%d", n), "1", 1, "R", false, 0, "")
		}
	}
	pdf.Ln(5)

	// Daily breakdown
	if len(summary.Daily) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Daily Breakdown", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(70, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Jobs", "1", 0, "C", true, 0, "")
		pdf.CellFormat(70, 7, "Total (EUR)", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, day := range summary.Daily {
			pdf.CellFormat(70, 6, day.Date, "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 6, fmt.Sprintf("%d", day.JobCount), "1", 0, "C", false, 0, "")
			pdf.CellFormat(70, 6, fmt.Sprintf("%.2f", day.TotalCost), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(5)
	}

	// High value jobs
	if len(summary.HighValue) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "High Value Repairs", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(30, 7, "Job ID", "1", 0, "C", true, 0, "")
		pdf.CellFormat(70, 7, "Customer", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Status", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Cost (EUR)", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, j := range summary.HighValue {
			name := j.CustomerName
			if len(name) > 32 {
				name = name[:29] + "..."
			}
			pdf.CellFormat(30, 6, j.JobID, "1", 0, "C", false, 0, "")
			pdf.CellFormat(70, 6, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, models.StatusLabel(j.Status), "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", j.EstimatedCost), "1", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

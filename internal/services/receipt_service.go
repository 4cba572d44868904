package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"repair-backend/internal/config"
	"repair-backend/internal/models"
	"repair-backend/internal/qr"
	"repair-backend/internal/repositories"
	"repair-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService builds the drop-off receipt: job details, shop info and
// a QR code whose link pre-fills the public tracking page.
type ReceiptService struct {
	Jobs *repositories.JobRepository
	Cfg  *config.Config
}

func NewReceiptService(jobs *repositories.JobRepository, cfg *config.Config) *ReceiptService {
	return &ReceiptService{Jobs: jobs, Cfg: cfg}
}

// TrackingURL is the pre-filled public tracking link encoded in the QR code.
func (s *ReceiptService) TrackingURL(job *models.RepairJob) string {
	params := url.Values{}
	params.Set("job_id", job.JobID)
	params.Set("phone", job.PhoneNumber)
	return fmt.Sprintf("%s/track?%s", s.Cfg.Shop.PublicBaseURL, params.Encode())
}

// Receipt is the JSON receipt payload.
type Receipt struct {
	Job         *models.RepairJob `json:"job"`
	TrackingURL string            `json:"tracking_url"`
	QRCode      string            `json:"qr_code"` // PNG data URI
	ShopName    string            `json:"shop_name"`
	ShopAddress string            `json:"shop_address"`
	ShopPhone   string            `json:"shop_phone"`
	ShopHours   string            `json:"shop_hours"`
}

// Build assembles the receipt for a job.
func (s *ReceiptService) Build(ctx context.Context, jobID string) (*Receipt, error) {
	job, err := s.Jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	trackingURL := s.TrackingURL(job)
	qrCode, err := qr.DataURI(trackingURL)
	if err != nil {
		return nil, err
	}

	return &Receipt{
		Job:         job,
		TrackingURL: trackingURL,
		QRCode:      qrCode,
		ShopName:    s.Cfg.Shop.Name,
		ShopAddress: s.Cfg.Shop.Address,
		ShopPhone:   s.Cfg.Shop.Phone,
		ShopHours:   s.Cfg.Shop.Hours,
	}, nil
}

// GeneratePDF renders a printable A5-ish receipt on A4.
func (s *ReceiptService) GeneratePDF(ctx context.Context, jobID string) ([]byte, error) {
	job, err := s.Jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	trackingURL := s.TrackingURL(job)
	qrPNG, err := qr.PNG(trackingURL)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Shop header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(180, 10, s.Cfg.Shop.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(180, 5, s.Cfg.Shop.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(180, 5, s.Cfg.Shop.Phone, "", 1, "C", false, 0, "")
	pdf.CellFormat(180, 5, s.Cfg.Shop.Hours, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(180, 8, "Repair Drop-off Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Job box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, fmt.Sprintf("Job ID: %s", job.JobID), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(90, 7, fmt.Sprintf("Customer: %s", job.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(90, 7, fmt.Sprintf("Phone: %s", job.PhoneNumber), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(90, 7, fmt.Sprintf("Dropped off: %s", job.CreatedAt.In(timeutil.ShopTZ).Format(timeutil.DisplayLayout)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(90, 7, fmt.Sprintf("Estimate: %s", job.EstimatedRepairTime), "RB", 1, "L", false, 0, "")
	if job.BikeDescription != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(180, 6, fmt.Sprintf("Bike: %s", job.BikeDescription), "LRB", "L", false)
	}
	pdf.Ln(6)

	// QR code with tracking link
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(180, 7, "Scan to track your repair:", "", 1, "C", false, 0, "")
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("tracking-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("tracking-qr", 75, pdf.GetY(), 60, 60, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + 64)

	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(180, 5, trackingURL, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(180, 5, fmt.Sprintf(
		"Please keep this receipt. After %d days, a storage fee of EUR %.0f per day applies to uncollected bikes.",
		s.Cfg.Shop.StorageFreeDay, s.Cfg.Shop.StorageFeeDay), "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

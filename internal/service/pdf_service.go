package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ReportPDFData holds the fields rendered into the report summary PDF.
type ReportPDFData struct {
	CaseNumber          string
	PoliceStationName   string
	IncidentType        string
	Location            string
	ComplainantName     string
	ComplainantEmail    string
	ReportedDate        string
	ReportedTime        string
	NIC                 string
	IncidentDescription string
}

// PDFRenderer renders a report summary, embedding the signature image
// fetched from its URL.
type PDFRenderer interface {
	Render(ctx context.Context, data ReportPDFData, signatureImageURL string) ([]byte, error)
}

// PDFService renders report PDFs in memory.
type PDFService struct {
	client *http.Client
}

func NewPDFService() *PDFService {
	return &PDFService{client: &http.Client{Timeout: 30 * time.Second}}
}

func (s *PDFService) Render(ctx context.Context, data ReportPDFData, signatureImageURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "BU", 18)
	pdf.CellFormat(0, 10, "Crime Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	fields := []struct {
		label, value string
	}{
		{"Case Number", data.CaseNumber},
		{"Police Station", orNA(data.PoliceStationName)},
		{"Incident Type", data.IncidentType},
		{"Location", data.Location},
		{"Complainant Name", data.ComplainantName},
		{"Complainant Email", data.ComplainantEmail},
		{"Date", data.ReportedDate},
		{"Time", data.ReportedTime},
		{"Complainant NIC", data.NIC},
		{"Description", data.IncidentDescription},
	}
	for _, f := range fields {
		pdf.MultiCell(0, 6, fmt.Sprintf("%s: %s", f.label, f.value), "", "L", false)
		pdf.Ln(2)
	}

	if signatureImageURL != "" {
		img, imgType, err := s.fetchImage(ctx, signatureImageURL)
		if err != nil {
			return nil, fmt.Errorf("fetching signature image: %w", err)
		}
		pdf.Ln(4)
		pdf.MultiCell(0, 6, "Signature:", "", "L", false)
		pdf.Ln(2)
		opts := gofpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
		pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(img))
		pdf.ImageOptions("signature", pdf.GetX(), pdf.GetY(), 50, 0, true, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PDFService) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}
	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	switch http.DetectContentType(img) {
	case "image/png":
		return img, "PNG", nil
	case "image/jpeg":
		return img, "JPG", nil
	case "image/gif":
		return img, "GIF", nil
	default:
		return nil, "", fmt.Errorf("unsupported signature image format")
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

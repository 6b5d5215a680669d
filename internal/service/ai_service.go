package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrEmptyGeneratedReport means the report generation service answered
// without a usable body. Creation cannot proceed without one.
var ErrEmptyGeneratedReport = errors.New("report generation service returned no data")

// GenerateReportRequest is the payload posted to the report generation
// service alongside the complainant's narrative.
type GenerateReportRequest struct {
	ComplainantName     string `json:"complainant_name"`
	ComplainantEmail    string `json:"complainant_email"`
	ComplainantNIC      string `json:"complainant_nic"`
	IncidentDescription string `json:"incident_description"`
}

// GeneratedReport is the structured report the service extracts from the
// free-text narrative.
type GeneratedReport struct {
	IncidentType        string `json:"incident_type"`
	IncidentDescription string `json:"incident_description"`
	Location            string `json:"location"`
}

// ReportGenerator turns a complainant narrative into a structured report.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, req GenerateReportRequest) (*GeneratedReport, error)
}

// AIService calls the external report generation endpoint over HTTP.
type AIService struct {
	url    string
	client *http.Client
}

func NewAIService(url string) *AIService {
	return &AIService{
		url:    url,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *AIService) GenerateReport(ctx context.Context, req GenerateReportRequest) (*GeneratedReport, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling report generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("report generation service returned status %d", resp.StatusCode)
	}

	var generated GeneratedReport
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("decoding generated report: %w", err)
	}
	if generated.IncidentType == "" && generated.IncidentDescription == "" {
		return nil, ErrEmptyGeneratedReport
	}
	return &generated, nil
}

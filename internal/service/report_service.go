package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crimegpt/internal/domain"
	"crimegpt/internal/models"
	"crimegpt/internal/repository"
	"crimegpt/pkg/cloudinary"
)

var (
	ErrEmptyNarrative     = errors.New("incident description is required")
	ErrInvalidCoordinates = errors.New("invalid location coordinates")
	ErrMissingSignature   = errors.New("signature image is required")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidStatus      = errors.New("invalid report status")
	ErrNoReportsToDelete  = errors.New("no reports found to delete")
)

var nonAlpha = regexp.MustCompile(`[^a-zA-Z\s]`)

// sanitizeIncidentType strips everything but letters and whitespace so the
// severity table lookup sees clean keys.
func sanitizeIncidentType(s string) string {
	return nonAlpha.ReplaceAllString(strings.ToLower(s), "")
}

// newCaseNumber builds the human-readable case identifier: the submission
// date plus a short random suffix, e.g. CASE-20250115-3f8a91bc.
func newCaseNumber(now time.Time) string {
	return fmt.Sprintf("CASE-%s-%s", now.Format("20060102"), uuid.NewString()[:8])
}

// Upload is one file received from the client.
type Upload struct {
	Filename string
	Content  io.Reader
}

// CreateReportInput is a citizen submission.
type CreateReportInput struct {
	UserID    uint
	Narrative string
	Latitude  float64
	Longitude float64
	Signature *Upload
	Evidence  []Upload
}

// AdminReportInput is an admin-entered report with explicit complainant
// fields instead of a generated one.
type AdminReportInput struct {
	AdminID             uint
	ComplainantName     string
	ComplainantEmail    string
	ComplainantNIC      string
	IncidentType        string
	IncidentDescription string
	Location            string
	PoliceStationName   string
	ReportStatus        string
	Signature           *Upload
	Evidence            []Upload
}

// AdminReportUpdate carries the optional fields of an admin edit. Empty
// strings mean "leave unchanged".
type AdminReportUpdate struct {
	ComplainantName     string
	ComplainantEmail    string
	ComplainantNIC      string
	IncidentType        string
	IncidentDescription string
	Location            string
	PoliceStationName   string
	Signature           *Upload
}

// ReportService orchestrates the report lifecycle: creation, status changes,
// owner soft deletion and admin mutation. Persistence writes are fatal to the
// request; notification and email side effects are logged and swallowed.
type ReportService struct {
	reports     *repository.ReportRepository
	users       *repository.UserRepository
	locations   *repository.LocationRepository
	evidences   *repository.EvidenceRepository
	notifier    *NotificationService
	storage     cloudinary.Client
	generator   ReportGenerator
	renderer    PDFRenderer
	mailer      ReportMailer
	stationName string
}

func NewReportService(
	reports *repository.ReportRepository,
	users *repository.UserRepository,
	locations *repository.LocationRepository,
	evidences *repository.EvidenceRepository,
	notifier *NotificationService,
	storage cloudinary.Client,
	generator ReportGenerator,
	renderer PDFRenderer,
	mailer ReportMailer,
	stationName string,
) *ReportService {
	return &ReportService{
		reports:     reports,
		users:       users,
		locations:   locations,
		evidences:   evidences,
		notifier:    notifier,
		storage:     storage,
		generator:   generator,
		renderer:    renderer,
		mailer:      mailer,
		stationName: stationName,
	}
}

// Create runs the citizen submission workflow. The steps after the report row
// is written are independent best-effort writes; a crash mid-way leaves a
// valid but incomplete report rather than rolling anything back.
func (s *ReportService) Create(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	if strings.TrimSpace(in.Narrative) == "" {
		return nil, ErrEmptyNarrative
	}
	if in.Latitude < -90 || in.Latitude > 90 || in.Longitude < -180 || in.Longitude > 180 {
		return nil, ErrInvalidCoordinates
	}
	if in.Signature == nil {
		return nil, ErrMissingSignature
	}

	user, err := s.users.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateReport(ctx, GenerateReportRequest{
		ComplainantName:     user.FullName,
		ComplainantEmail:    user.Email,
		ComplainantNIC:      user.NICNumber,
		IncidentDescription: in.Narrative,
	})
	if err != nil {
		return nil, fmt.Errorf("generating report: %w", err)
	}

	incidentType := sanitizeIncidentType(generated.IncidentType)
	severity := domain.ClassifySeverity(incidentType)

	signature, err := s.storage.Upload(ctx, in.Signature.Content, in.Signature.Filename)
	if err != nil {
		return nil, fmt.Errorf("uploading signature image: %w", err)
	}

	location := &models.Location{
		UserID:    in.UserID,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	if err := s.locations.Create(location); err != nil {
		return nil, fmt.Errorf("saving user location: %w", err)
	}

	now := time.Now()
	report := &models.Report{
		UserID:              in.UserID,
		ComplainantName:     user.FullName,
		ComplainantEmail:    user.Email,
		NIC:                 user.NICNumber,
		CaseNumber:          newCaseNumber(now),
		IncidentType:        incidentType,
		Location:            generated.Location,
		UserLocationID:      &location.ID,
		IncidentDescription: generated.IncidentDescription,
		ReportStatus:        domain.StatusPending,
		ReportedDate:        now,
		ReportedTime:        now.Format("3:04:05 PM"),
		SignatureImageURL:   signature.URL,
		PoliceStationName:   s.stationName,
	}
	if err := s.reports.Create(report); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	s.uploadEvidence(ctx, report, in.Evidence)

	if err := s.attachPDF(ctx, report); err != nil {
		return nil, err
	}

	s.dispatchForReport(ctx, report, user.FCMToken, severity, domain.RecipientBoth, newComplaintTemplate)

	if err := s.mailer.SendReportConfirmation(user.FullName, user.Email, report.CaseNumber); err != nil {
		log.Printf("[report] Confirmation email for case %s failed: %v", report.CaseNumber, err)
	}

	return report, nil
}

// uploadEvidence stores each evidence file independently. One failing upload
// is logged and skipped without affecting the rest.
func (s *ReportService) uploadEvidence(ctx context.Context, report *models.Report, files []Upload) {
	if len(files) == 0 {
		return
	}
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, file := range files {
		wg.Add(1)
		go func(file Upload) {
			defer wg.Done()
			uploaded, err := s.storage.Upload(ctx, file.Content, file.Filename)
			if err != nil {
				log.Printf("[report] Evidence upload %q failed: %v", file.Filename, err)
				return
			}
			evidence := &models.Evidence{
				Type:            uploaded.ResourceType,
				EvidenceFileURL: uploaded.URL,
				UserID:          report.UserID,
				ReportID:        report.ID,
				CaseNumber:      report.CaseNumber,
			}
			mu.Lock()
			defer mu.Unlock()
			if err := s.evidences.Create(evidence); err != nil {
				log.Printf("[report] Saving evidence %q failed: %v", file.Filename, err)
				return
			}
			report.Evidences = append(report.Evidences, *evidence)
		}(file)
	}
	wg.Wait()
}

// attachPDF renders the report summary, uploads it and stores the URL on the
// report.
func (s *ReportService) attachPDF(ctx context.Context, report *models.Report) error {
	pdfBytes, err := s.renderer.Render(ctx, ReportPDFData{
		CaseNumber:          report.CaseNumber,
		PoliceStationName:   report.PoliceStationName,
		IncidentType:        report.IncidentType,
		Location:            report.Location,
		ComplainantName:     report.ComplainantName,
		ComplainantEmail:    report.ComplainantEmail,
		ReportedDate:        report.ReportedDate.Format("Mon Jan 2 2006"),
		ReportedTime:        report.ReportedTime,
		NIC:                 report.NIC,
		IncidentDescription: report.IncidentDescription,
	}, report.SignatureImageURL)
	if err != nil {
		return fmt.Errorf("rendering report PDF: %w", err)
	}

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(pdfBytes), fmt.Sprintf("Crime_Report%s.pdf", report.CaseNumber))
	if err != nil {
		return fmt.Errorf("uploading report PDF: %w", err)
	}
	report.ReportPdfURL = uploaded.URL
	if err := s.reports.Save(report); err != nil {
		return fmt.Errorf("saving report PDF reference: %w", err)
	}
	return nil
}

type templateFunc func(caseNumber string) (title, body string)

// dispatchForReport sends a templated notification about the report. Dispatch
// problems are side effects here, logged and swallowed.
func (s *ReportService) dispatchForReport(ctx context.Context, report *models.Report, userToken, severity, recipientType string, tmpl templateFunc) {
	title, body := tmpl(report.CaseNumber)
	reportID := report.ID
	_, err := s.notifier.Dispatch(ctx, Dispatch{
		UserID:        report.UserID,
		UserToken:     userToken,
		AdminTokens:   s.notifier.AdminTokens(),
		Title:         title,
		Body:          body,
		ReportID:      &reportID,
		CaseNumber:    report.CaseNumber,
		Severity:      severity,
		RecipientType: recipientType,
	})
	if err != nil {
		log.Printf("[report] Notification for case %s failed: %v", report.CaseNumber, err)
	}
}

// UpdateStatus sets a report's status and notifies its owner. Any status may
// follow any other; only membership in the enum is enforced.
func (s *ReportService) UpdateStatus(ctx context.Context, reportID uint, status string) (*models.Report, error) {
	if !domain.IsValidReportStatus(status) {
		return nil, ErrInvalidStatus
	}
	report, err := s.reports.GetByIDWithUser(reportID)
	if err != nil {
		return nil, err
	}
	if err := s.reports.UpdateFields(reportID, map[string]interface{}{"report_status": status}); err != nil {
		return nil, err
	}
	report.ReportStatus = status

	severity := domain.ClassifySeverity(report.IncidentType)
	title, body := statusUpdateTemplate(report.CaseNumber, status)
	rid := report.ID
	_, err = s.notifier.Dispatch(ctx, Dispatch{
		UserID:        report.UserID,
		UserToken:     report.User.FCMToken,
		Title:         title,
		Body:          body,
		ReportID:      &rid,
		CaseNumber:    report.CaseNumber,
		Severity:      severity,
		RecipientType: domain.RecipientUser,
	})
	if err != nil {
		log.Printf("[report] Status notification for case %s failed: %v", report.CaseNumber, err)
	}

	if err := s.mailer.SendReportStatusUpdate(report.User.FullName, report.User.Email, report.CaseNumber, status); err != nil {
		log.Printf("[report] Status email for case %s failed: %v", report.CaseNumber, err)
	}

	return report, nil
}

// SoftDelete hides one report from its owner. Once the flag is set the
// owner-scoped lookup no longer matches, so a repeat call is not-found.
func (s *ReportService) SoftDelete(ctx context.Context, userID, reportID uint) error {
	report, err := s.reports.GetOwned(userID, reportID)
	if err != nil {
		return err
	}
	if err := s.reports.SoftDelete(userID, reportID); err != nil {
		return err
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		log.Printf("[report] User %d lookup for delete notification failed: %v", userID, err)
		return nil
	}
	title, body := deleteComplaintTemplate(report.CaseNumber)
	rid := report.ID
	if _, err := s.notifier.Dispatch(ctx, Dispatch{
		UserID:        userID,
		UserToken:     user.FCMToken,
		Title:         title,
		Body:          body,
		ReportID:      &rid,
		CaseNumber:    report.CaseNumber,
		RecipientType: domain.RecipientUser,
	}); err != nil {
		log.Printf("[report] Delete notification for case %s failed: %v", report.CaseNumber, err)
	}
	return nil
}

// SoftDeleteAll hides every report of the owner and sends one notification
// per affected report, each carrying that report's case number.
func (s *ReportService) SoftDeleteAll(ctx context.Context, userID uint) (int64, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return 0, err
	}
	reports, err := s.reports.ListAllOwned(userID)
	if err != nil {
		return 0, err
	}
	if len(reports) == 0 {
		return 0, ErrNoReportsToDelete
	}

	affected, err := s.reports.SoftDeleteAllOwned(userID)
	if err != nil {
		return 0, err
	}

	title, body := deleteAllComplaintsTemplate(user.FullName)
	for _, report := range reports {
		rid := report.ID
		if _, err := s.notifier.Dispatch(ctx, Dispatch{
			UserID:        userID,
			UserToken:     user.FCMToken,
			Title:         title,
			Body:          body,
			ReportID:      &rid,
			CaseNumber:    report.CaseNumber,
			RecipientType: domain.RecipientUser,
		}); err != nil {
			log.Printf("[report] Delete-all notification for case %s failed: %v", report.CaseNumber, err)
		}
	}
	return affected, nil
}

// HardDelete permanently removes a report and notifies the admins.
func (s *ReportService) HardDelete(ctx context.Context, reportID uint) error {
	report, err := s.reports.GetByID(reportID)
	if err != nil {
		return err
	}
	if err := s.reports.HardDelete(reportID); err != nil {
		return err
	}

	title, body := adminDeletedReportTemplate(report.CaseNumber)
	rid := report.ID
	if _, err := s.notifier.Dispatch(ctx, Dispatch{
		UserID:        report.UserID,
		AdminTokens:   s.notifier.AdminTokens(),
		Title:         title,
		Body:          body,
		ReportID:      &rid,
		CaseNumber:    report.CaseNumber,
		RecipientType: domain.RecipientAdmin,
	}); err != nil {
		log.Printf("[report] Hard-delete notification for case %s failed: %v", report.CaseNumber, err)
	}
	return nil
}

// HardDeleteAll removes every report. Owners that no longer resolve or carry
// no token are skipped without aborting the batch; every report row is still
// deleted.
func (s *ReportService) HardDeleteAll(ctx context.Context) (int64, error) {
	reports, err := s.reports.ListAll("")
	if err != nil {
		return 0, err
	}
	if len(reports) == 0 {
		return 0, ErrNoReportsToDelete
	}

	deleted, err := s.reports.HardDeleteAll()
	if err != nil {
		return 0, err
	}

	adminTokens := s.notifier.AdminTokens()
	title, body := adminDeletedAllReportsTemplate()
	for _, report := range reports {
		user, err := s.users.GetByID(report.UserID)
		if err != nil || user.FCMToken == "" {
			log.Printf("[report] Skipping delete-all notification for case %s: owner %d unresolvable", report.CaseNumber, report.UserID)
			continue
		}
		rid := report.ID
		if _, err := s.notifier.Dispatch(ctx, Dispatch{
			UserID:        report.UserID,
			UserToken:     user.FCMToken,
			AdminTokens:   adminTokens,
			Title:         title,
			Body:          body,
			ReportID:      &rid,
			CaseNumber:    report.CaseNumber,
			RecipientType: domain.RecipientAdmin,
		}); err != nil {
			log.Printf("[report] Delete-all notification for case %s failed: %v", report.CaseNumber, err)
		}
	}
	return deleted, nil
}

// AdminCreate enters a report on a complainant's behalf, with explicit fields
// instead of a generated report.
func (s *ReportService) AdminCreate(ctx context.Context, in AdminReportInput) (*models.Report, error) {
	if in.ComplainantName == "" || in.ComplainantEmail == "" || in.ComplainantNIC == "" ||
		in.IncidentType == "" || in.IncidentDescription == "" || in.Location == "" ||
		in.PoliceStationName == "" || in.ReportStatus == "" || in.Signature == nil {
		return nil, ErrMissingFields
	}

	signature, err := s.storage.Upload(ctx, in.Signature.Content, in.Signature.Filename)
	if err != nil {
		return nil, fmt.Errorf("uploading signature image: %w", err)
	}

	now := time.Now()
	report := &models.Report{
		UserID:              in.AdminID,
		ComplainantName:     in.ComplainantName,
		ComplainantEmail:    in.ComplainantEmail,
		NIC:                 in.ComplainantNIC,
		CaseNumber:          newCaseNumber(now),
		IncidentType:        in.IncidentType,
		Location:            in.Location,
		IncidentDescription: in.IncidentDescription,
		ReportStatus:        domain.StatusPending,
		ReportedDate:        now,
		ReportedTime:        now.Format("3:04:05 PM"),
		SignatureImageURL:   signature.URL,
		PoliceStationName:   in.PoliceStationName,
	}
	if err := s.reports.Create(report); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	s.uploadEvidence(ctx, report, in.Evidence)

	if err := s.attachPDF(ctx, report); err != nil {
		return nil, err
	}

	if err := s.mailer.SendReportConfirmation(in.ComplainantName, in.ComplainantEmail, report.CaseNumber); err != nil {
		log.Printf("[report] Confirmation email for case %s failed: %v", report.CaseNumber, err)
	}

	admin, err := s.users.GetByID(in.AdminID)
	adminToken := ""
	if err == nil {
		adminToken = admin.FCMToken
	}
	s.dispatchForReport(ctx, report, adminToken, "", domain.RecipientBoth, adminAddedReportTemplate)

	return report, nil
}

// AdminUpdate applies only the fields that actually differ from the stored
// report, then regenerates the PDF and notifies user and admins.
func (s *ReportService) AdminUpdate(ctx context.Context, reportID uint, in AdminReportUpdate) (*models.Report, error) {
	report, err := s.reports.GetByID(reportID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	setIfChanged := func(column, value, current string) {
		value = strings.TrimSpace(value)
		if value != "" && value != current {
			fields[column] = value
		}
	}
	setIfChanged("nic", in.ComplainantNIC, report.NIC)
	setIfChanged("complainant_name", in.ComplainantName, report.ComplainantName)
	setIfChanged("complainant_email", in.ComplainantEmail, report.ComplainantEmail)
	setIfChanged("incident_description", in.IncidentDescription, report.IncidentDescription)
	setIfChanged("incident_type", in.IncidentType, report.IncidentType)
	setIfChanged("police_station_name", in.PoliceStationName, report.PoliceStationName)
	setIfChanged("location", in.Location, report.Location)

	oldSignatureURL := ""
	if in.Signature != nil {
		uploaded, err := s.storage.Upload(ctx, in.Signature.Content, in.Signature.Filename)
		if err != nil {
			return nil, fmt.Errorf("uploading signature image: %w", err)
		}
		oldSignatureURL = report.SignatureImageURL
		fields["signature_image_url"] = uploaded.URL
	}

	if len(fields) > 0 {
		if err := s.reports.UpdateFields(reportID, fields); err != nil {
			return nil, err
		}
	}

	if oldSignatureURL != "" {
		if err := s.storage.Delete(ctx, publicIDFromURL(oldSignatureURL), "image"); err != nil {
			log.Printf("[report] Removing old signature for case %s failed: %v", report.CaseNumber, err)
		}
	}

	report, err = s.reports.GetByID(reportID)
	if err != nil {
		return nil, err
	}
	if err := s.attachPDF(ctx, report); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(report.UserID)
	ownerToken := ""
	if err == nil {
		ownerToken = owner.FCMToken
	}
	s.dispatchForReport(ctx, report, ownerToken, "", domain.RecipientBoth, adminUpdatedReportTemplate)

	return report, nil
}

// publicIDFromURL derives the storage public id from a delivery URL: the last
// path segment without its extension.
func publicIDFromURL(url string) string {
	base := path.Base(url)
	return strings.TrimSuffix(base, path.Ext(base))
}

// CheckStatus resolves a report's current status by case number, scoped to
// its owner.
func (s *ReportService) CheckStatus(userID uint, caseNumber string) (*models.Report, error) {
	caseNumber = strings.TrimSpace(caseNumber)
	if caseNumber == "" {
		return nil, errors.New("case number is required")
	}
	return s.reports.GetOwnedByCaseNumber(userID, caseNumber)
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crimegpt/internal/domain"
	"crimegpt/internal/models"
	"crimegpt/internal/repository"
)

var caseNumberRe = regexp.MustCompile(`^CASE-\d{8}-[0-9a-f]{8}$`)

type reportFixture struct {
	db            *gorm.DB
	svc           *ReportService
	push          *fakePush
	storage       *fakeStorage
	generator     *fakeGenerator
	mailer        *fakeMailer
	reports       *repository.ReportRepository
	notifications *repository.NotificationRepository
	owner         *models.User
	admin         *models.User
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	db := setupTestDB(t)
	push := &fakePush{}
	storage := &fakeStorage{}
	generator := &fakeGenerator{incidentType: "Theft!", location: "Market Road, Nawabshah"}
	mailer := &fakeMailer{}

	reports := repository.NewReportRepository(db)
	users := repository.NewUserRepository(db)
	notifications := repository.NewNotificationRepository(db)
	notifier := NewNotificationService(notifications, users, push)

	svc := NewReportService(
		reports, users,
		repository.NewLocationRepository(db),
		repository.NewEvidenceRepository(db),
		notifier, storage, generator, fakeRenderer{}, mailer,
		"A Section",
	)
	return &reportFixture{
		db:            db,
		svc:           svc,
		push:          push,
		storage:       storage,
		generator:     generator,
		mailer:        mailer,
		reports:       reports,
		notifications: notifications,
		owner:         createTestUser(t, db, "owner@crimegpt.test", domain.RoleUser, "owner-token"),
		admin:         createTestUser(t, db, "admin@crimegpt.test", domain.RoleAdmin, "admin-token"),
	}
}

func (f *reportFixture) seedReport(t *testing.T, owner *models.User, caseNumber string) *models.Report {
	t.Helper()
	report := &models.Report{
		UserID:              owner.ID,
		ComplainantName:     owner.FullName,
		ComplainantEmail:    owner.Email,
		NIC:                 owner.NICNumber,
		CaseNumber:          caseNumber,
		ReportPdfURL:        "https://cdn.test/media_uploads/Crime_Report" + caseNumber + ".pdf",
		IncidentType:        "theft",
		Location:            "Market Road, Nawabshah",
		IncidentDescription: "seeded",
		ReportStatus:        domain.StatusPending,
		ReportedDate:        time.Now(),
		ReportedTime:        "10:15:00 AM",
		SignatureImageURL:   "https://cdn.test/media_uploads/signature.png",
		PoliceStationName:   "A Section",
	}
	require.NoError(t, f.db.Create(report).Error)
	return report
}

func TestCreateRejectsInvalidCoordinates(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.Create(context.Background(), CreateReportInput{
		UserID:    f.owner.ID,
		Narrative: "someone stole my phone at the market",
		Latitude:  91,
		Longitude: 68.4,
		Signature: upload("signature.png", "png-bytes"),
	})
	require.ErrorIs(t, err, ErrInvalidCoordinates)

	var reports, locations, notifications int64
	require.NoError(t, f.db.Model(&models.Report{}).Count(&reports).Error)
	require.NoError(t, f.db.Model(&models.Location{}).Count(&locations).Error)
	require.NoError(t, f.db.Model(&models.Notification{}).Count(&notifications).Error)
	assert.Zero(t, reports)
	assert.Zero(t, locations)
	assert.Zero(t, notifications)
	assert.Empty(t, f.storage.uploads, "nothing may be uploaded for a rejected submission")
}

func TestCreateRejectsEmptyNarrative(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.Create(context.Background(), CreateReportInput{
		UserID:    f.owner.ID,
		Narrative: "   ",
		Latitude:  26.24,
		Longitude: 68.4,
		Signature: upload("signature.png", "png-bytes"),
	})
	require.ErrorIs(t, err, ErrEmptyNarrative)
}

func TestCreateFullFlow(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.svc.Create(context.Background(), CreateReportInput{
		UserID:    f.owner.ID,
		Narrative: "someone stole my phone at the market",
		Latitude:  26.2442,
		Longitude: 68.41,
		Signature: upload("signature.png", "png-bytes"),
		Evidence: []Upload{
			*upload("scene.jpg", "jpg-bytes"),
			*upload("statement.pdf", "pdf-bytes"),
		},
	})
	require.NoError(t, err)

	assert.Regexp(t, caseNumberRe, report.CaseNumber)
	assert.Equal(t, "theft", report.IncidentType, "incident type is lowercased and stripped")
	assert.Equal(t, domain.StatusPending, report.ReportStatus)
	assert.Equal(t, "Market Road, Nawabshah", report.Location)
	assert.Equal(t, "A Section", report.PoliceStationName)
	assert.NotEmpty(t, report.ReportPdfURL)
	assert.NotNil(t, report.UserLocationID)

	var evidences []models.Evidence
	require.NoError(t, f.db.Where("report_id = ?", report.ID).Find(&evidences).Error)
	require.Len(t, evidences, 2)
	for _, e := range evidences {
		assert.Equal(t, report.CaseNumber, e.CaseNumber)
	}

	notifications, err := f.notifications.ListAll()
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.Equal(t, domain.RecipientBoth, n.RecipientType)
	assert.Equal(t, "Medium", n.SeverityLevel, "theft classifies as Medium")
	assert.Equal(t, report.CaseNumber, n.CaseNumber)
	assert.Equal(t, f.owner.ID, n.UserID)

	require.Len(t, f.push.calls, 1)
	assert.ElementsMatch(t, []string{"owner-token", "admin-token"}, f.push.calls[0].tokens)

	assert.Equal(t, []string{report.CaseNumber}, f.mailer.confirmations)
}

func TestCreateSkipsFailedEvidenceUpload(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.svc.Create(context.Background(), CreateReportInput{
		UserID:    f.owner.ID,
		Narrative: "someone stole my phone at the market",
		Latitude:  26.2442,
		Longitude: 68.41,
		Signature: upload("signature.png", "png-bytes"),
		Evidence: []Upload{
			*upload("scene.jpg", "jpg-bytes"),
			*upload("capture.xyz", "???"),
		},
	})
	require.NoError(t, err, "one bad evidence file must not fail the submission")

	var evidences []models.Evidence
	require.NoError(t, f.db.Where("report_id = ?", report.ID).Find(&evidences).Error)
	require.Len(t, evidences, 1, "only the storable file gets a row")
	assert.Equal(t, "image", evidences[0].Type)
	assert.Equal(t, report.CaseNumber, evidences[0].CaseNumber)
}

func TestCreateFailsWhenGenerationFails(t *testing.T) {
	f := newReportFixture(t)
	f.generator.err = errors.New("service unavailable")

	_, err := f.svc.Create(context.Background(), CreateReportInput{
		UserID:    f.owner.ID,
		Narrative: "someone stole my phone at the market",
		Latitude:  26.2442,
		Longitude: 68.41,
		Signature: upload("signature.png", "png-bytes"),
		Evidence:  []Upload{*upload("scene.jpg", "jpg-bytes")},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "generating report")

	var reports, locations int64
	require.NoError(t, f.db.Model(&models.Report{}).Count(&reports).Error)
	require.NoError(t, f.db.Model(&models.Location{}).Count(&locations).Error)
	assert.Zero(t, reports)
	assert.Zero(t, locations)
	assert.Empty(t, f.storage.uploads, "generation runs before any upload")
}

func TestSoftDeleteTwiceIsNotFound(t *testing.T) {
	f := newReportFixture(t)
	report := f.seedReport(t, f.owner, "CASE-20260831-11111111")

	require.NoError(t, f.svc.SoftDelete(context.Background(), f.owner.ID, report.ID))

	err := f.svc.SoftDelete(context.Background(), f.owner.ID, report.ID)
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "a soft-deleted report is invisible to its owner")

	// The row itself survives for admin views.
	_, err = f.reports.GetByID(report.ID)
	require.NoError(t, err)
}

func TestUpdateStatusNotifiesOwnerOnly(t *testing.T) {
	f := newReportFixture(t)
	report := f.seedReport(t, f.owner, "CASE-20260831-22222222")

	updated, err := f.svc.UpdateStatus(context.Background(), report.ID, domain.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, updated.ReportStatus)

	notifications, err := f.notifications.ListAll()
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.Equal(t, domain.RecipientUser, n.RecipientType)
	assert.Equal(t, "Medium", n.SeverityLevel, "severity re-derived from the incident type")
	assert.Contains(t, n.Body, "has been resolved")
	assert.Contains(t, n.Body, report.CaseNumber)

	require.Len(t, f.push.calls, 1)
	assert.Equal(t, []string{"owner-token"}, f.push.calls[0].tokens, "status updates never reach admin devices")

	assert.Equal(t, []string{report.CaseNumber + ":" + domain.StatusResolved}, f.mailer.statusUpdates)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newReportFixture(t)
	report := f.seedReport(t, f.owner, "CASE-20260831-33333333")

	_, err := f.svc.UpdateStatus(context.Background(), report.ID, "archived")
	require.ErrorIs(t, err, ErrInvalidStatus)

	stored, err := f.reports.GetByID(report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.ReportStatus)
}

func TestHardDeleteAllSkipsUnresolvableOwner(t *testing.T) {
	f := newReportFixture(t)
	silent := createTestUser(t, f.db, "silent@crimegpt.test", domain.RoleUser, "")
	f.seedReport(t, f.owner, "CASE-20260831-44444444")
	f.seedReport(t, silent, "CASE-20260831-55555555")

	deleted, err := f.svc.HardDeleteAll(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted, "every report is removed even when an owner cannot be notified")

	remaining, err := f.reports.ListAll("")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	notifications, err := f.notifications.ListAll()
	require.NoError(t, err)
	require.Len(t, notifications, 1, "only the reachable owner gets a record")
	assert.Equal(t, "CASE-20260831-44444444", notifications[0].CaseNumber)
}

func TestHardDeleteAllEmpty(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.HardDeleteAll(context.Background())
	require.ErrorIs(t, err, ErrNoReportsToDelete)
}

func TestSoftDeleteAllNotifiesPerReport(t *testing.T) {
	f := newReportFixture(t)
	f.seedReport(t, f.owner, "CASE-20260831-66666666")
	f.seedReport(t, f.owner, "CASE-20260831-77777777")

	affected, err := f.svc.SoftDeleteAll(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	notifications, err := f.notifications.ListAll()
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	cases := []string{notifications[0].CaseNumber, notifications[1].CaseNumber}
	assert.ElementsMatch(t, []string{"CASE-20260831-66666666", "CASE-20260831-77777777"}, cases)
}

func TestAdminUpdateAppliesOnlyChangedFields(t *testing.T) {
	f := newReportFixture(t)
	report := f.seedReport(t, f.owner, "CASE-20260831-88888888")

	updated, err := f.svc.AdminUpdate(context.Background(), report.ID, AdminReportUpdate{
		ComplainantNIC: report.NIC, // unchanged
		Location:       "Hospital Road, Nawabshah",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hospital Road, Nawabshah", updated.Location)
	assert.Equal(t, report.NIC, updated.NIC)
	assert.Equal(t, report.SignatureImageURL, updated.SignatureImageURL)
	assert.Empty(t, f.storage.deletes)

	notifications, err := f.notifications.ListAll()
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.RecipientBoth, notifications[0].RecipientType)
}

func TestAdminUpdateReplacesSignature(t *testing.T) {
	f := newReportFixture(t)
	report := f.seedReport(t, f.owner, "CASE-20260831-99999999")

	updated, err := f.svc.AdminUpdate(context.Background(), report.ID, AdminReportUpdate{
		Signature: upload("new-signature.png", "png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/media_uploads/new-signature.png", updated.SignatureImageURL)
	assert.Contains(t, f.storage.deletes, "signature", "the previous signature asset is destroyed")
}

func TestCheckStatusScopedToOwner(t *testing.T) {
	f := newReportFixture(t)
	report := f.seedReport(t, f.owner, "CASE-20260831-aaaaaaaa")
	other := createTestUser(t, f.db, "other@crimegpt.test", domain.RoleUser, "")

	found, err := f.svc.CheckStatus(f.owner.ID, " CASE-20260831-aaaaaaaa ")
	require.NoError(t, err)
	assert.Equal(t, report.ID, found.ID)

	_, err = f.svc.CheckStatus(other.ID, report.CaseNumber)
	assert.True(t, IsNotFound(err))
}

func TestAdminCreateRequiresAllFields(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.AdminCreate(context.Background(), AdminReportInput{
		AdminID:         f.admin.ID,
		ComplainantName: "ali raza",
	})
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestAdminCreateFullFlow(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.svc.AdminCreate(context.Background(), AdminReportInput{
		AdminID:             f.admin.ID,
		ComplainantName:     "ali raza",
		ComplainantEmail:    "walkin@crimegpt.test",
		ComplainantNIC:      "45203-1234567-1",
		IncidentType:        "robbery",
		IncidentDescription: "walk-in complaint taken at the desk",
		Location:            "Station Road, Nawabshah",
		PoliceStationName:   "B Section",
		ReportStatus:        domain.StatusPending,
		Signature:           upload("signature.png", "png-bytes"),
	})
	require.NoError(t, err)

	assert.Regexp(t, caseNumberRe, report.CaseNumber)
	assert.Equal(t, f.admin.ID, report.UserID)
	assert.NotEmpty(t, report.ReportPdfURL)
	assert.Equal(t, []string{report.CaseNumber}, f.mailer.confirmations)

	notifications, err := f.notifications.ListAll()
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.RecipientBoth, notifications[0].RecipientType)
	assert.Contains(t, notifications[0].Body, "added by an admin")
}

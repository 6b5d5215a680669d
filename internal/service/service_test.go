package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crimegpt/internal/database"
	"crimegpt/internal/domain"
	"crimegpt/internal/models"
	"crimegpt/pkg/cloudinary"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection, so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

var nicSeq uint32

func createTestUser(t *testing.T, db *gorm.DB, email, role, fcmToken string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		FullName:        "ali raza",
		Email:           email,
		Gender:          domain.GenderMale,
		Mobile:          "+923001234567",
		PasswordHash:    string(hash),
		NICNumber:       fmt.Sprintf("45203-%07d-1", atomic.AddUint32(&nicSeq, 1)),
		NICImageURL:     "https://cdn.test/media_uploads/nic.jpg",
		Address:         "Street 4, Nawabshah",
		Role:            role,
		IsEmailVerified: true,
		FCMToken:        fcmToken,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type pushCall struct {
	tokens []string
	title  string
	body   string
	data   map[string]string
}

type fakePush struct {
	mu    sync.Mutex
	err   error
	calls []pushCall
}

func (f *fakePush) SendMulticast(_ context.Context, tokens []string, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pushCall{tokens: tokens, title: title, body: body, data: data})
	return f.err
}

type fakeStorage struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
}

// Upload rejects filenames with unsupported extensions, mirroring the real
// client's pre-upload check.
func (f *fakeStorage) Upload(_ context.Context, _ io.Reader, filename string) (*cloudinary.UploadResult, error) {
	resourceType, err := cloudinary.ResourceTypeFor(filename)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.uploads = append(f.uploads, filename)
	f.mu.Unlock()
	return &cloudinary.UploadResult{
		URL:          "https://cdn.test/media_uploads/" + filename,
		PublicID:     strings.TrimSuffix(filename, path.Ext(filename)),
		ResourceType: resourceType,
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, publicID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, publicID)
	return nil
}

type fakeGenerator struct {
	incidentType string
	location     string
	err          error
}

func (f *fakeGenerator) GenerateReport(_ context.Context, req GenerateReportRequest) (*GeneratedReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &GeneratedReport{
		IncidentType:        f.incidentType,
		IncidentDescription: "Formal account: " + req.IncidentDescription,
		Location:            f.location,
	}, nil
}

type fakeRenderer struct{}

func (fakeRenderer) Render(_ context.Context, _ ReportPDFData, _ string) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

// fakeMailer records every outbound mail; it satisfies both mailer
// interfaces.
type fakeMailer struct {
	confirmations    []string
	statusUpdates    []string
	verificationURLs []string
	resetURLs        []string
	logins           []string
	passwordChanges  []string
}

func (f *fakeMailer) SendReportConfirmation(_, _, caseNumber string) error {
	f.confirmations = append(f.confirmations, caseNumber)
	return nil
}

func (f *fakeMailer) SendReportStatusUpdate(_, _, caseNumber, status string) error {
	f.statusUpdates = append(f.statusUpdates, caseNumber+":"+status)
	return nil
}

func (f *fakeMailer) SendAccountVerification(_, _, verificationURL string) error {
	f.verificationURLs = append(f.verificationURLs, verificationURL)
	return nil
}

func (f *fakeMailer) SendLoginSuccess(_, email string) error {
	f.logins = append(f.logins, email)
	return nil
}

func (f *fakeMailer) SendPasswordReset(_, _, resetURL string) error {
	f.resetURLs = append(f.resetURLs, resetURL)
	return nil
}

func (f *fakeMailer) SendPasswordChanged(_, email string) error {
	f.passwordChanges = append(f.passwordChanges, email)
	return nil
}

func upload(filename, content string) *Upload {
	return &Upload{Filename: filename, Content: strings.NewReader(content)}
}

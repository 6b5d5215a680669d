package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crimegpt/internal/database"
	"crimegpt/internal/domain"
	"crimegpt/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

var userSeq uint32

func seedUser(t *testing.T, db *gorm.DB, role, fcmToken string) *models.User {
	t.Helper()
	n := atomic.AddUint32(&userSeq, 1)
	user := &models.User{
		FullName:        fmt.Sprintf("citizen %d", n),
		Email:           fmt.Sprintf("user%d@crimegpt.test", n),
		Gender:          domain.GenderFemale,
		Mobile:          "+923001234567",
		PasswordHash:    "x",
		NICNumber:       fmt.Sprintf("45203-%07d-1", n),
		NICImageURL:     "https://cdn.test/nic.jpg",
		Address:         "Street 4, Nawabshah",
		Role:            role,
		IsEmailVerified: true,
		FCMToken:        fcmToken,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedReport(t *testing.T, db *gorm.DB, userID uint, caseNumber, incidentType, status string) *models.Report {
	t.Helper()
	report := &models.Report{
		UserID:              userID,
		ComplainantName:     "citizen",
		ComplainantEmail:    "citizen@crimegpt.test",
		NIC:                 "45203-1234567-1",
		CaseNumber:          caseNumber,
		ReportPdfURL:        "https://cdn.test/Crime_Report" + caseNumber + ".pdf",
		IncidentType:        incidentType,
		Location:            "Market Road, Nawabshah",
		IncidentDescription: "seeded",
		ReportStatus:        status,
		ReportedDate:        time.Now(),
		ReportedTime:        "10:15:00 AM",
		SignatureImageURL:   "https://cdn.test/signature.png",
		PoliceStationName:   "A Section",
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

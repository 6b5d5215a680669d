package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crimegpt/internal/domain"
	"crimegpt/internal/models"
)

func TestSoftDeleteScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	owner := seedUser(t, db, domain.RoleUser, "")
	report := seedReport(t, db, owner.ID, "CASE-20260831-00000001", "theft", domain.StatusPending)

	_, err := repo.GetOwned(owner.ID, report.ID)
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(owner.ID, report.ID))
	assert.ErrorIs(t, repo.SoftDelete(owner.ID, report.ID), gorm.ErrRecordNotFound)

	_, err = repo.GetOwned(owner.ID, report.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Admin lookups still see the row.
	stored, err := repo.GetByID(report.ID)
	require.NoError(t, err)
	assert.True(t, stored.DeletedByUser)

	all, err := repo.ListAll("")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSoftDeleteWrongOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	owner := seedUser(t, db, domain.RoleUser, "")
	other := seedUser(t, db, domain.RoleUser, "")
	report := seedReport(t, db, owner.ID, "CASE-20260831-00000002", "theft", domain.StatusPending)

	assert.ErrorIs(t, repo.SoftDelete(other.ID, report.ID), gorm.ErrRecordNotFound)

	_, err := repo.GetOwned(owner.ID, report.ID)
	require.NoError(t, err, "a foreign delete attempt leaves the report untouched")
}

func TestListOwnedPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	owner := seedUser(t, db, domain.RoleUser, "")
	for i := 0; i < 5; i++ {
		seedReport(t, db, owner.ID, fmt.Sprintf("CASE-20260831-0000001%d", i), "theft", domain.StatusPending)
	}

	page, total, err := repo.ListOwned(owner.ID, "", 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 2)

	filtered, total, err := repo.ListOwned(owner.ID, "CASE-20260831-00000013", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "CASE-20260831-00000013", filtered[0].CaseNumber)
}

func TestListAllOwned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	owner := seedUser(t, db, domain.RoleUser, "")
	other := seedUser(t, db, domain.RoleUser, "")
	seedReport(t, db, owner.ID, "CASE-20260831-00000041", "theft", domain.StatusPending)
	seedReport(t, db, owner.ID, "CASE-20260831-00000042", "robbery", domain.StatusResolved)
	deleted := seedReport(t, db, owner.ID, "CASE-20260831-00000043", "fraud", domain.StatusPending)
	require.NoError(t, repo.SoftDelete(owner.ID, deleted.ID))
	seedReport(t, db, other.ID, "CASE-20260831-00000044", "theft", domain.StatusPending)

	reports, err := repo.ListAllOwned(owner.ID)
	require.NoError(t, err)
	require.Len(t, reports, 2, "soft-deleted and foreign reports are excluded")
	cases := []string{reports[0].CaseNumber, reports[1].CaseNumber}
	assert.ElementsMatch(t, []string{"CASE-20260831-00000041", "CASE-20260831-00000042"}, cases)
}

func TestCountByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	owner := seedUser(t, db, domain.RoleUser, "")
	seedReport(t, db, owner.ID, "CASE-20260831-00000021", "theft", domain.StatusPending)
	seedReport(t, db, owner.ID, "CASE-20260831-00000022", "robbery", domain.StatusResolved)
	deleted := seedReport(t, db, owner.ID, "CASE-20260831-00000023", "fraud", domain.StatusPending)
	require.NoError(t, repo.SoftDelete(owner.ID, deleted.ID))

	total, err := repo.CountByOwner(owner.ID, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total, "soft-deleted reports are out of the owner's counts")

	pending, err := repo.CountByOwner(owner.ID, domain.StatusPending)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
}

func TestHardDeleteKeepsEvidence(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	evidences := NewEvidenceRepository(db)
	owner := seedUser(t, db, domain.RoleUser, "")
	report := seedReport(t, db, owner.ID, "CASE-20260831-00000031", "theft", domain.StatusPending)
	require.NoError(t, evidences.Create(&models.Evidence{
		Type:            "image",
		EvidenceFileURL: "https://cdn.test/scene.jpg",
		UserID:          owner.ID,
		ReportID:        report.ID,
		CaseNumber:      report.CaseNumber,
	}))

	require.NoError(t, repo.HardDelete(report.ID))
	assert.ErrorIs(t, repo.HardDelete(report.ID), gorm.ErrRecordNotFound)

	rows, err := evidences.ListByReport(report.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "evidence outlives its report")
}

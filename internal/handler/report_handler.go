package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crimegpt/internal/middleware"
	"crimegpt/internal/repository"
	"crimegpt/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
	repo    *repository.ReportRepository
}

func NewReportHandler(reports *service.ReportService, repo *repository.ReportRepository) *ReportHandler {
	return &ReportHandler{reports: reports, repo: repo}
}

// Create is the citizen submission endpoint: a narrative plus coordinates,
// a signature image and optional evidence files, all multipart.
func (h *ReportHandler) Create(c *gin.Context) {
	latitude, latErr := strconv.ParseFloat(c.PostForm("latitude"), 64)
	longitude, lonErr := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if latErr != nil || lonErr != nil {
		respondError(c, http.StatusBadRequest, "Invalid location coordinates!")
		return
	}

	in := service.CreateReportInput{
		UserID:    middleware.GetUserID(c),
		Narrative: c.PostForm("prompt"),
		Latitude:  latitude,
		Longitude: longitude,
	}
	if fh, err := c.FormFile("signatureImage"); err == nil {
		upload, err := uploadFromHeader(fh)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read signature image!")
			return
		}
		in.Signature = upload
	}
	if form, err := c.MultipartForm(); err == nil {
		evidence, err := uploadsFromForm(form, "evidenceFiles")
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read evidence files!")
			return
		}
		in.Evidence = evidence
	}

	report, err := h.reports.Create(c.Request.Context(), in)
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, report, "Report created successfully")
	case errors.Is(err, service.ErrEmptyNarrative),
		errors.Is(err, service.ErrInvalidCoordinates),
		errors.Is(err, service.ErrMissingSignature):
		respondError(c, http.StatusBadRequest, err.Error())
	case service.IsNotFound(err):
		respondError(c, http.StatusNotFound, "User not found!")
	default:
		respondError(c, http.StatusInternalServerError, "Error creating report")
	}
}

func (h *ReportHandler) GetOwned(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	report, err := h.repo.GetOwned(middleware.GetUserID(c), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "Report not found!")
		return
	}
	respondOK(c, http.StatusOK, report, "Report retrieved successfully")
}

func (h *ReportHandler) ListOwned(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 || limit < 1 {
		respondError(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}
	reports, total, err := h.repo.ListOwned(middleware.GetUserID(c), c.Query("crimeNumber"), page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error retrieving reports")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"reports":      reports,
		"totalReports": total,
		"currentPage":  page,
		"perPage":      limit,
	}, "Reports retrieved successfully")
}

func (h *ReportHandler) SoftDelete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	err := h.reports.SoftDelete(c.Request.Context(), middleware.GetUserID(c), uint(id))
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, nil, "Report deleted successfully")
	case service.IsNotFound(err):
		respondError(c, http.StatusNotFound, "Report not found!")
	default:
		respondError(c, http.StatusInternalServerError, "Error deleting report")
	}
}

func (h *ReportHandler) SoftDeleteAll(c *gin.Context) {
	_, err := h.reports.SoftDeleteAll(c.Request.Context(), middleware.GetUserID(c))
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, nil, "All reports deleted successfully")
	case errors.Is(err, service.ErrNoReportsToDelete):
		respondError(c, http.StatusBadRequest, "No reports found to delete!")
	case service.IsNotFound(err):
		respondError(c, http.StatusNotFound, "User not found!")
	default:
		respondError(c, http.StatusInternalServerError, "Error deleting reports")
	}
}

func (h *ReportHandler) CheckStatus(c *gin.Context) {
	var req struct {
		CaseNumber string `json:"caseNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CaseNumber == "" {
		respondError(c, http.StatusBadRequest, "Case number is required!")
		return
	}
	report, err := h.reports.CheckStatus(middleware.GetUserID(c), req.CaseNumber)
	if err != nil {
		respondError(c, http.StatusNotFound, "Report not found!")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"caseNumber":        report.CaseNumber,
		"reportStatus":      report.ReportStatus,
		"reportedDate":      report.ReportedDate,
		"incidentType":      report.IncidentType,
		"policeStationName": report.PoliceStationName,
	}, "Report status retrieved successfully")
}

// Admin endpoints. These see soft-deleted reports too.

func (h *ReportHandler) AdminList(c *gin.Context) {
	reports, err := h.repo.ListAll(c.Query("caseNumber"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error!")
		return
	}
	if len(reports) == 0 {
		respondError(c, http.StatusNotFound, "No reports found!")
		return
	}
	respondOK(c, http.StatusOK, reports, "Reports retrieved successfully")
}

func (h *ReportHandler) AdminGet(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	report, err := h.repo.GetByIDWithUser(uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "Report not found!")
		return
	}
	respondOK(c, http.StatusOK, report, "Report retrieved successfully")
}

func (h *ReportHandler) AdminCreate(c *gin.Context) {
	in := service.AdminReportInput{
		AdminID:             middleware.GetUserID(c),
		ComplainantName:     c.PostForm("complainant_name"),
		ComplainantEmail:    c.PostForm("complainant_email"),
		ComplainantNIC:      c.PostForm("complainant_nic"),
		IncidentType:        c.PostForm("incident_type"),
		IncidentDescription: c.PostForm("incident_description"),
		Location:            c.PostForm("location"),
		PoliceStationName:   c.PostForm("policeStationName"),
		ReportStatus:        c.PostForm("reportStatus"),
	}
	if fh, err := c.FormFile("signatureImage"); err == nil {
		upload, err := uploadFromHeader(fh)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read signature image!")
			return
		}
		in.Signature = upload
	}
	if form, err := c.MultipartForm(); err == nil {
		evidence, err := uploadsFromForm(form, "evidenceFiles")
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read evidence files!")
			return
		}
		in.Evidence = evidence
	}

	report, err := h.reports.AdminCreate(c.Request.Context(), in)
	switch {
	case err == nil:
		respondOK(c, http.StatusCreated, report, "Report added successfully")
	case errors.Is(err, service.ErrMissingFields):
		respondError(c, http.StatusBadRequest, "All fields are required!")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error!")
	}
}

func (h *ReportHandler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	in := service.AdminReportUpdate{
		ComplainantName:     c.PostForm("complainant_name"),
		ComplainantEmail:    c.PostForm("complainant_email"),
		ComplainantNIC:      c.PostForm("nic"),
		IncidentType:        c.PostForm("incident_type"),
		IncidentDescription: c.PostForm("incident_description"),
		Location:            c.PostForm("location"),
		PoliceStationName:   c.PostForm("policeStationName"),
	}
	if fh, err := c.FormFile("signatureImage"); err == nil {
		upload, err := uploadFromHeader(fh)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read signature image!")
			return
		}
		in.Signature = upload
	}

	report, err := h.reports.AdminUpdate(c.Request.Context(), uint(id), in)
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, report, "Report updated successfully")
	case service.IsNotFound(err):
		respondError(c, http.StatusNotFound, "Report not found!")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error!")
	}
}

func (h *ReportHandler) AdminUpdateStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req struct {
		ReportStatus string `json:"reportStatus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ReportStatus == "" {
		respondError(c, http.StatusBadRequest, "Report status is required!")
		return
	}
	report, err := h.reports.UpdateStatus(c.Request.Context(), uint(id), req.ReportStatus)
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, report, "Report status updated successfully")
	case errors.Is(err, service.ErrInvalidStatus):
		respondError(c, http.StatusBadRequest, "Invalid report status!")
	case service.IsNotFound(err):
		respondError(c, http.StatusNotFound, "Report not found!")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error!")
	}
}

func (h *ReportHandler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	err := h.reports.HardDelete(c.Request.Context(), uint(id))
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, nil, "Report deleted successfully")
	case service.IsNotFound(err):
		respondError(c, http.StatusNotFound, "Report not found!")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error!")
	}
}

func (h *ReportHandler) AdminDeleteAll(c *gin.Context) {
	deleted, err := h.reports.HardDeleteAll(c.Request.Context())
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, gin.H{"deletedCount": deleted}, "Reports deleted successfully")
	case errors.Is(err, service.ErrNoReportsToDelete):
		respondError(c, http.StatusNotFound, "No reports found to delete!")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error!")
	}
}

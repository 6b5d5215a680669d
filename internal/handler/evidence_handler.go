package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crimegpt/internal/repository"
)

type EvidenceHandler struct {
	repo *repository.EvidenceRepository
}

func NewEvidenceHandler(repo *repository.EvidenceRepository) *EvidenceHandler {
	return &EvidenceHandler{repo: repo}
}

func (h *EvidenceHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	evidence, err := h.repo.GetByID(uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "Evidence not found!")
		return
	}
	respondOK(c, http.StatusOK, evidence, "Evidence fetched successfully!")
}

func (h *EvidenceHandler) List(c *gin.Context) {
	page, pageErr := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, limitErr := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if pageErr != nil || limitErr != nil || page < 1 || limit < 1 {
		respondError(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}
	var reportID uint64
	if caseID := c.Query("caseId"); caseID != "" {
		reportID, _ = strconv.ParseUint(caseID, 10, 64)
	}

	evidences, total, err := h.repo.List(uint(reportID), page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch evidence!")
		return
	}
	if len(evidences) == 0 {
		respondError(c, http.StatusNotFound, "No evidence found!")
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	respondOK(c, http.StatusOK, gin.H{
		"evidences": evidences,
		"pagination": gin.H{
			"totalItems":      total,
			"currentPage":     page,
			"totalPages":      totalPages,
			"itemsPerPage":    limit,
			"hasNextPage":     int64(page) < totalPages,
			"hasPreviousPage": page > 1,
		},
	}, "All evidence fetched successfully!")
}

func (h *EvidenceHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.Delete(uint(id)); err != nil {
		respondError(c, http.StatusNotFound, "Evidence not found!")
		return
	}
	respondOK(c, http.StatusOK, nil, "Evidence deleted successfully!")
}

func (h *EvidenceHandler) DeleteAll(c *gin.Context) {
	deleted, err := h.repo.DeleteAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete evidence!")
		return
	}
	if deleted == 0 {
		respondError(c, http.StatusNotFound, "No evidence found to delete!")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deletedCount": deleted}, "All evidence deleted successfully!")
}

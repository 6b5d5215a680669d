package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crimegpt/internal/domain"
	"crimegpt/internal/models"
	"crimegpt/internal/repository"
)

type FeedbackHandler struct {
	repo *repository.FeedbackRepository
}

func NewFeedbackHandler(repo *repository.FeedbackRepository) *FeedbackHandler {
	return &FeedbackHandler{repo: repo}
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Date    string `json:"date"`
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Name == "" || req.Email == "" || req.Date == "" || req.Type == "" || req.Message == "" {
		respondError(c, http.StatusBadRequest, "Please provide all required fields!")
		return
	}
	if !domain.IsValidFeedbackType(req.Type) {
		respondError(c, http.StatusBadRequest, "Invalid feedback type!")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, req.Date); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid date format!")
			return
		}
	}

	feedback := &models.Feedback{
		Name:    req.Name,
		Email:   req.Email,
		Date:    date,
		Type:    req.Type,
		Message: req.Message,
	}
	if err := h.repo.Create(feedback); err != nil {
		respondError(c, http.StatusInternalServerError, "Error while creating feedback!")
		return
	}
	respondOK(c, http.StatusCreated, nil, "Feedback created successfully!")
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	feedback, err := h.repo.GetByID(uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "Feedback not found!")
		return
	}
	respondOK(c, http.StatusOK, feedback, "Feedback retrieved successfully!")
}

func (h *FeedbackHandler) List(c *gin.Context) {
	feedbacks, err := h.repo.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch feedbacks!")
		return
	}
	respondOK(c, http.StatusOK, feedbacks, "Feedbacks retrieved successfully!")
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.Delete(uint(id)); err != nil {
		respondError(c, http.StatusNotFound, "Feedback not found!")
		return
	}
	respondOK(c, http.StatusOK, nil, "Feedback deleted successfully!")
}

func (h *FeedbackHandler) DeleteAll(c *gin.Context) {
	deleted, err := h.repo.DeleteAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete feedbacks!")
		return
	}
	if deleted == 0 {
		respondError(c, http.StatusNotFound, "No feedbacks found to delete!")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deletedCount": deleted}, "All feedbacks deleted successfully!")
}

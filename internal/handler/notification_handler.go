package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crimegpt/internal/middleware"
	"crimegpt/internal/repository"
)

type NotificationHandler struct {
	repo *repository.NotificationRepository
}

func NewNotificationHandler(repo *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) ListOwned(c *gin.Context) {
	list, err := h.repo.ListByUser(middleware.GetUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch user notifications!")
		return
	}
	message := "User notifications retrieved successfully"
	if len(list) == 0 {
		message = "No notifications found"
	}
	respondOK(c, http.StatusOK, gin.H{
		"totalNotifications": len(list),
		"notifications":      list,
	}, message)
}

// GetOwned fetches one of the user's notifications and marks it read.
func (h *NotificationHandler) GetOwned(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	n, err := h.repo.GetOwnedAndMarkRead(middleware.GetUserID(c), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "Notification not found!")
		return
	}
	respondOK(c, http.StatusOK, n, "Notification fetched successfully")
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.MarkRead(uint(id)); err != nil {
		respondError(c, http.StatusNotFound, "Notification not found")
		return
	}
	respondOK(c, http.StatusOK, nil, "Notification marked as read")
}

func (h *NotificationHandler) DeleteOwned(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.DeleteOwned(middleware.GetUserID(c), uint(id)); err != nil {
		respondError(c, http.StatusNotFound, "Notification not found!")
		return
	}
	respondOK(c, http.StatusOK, nil, "Notification deleted successfully")
}

func (h *NotificationHandler) DeleteAllOwned(c *gin.Context) {
	if _, err := h.repo.DeleteAllOwned(middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete notifications!")
		return
	}
	respondOK(c, http.StatusOK, nil, "All notifications deleted successfully")
}

// Admin endpoints.

func (h *NotificationHandler) AdminList(c *gin.Context) {
	list, err := h.repo.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch notifications!")
		return
	}
	message := "Notifications retrieved successfully"
	if len(list) == 0 {
		message = "No notifications found"
	}
	respondOK(c, http.StatusOK, gin.H{
		"totalNotifications": len(list),
		"notifications":      list,
	}, message)
}

func (h *NotificationHandler) AdminGet(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	n, err := h.repo.GetByID(uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "Notification not found!")
		return
	}
	respondOK(c, http.StatusOK, n, "Notification fetched successfully")
}

func (h *NotificationHandler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.Delete(uint(id)); err != nil {
		respondError(c, http.StatusNotFound, "Notification not found!")
		return
	}
	respondOK(c, http.StatusOK, nil, "Notification deleted successfully")
}

func (h *NotificationHandler) AdminDeleteAll(c *gin.Context) {
	count, err := h.repo.Count()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete notifications!")
		return
	}
	if count == 0 {
		respondOK(c, http.StatusOK, gin.H{"totalNotifications": 0}, "No notifications found!")
		return
	}
	if _, err := h.repo.DeleteAll(); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete notifications!")
		return
	}
	respondOK(c, http.StatusOK, nil, "All notifications deleted successfully")
}

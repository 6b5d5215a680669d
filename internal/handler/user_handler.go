package handler

import (
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"crimegpt/internal/domain"
	"crimegpt/internal/middleware"
	"crimegpt/internal/repository"
	"crimegpt/internal/service"
	"crimegpt/pkg/cloudinary"
)

type UserHandler struct {
	users    *repository.UserRepository
	reports  *repository.ReportRepository
	storage  cloudinary.Client
	mailer   service.AccountMailer
	notifier *service.NotificationService
}

func NewUserHandler(users *repository.UserRepository, reports *repository.ReportRepository, storage cloudinary.Client, mailer service.AccountMailer, notifier *service.NotificationService) *UserHandler {
	return &UserHandler{users: users, reports: reports, storage: storage, mailer: mailer, notifier: notifier}
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		respondError(c, http.StatusBadRequest, "Please provide old password and new password!")
		return
	}

	user, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found!")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		respondError(c, http.StatusBadRequest, "Old password is incorrect!")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error updating password!")
		return
	}
	if err := h.users.UpdateFields(user.ID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		respondError(c, http.StatusInternalServerError, "Error updating password!")
		return
	}

	if err := h.mailer.SendPasswordChanged(user.FullName, user.Email); err != nil {
		log.Printf("[user] Password-change email to %s failed: %v", user.Email, err)
	}
	if user.FCMToken != "" {
		title, body := service.PasswordChangedMessage()
		if _, err := h.notifier.Dispatch(c.Request.Context(), service.Dispatch{
			UserID:        user.ID,
			UserToken:     user.FCMToken,
			Title:         title,
			Body:          body,
			RecipientType: domain.RecipientUser,
		}); err != nil {
			log.Printf("[user] Password-change notification for user %d failed: %v", user.ID, err)
		}
	}

	respondOK(c, http.StatusOK, nil, "Password updated successfully")
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	user, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found!")
		return
	}

	fields := map[string]interface{}{}
	if v := c.PostForm("fullname"); v != "" {
		fields["full_name"] = v
	}
	if v := c.PostForm("email"); v != "" {
		fields["email"] = strings.ToLower(v)
	}
	if v := c.PostForm("NICNumber"); v != "" {
		fields["nic_number"] = v
	}

	if fh, err := c.FormFile("profileImage"); err == nil {
		if user.ProfileImageURL != "" {
			publicID := strings.TrimSuffix(path.Base(user.ProfileImageURL), path.Ext(user.ProfileImageURL))
			if err := h.storage.Delete(c.Request.Context(), publicID, "image"); err != nil {
				log.Printf("[user] Removing old profile image failed: %v", err)
			}
		}
		upload, err := uploadFromHeader(fh)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read profile image!")
			return
		}
		uploaded, err := h.storage.Upload(c.Request.Context(), upload.Content, upload.Filename)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Error while uploading profile image!")
			return
		}
		fields["profile_image_url"] = uploaded.URL
	}

	if len(fields) > 0 {
		if err := h.users.UpdateFields(user.ID, fields); err != nil {
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	updated, err := h.users.GetByID(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondOK(c, http.StatusOK, updated, "Account details updated successfully")
}

// Dashboard returns the user's report counts by status, excluding reports the
// user soft-deleted.
func (h *UserHandler) Dashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	counts := gin.H{}
	total, err := h.reports.CountByOwner(userID, "")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching report counts")
		return
	}
	counts["totalReports"] = total
	for status, key := range map[string]string{
		domain.StatusRejected:      "totalRejected",
		domain.StatusResolved:      "totalResolved",
		domain.StatusPending:       "totalPending",
		domain.StatusInvestigating: "totalInvestigating",
		domain.StatusClosed:        "totalClosed",
	} {
		n, err := h.reports.CountByOwner(userID, status)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Error fetching report counts")
			return
		}
		counts[key] = n
	}

	respondOK(c, http.StatusOK, counts, "Reports data fetched successfully")
}

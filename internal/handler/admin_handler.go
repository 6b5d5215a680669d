package handler

import (
	"log"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"crimegpt/internal/middleware"
	"crimegpt/internal/repository"
	"crimegpt/pkg/cloudinary"
)

type AdminHandler struct {
	users   *repository.UserRepository
	admin   *repository.AdminRepository
	storage cloudinary.Client
}

func NewAdminHandler(users *repository.UserRepository, admin *repository.AdminRepository, storage cloudinary.Client) *AdminHandler {
	return &AdminHandler{users: users, admin: admin, storage: storage}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 6
	}
	sortBy := c.DefaultQuery("sortBy", "full_name")
	sortType := c.DefaultQuery("sortType", "asc")

	users, total, err := h.users.List(c.Query("nic"), sortBy, sortType, page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching users")
		return
	}
	if len(users) == 0 {
		respondError(c, http.StatusNotFound, "No users found!")
		return
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)
	respondOK(c, http.StatusOK, gin.H{
		"users":       users,
		"totalUsers":  total,
		"totalPages":  totalPages,
		"currentPage": page,
		"perPage":     limit,
	}, "Users fetched successfully")
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	user, err := h.users.GetByID(uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found!")
		return
	}
	respondOK(c, http.StatusOK, user, "User fetched successfully")
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID format!")
		return
	}
	user, err := h.users.GetByID(uint(id))
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
	if v := c.PostForm("mobile"); v != "" {
		fields["mobile"] = v
	}
	if v := c.PostForm("gender"); v != "" {
		fields["gender"] = v
	}
	if v := c.PostForm("role"); v != "" {
		fields["role"] = v
	}
	if v := c.PostForm("password"); v != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(v), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Error updating user!")
			return
		}
		fields["password_hash"] = string(hash)
	}

	if url, ok := h.replaceImage(c, "profileImage", user.ProfileImageURL); ok {
		fields["profile_image_url"] = url
	}
	if url, ok := h.replaceImage(c, "NICImage", user.NICImageURL); ok {
		fields["nic_image_url"] = url
	}

	if len(fields) > 0 {
		if err := h.users.UpdateFields(user.ID, fields); err != nil {
			respondError(c, http.StatusInternalServerError, "Error updating user!")
			return
		}
	}

	updated, err := h.users.GetByID(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error updating user!")
		return
	}
	respondOK(c, http.StatusOK, updated, "User updated successfully")
}

// replaceImage uploads a replacement image from the form if one is present,
// deleting the previous asset.
func (h *AdminHandler) replaceImage(c *gin.Context, field, oldURL string) (string, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", false
	}
	if oldURL != "" {
		publicID := strings.TrimSuffix(path.Base(oldURL), path.Ext(oldURL))
		if err := h.storage.Delete(c.Request.Context(), publicID, "image"); err != nil {
			log.Printf("[admin] Removing old %s failed: %v", field, err)
		}
	}
	upload, err := uploadFromHeader(fh)
	if err != nil {
		log.Printf("[admin] Reading %s failed: %v", field, err)
		return "", false
	}
	uploaded, err := h.storage.Upload(c.Request.Context(), upload.Content, upload.Filename)
	if err != nil {
		log.Printf("[admin] Uploading %s failed: %v", field, err)
		return "", false
	}
	return uploaded.URL, true
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	target, err := h.users.GetByID(uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found!")
		return
	}
	if target.ID == middleware.GetUserID(c) {
		respondError(c, http.StatusForbidden, "Admins cannot delete themselves.")
		return
	}
	if target.IsAdmin() {
		respondError(c, http.StatusForbidden, "You are not authorized to delete an admin.")
		return
	}
	if err := h.users.Delete(target.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "Error deleting user")
		return
	}
	respondOK(c, http.StatusOK, nil, "User deleted successfully")
}

func (h *AdminHandler) DeleteAllUsers(c *gin.Context) {
	deleted, err := h.users.DeleteAllNonAdmins()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error deleting users")
		return
	}
	if deleted == 0 {
		respondError(c, http.StatusNotFound, "No users found to delete!")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deletedCount": deleted}, "All users deleted successfully")
}

// Dashboard aggregates the admin overview: counters, breakdowns by incident
// type, status and gender, and the report coordinates for the map.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.admin.DashboardStats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong while fetching the data.")
		return
	}
	locations, err := h.admin.ReportLocations()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong while fetching the data.")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"stats":           stats,
		"reportLocations": locations,
	}, "Dashboard data fetched successfully")
}

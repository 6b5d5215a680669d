package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"crimegpt/internal/middleware"
	"crimegpt/internal/repository"
	"crimegpt/internal/service"
)

type AuthHandler struct {
	auth       *service.AuthService
	users      *repository.UserRepository
	logins     *middleware.FailedLoginCache
	production bool
}

func NewAuthHandler(auth *service.AuthService, users *repository.UserRepository, logins *middleware.FailedLoginCache, production bool) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, logins: logins, production: production}
}

func (h *AuthHandler) Register(c *gin.Context) {
	in := service.RegisterInput{
		FullName:  c.PostForm("fullname"),
		Email:     c.PostForm("email"),
		Mobile:    c.PostForm("mobile"),
		Gender:    c.PostForm("gender"),
		Password:  c.PostForm("password"),
		NICNumber: c.PostForm("NICNumber"),
		Address:   c.PostForm("address"),
	}
	if fh, err := c.FormFile("NICImage"); err == nil {
		upload, err := uploadFromHeader(fh)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read NIC image!")
			return
		}
		in.NICImage = upload
	}
	if fh, err := c.FormFile("profileImage"); err == nil {
		if upload, err := uploadFromHeader(fh); err == nil {
			in.ProfileImage = upload
		}
	}

	_, err := h.auth.Register(c.Request.Context(), in)
	switch {
	case err == nil:
		respondOK(c, http.StatusCreated, nil, "Signup successful. Please check your email to verify your account")
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrNICExists),
		errors.Is(err, service.ErrMissingRequiredFields),
		errors.Is(err, service.ErrInvalidFullName),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidMobile),
		errors.Is(err, service.ErrInvalidNIC),
		errors.Is(err, service.ErrAddressTooLong),
		errors.Is(err, service.ErrMissingNICImage):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "An error occurred during registration!")
	}
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	err := h.auth.VerifyEmail(c.Param("token"))
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, nil, "Email verified successfully!")
	case errors.Is(err, service.ErrInvalidVerifyToken):
		respondError(c, http.StatusUnauthorized, "Invalid or expired token!")
	default:
		respondError(c, http.StatusInternalServerError, "An error occurred during email verification!")
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Email and password are required!")
		return
	}

	user, pair, err := h.auth.Login(req.Email, req.Password, req.FCMToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logins.Record(c.ClientIP())
			respondError(c, http.StatusUnauthorized, "Email or password is incorrect!")
			return
		}
		respondError(c, http.StatusInternalServerError, "Login failed!")
		return
	}
	h.logins.Reset(c.ClientIP())

	h.setAuthCookies(c, pair)
	respondOK(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "User logged in successfully")
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, pair *service.TokenPair) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("accessToken", pair.AccessToken, 24*60*60, "/", "", h.production, true)
	c.SetCookie("refreshToken", pair.RefreshToken, 30*24*60*60, "/", "", h.production, true)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = c.ShouldBindJSON(&req)
	token := req.RefreshToken
	if token == "" {
		if cookie, err := c.Cookie("refreshToken"); err == nil {
			token = cookie
		}
	}
	if token == "" {
		respondError(c, http.StatusUnauthorized, "Refresh token is required!")
		return
	}

	_, pair, err := h.auth.Refresh(token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token!")
			return
		}
		respondError(c, http.StatusInternalServerError, "Token refresh failed!")
		return
	}

	h.setAuthCookies(c, pair)
	respondOK(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "Tokens updated successfully!")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		respondError(c, http.StatusBadRequest, "Email is required!")
		return
	}
	if err := h.auth.ForgotPassword(req.Email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found!")
			return
		}
		respondError(c, http.StatusInternalServerError, "Could not start password reset!")
		return
	}
	respondOK(c, http.StatusOK, nil, "Password reset link has been sent to your email.")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Token and password are required!")
		return
	}
	if err := h.auth.ResetPassword(req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token for resetting password!")
			return
		}
		respondError(c, http.StatusInternalServerError, "Password reset failed!")
		return
	}
	c.SetCookie("accessToken", "", -1, "/", "", h.production, true)
	c.SetCookie("refreshToken", "", -1, "/", "", h.production, true)
	respondOK(c, http.StatusOK, nil, "Password updated successfully. Now you can login with the new password!")
}

func (h *AuthHandler) UpdateFCMToken(c *gin.Context) {
	var req struct {
		UserID   uint   `json:"userId"`
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.FCMToken == "" {
		respondError(c, http.StatusBadRequest, "User ID and FCM token are required!")
		return
	}
	if err := h.auth.UpdateFCMToken(req.UserID, req.FCMToken); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found!")
			return
		}
		respondError(c, http.StatusInternalServerError, "Could not update FCM token!")
		return
	}
	respondOK(c, http.StatusOK, nil, "FCM token updated successfully")
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found!")
		return
	}
	respondOK(c, http.StatusOK, user, "User fetched successfully")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", h.production, true)
	c.SetCookie("refreshToken", "", -1, "/", "", h.production, true)
	respondOK(c, http.StatusOK, nil, "Successfully logged out user")
}

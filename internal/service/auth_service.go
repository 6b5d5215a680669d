package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"crimegpt/config"
	"crimegpt/internal/auth"
	"crimegpt/internal/domain"
	"crimegpt/internal/models"
	"crimegpt/internal/repository"
	"crimegpt/pkg/cloudinary"
)

var (
	ErrEmailExists           = errors.New("email already exists")
	ErrNICExists             = errors.New("NIC number already exists")
	ErrInvalidCredentials    = errors.New("email or password is incorrect")
	ErrInvalidVerifyToken    = errors.New("invalid or expired verification token")
	ErrInvalidResetToken     = errors.New("invalid or expired reset token")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrMissingNICImage       = errors.New("NIC image is required")
	ErrInvalidFullName       = errors.New("full name must only contain alphabets and spaces")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrInvalidMobile         = errors.New("please enter a valid Pakistani mobile number")
	ErrInvalidNIC            = errors.New("invalid NIC number")
	ErrAddressTooLong        = errors.New("address must be less than 255 characters")
	ErrMissingRequiredFields = errors.New("all fields are required")
)

var (
	fullNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailRe    = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)
	mobileRe   = regexp.MustCompile(`^(\+92|92)[0-9]{10}$`)
	nicRe      = regexp.MustCompile(`^\d{5}-\d{7}-\d{1}$`)
)

// RegisterInput is a citizen signup.
type RegisterInput struct {
	FullName     string
	Email        string
	Mobile       string
	Gender       string
	Password     string
	NICNumber    string
	Address      string
	NICImage     *Upload
	ProfileImage *Upload
}

// TokenPair is an issued access/refresh token set.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles registration, login, token refresh and the password
// flows. Verification and reset links point at the frontend.
type AuthService struct {
	users       *repository.UserRepository
	storage     cloudinary.Client
	mailer      AccountMailer
	jwt         *config.JWTConfig
	frontendURL string
}

func NewAuthService(users *repository.UserRepository, storage cloudinary.Client, mailer AccountMailer, jwt *config.JWTConfig, frontendURL string) *AuthService {
	return &AuthService{users: users, storage: storage, mailer: mailer, jwt: jwt, frontendURL: frontendURL}
}

// Register validates the signup, uploads the NIC (and optional profile)
// image, creates the account unverified and mails the activation link.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	for _, field := range []string{in.FullName, in.Email, in.Mobile, in.Gender, in.Password, in.NICNumber, in.Address} {
		if strings.TrimSpace(field) == "" {
			return nil, ErrMissingRequiredFields
		}
	}
	if !fullNameRe.MatchString(in.FullName) {
		return nil, ErrInvalidFullName
	}
	if !emailRe.MatchString(in.Email) {
		return nil, ErrInvalidEmail
	}
	if !mobileRe.MatchString(in.Mobile) {
		return nil, ErrInvalidMobile
	}
	if !nicRe.MatchString(in.NICNumber) {
		return nil, ErrInvalidNIC
	}
	if len(in.Address) > 255 {
		return nil, ErrAddressTooLong
	}
	if in.NICImage == nil {
		return nil, ErrMissingNICImage
	}

	email := strings.ToLower(in.Email)
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByNIC(in.NICNumber); err == nil {
		return nil, ErrNICExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	nicImage, err := s.storage.Upload(ctx, in.NICImage.Content, in.NICImage.Filename)
	if err != nil {
		return nil, fmt.Errorf("uploading NIC image: %w", err)
	}
	profileImageURL := ""
	if in.ProfileImage != nil {
		profileImage, err := s.storage.Upload(ctx, in.ProfileImage.Content, in.ProfileImage.Filename)
		if err != nil {
			log.Printf("[auth] Profile image upload failed: %v", err)
		} else {
			profileImageURL = profileImage.URL
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	verificationToken, hashedToken, err := newVerificationToken()
	if err != nil {
		return nil, err
	}
	expiry := time.Now().Add(time.Hour)

	user := &models.User{
		FullName:                strings.ToLower(in.FullName),
		Email:                   email,
		Gender:                  in.Gender,
		Mobile:                  in.Mobile,
		PasswordHash:            string(hash),
		NICNumber:               in.NICNumber,
		NICImageURL:             nicImage.URL,
		ProfileImageURL:         profileImageURL,
		Address:                 in.Address,
		Role:                    domain.RoleUser,
		EmailVerificationToken:  hashedToken,
		EmailVerificationExpiry: &expiry,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	verificationURL := fmt.Sprintf("%s/verify-email/%s", s.frontendURL, verificationToken)
	if err := s.mailer.SendAccountVerification(in.FullName, email, verificationURL); err != nil {
		log.Printf("[auth] Verification email to %s failed: %v", email, err)
	}

	return user, nil
}

// newVerificationToken returns a random token and the sha256 hash that is
// stored. Only the hash ever touches the database.
func newVerificationToken() (token, hashed string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(raw)
	sum := sha256.Sum256([]byte(token))
	return token, hex.EncodeToString(sum[:]), nil
}

// VerifyEmail activates the account matching the (hashed) token if it has not
// expired, clearing the token.
func (s *AuthService) VerifyEmail(token string) error {
	sum := sha256.Sum256([]byte(token))
	user, err := s.users.GetByVerificationToken(hex.EncodeToString(sum[:]))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVerifyToken
		}
		return err
	}
	if user.EmailVerificationExpiry == nil || user.EmailVerificationExpiry.Before(time.Now()) {
		return ErrInvalidVerifyToken
	}
	return s.users.UpdateFields(user.ID, map[string]interface{}{
		"is_email_verified":         true,
		"email_verification_token":  "",
		"email_verification_expiry": nil,
	})
}

// Login checks the credentials, stores the latest device token if one came
// with the request, issues a token pair and records the new refresh token.
func (s *AuthService) Login(email, password, fcmToken string) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if fcmToken != "" {
		user.FCMToken = fcmToken
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.mailer.SendLoginSuccess(user.FullName, user.Email); err != nil {
		log.Printf("[auth] Login email to %s failed: %v", user.Email, err)
	}

	return user, pair, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := auth.GenerateAccessToken(s.jwt, user.ID, user.Email, user.FullName, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := auth.GenerateRefreshToken(s.jwt, user.ID)
	if err != nil {
		return nil, err
	}
	user.RefreshToken = refreshToken
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh rotates the token pair. The presented refresh token must both
// verify and match the one stored for the user, so a rotated-out token is
// rejected even before it expires.
func (s *AuthService) Refresh(refreshToken string) (*models.User, *TokenPair, error) {
	userID, err := auth.ParseSubjectToken(s.jwt.RefreshSecret, refreshToken)
	if err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidRefreshToken
		}
		return nil, nil, err
	}
	if user.RefreshToken != refreshToken {
		return nil, nil, ErrInvalidRefreshToken
	}
	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// ForgotPassword issues a short-lived reset token, stores it and mails the
// reset link. The caller learns nothing beyond success.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.users.GetByEmail(strings.ToLower(email))
	if err != nil {
		return err
	}
	resetToken, err := auth.GenerateResetToken(s.jwt, user.ID)
	if err != nil {
		return err
	}
	expiry := time.Now().Add(time.Hour)
	if err := s.users.UpdateFields(user.ID, map[string]interface{}{
		"reset_password_token":  resetToken,
		"reset_password_expiry": expiry,
	}); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, resetToken)
	if err := s.mailer.SendPasswordReset(user.FullName, user.Email, resetURL); err != nil {
		log.Printf("[auth] Reset email to %s failed: %v", user.Email, err)
	}
	return nil
}

// ResetPassword sets a new password if the token verifies, matches the stored
// one and has not expired. The refresh token is cleared so open sessions die.
func (s *AuthService) ResetPassword(token, password string) error {
	userID, err := auth.ParseSubjectToken(s.jwt.AccessSecret, token)
	if err != nil {
		return ErrInvalidResetToken
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if user.ResetPasswordToken != token || user.ResetPasswordExpiry == nil || user.ResetPasswordExpiry.Before(time.Now()) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdateFields(user.ID, map[string]interface{}{
		"password_hash":         string(hash),
		"reset_password_token":  "",
		"reset_password_expiry": nil,
		"refresh_token":         "",
	}); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordChanged(user.FullName, user.Email); err != nil {
		log.Printf("[auth] Password-change email to %s failed: %v", user.Email, err)
	}
	return nil
}

// UpdateFCMToken stores the latest device push token for the user.
func (s *AuthService) UpdateFCMToken(userID uint, fcmToken string) error {
	if fcmToken == "" {
		return ErrMissingRequiredFields
	}
	if _, err := s.users.GetByID(userID); err != nil {
		return err
	}
	return s.users.UpdateFields(userID, map[string]interface{}{"fcm_token": fcmToken})
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crimegpt/config"
	"crimegpt/internal/auth"
	"crimegpt/internal/repository"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  24 * time.Hour,
		RefreshExpiry: 30 * 24 * time.Hour,
		Issuer:        "crimegpt",
	}
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeMailer, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	mailer := &fakeMailer{}
	svc := NewAuthService(repository.NewUserRepository(db), &fakeStorage{}, mailer, testJWTConfig(), "https://app.crimegpt.test")
	return svc, mailer, db
}

func validRegistration() RegisterInput {
	return RegisterInput{
		FullName:  "Ahmed Khan",
		Email:     "Ahmed.Khan@crimegpt.test",
		Mobile:    "+923001234567",
		Gender:    "male",
		Password:  "secret123",
		NICNumber: "45203-9876543-1",
		Address:   "Street 4, Nawabshah",
		NICImage:  upload("nic.jpg", "jpg-bytes"),
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	cases := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{"missing email", func(in *RegisterInput) { in.Email = "" }, ErrMissingRequiredFields},
		{"digits in name", func(in *RegisterInput) { in.FullName = "Ahmed 2nd" }, ErrInvalidFullName},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
		{"foreign mobile", func(in *RegisterInput) { in.Mobile = "+14155550123" }, ErrInvalidMobile},
		{"short nic", func(in *RegisterInput) { in.NICNumber = "45203-98765-1" }, ErrInvalidNIC},
		{"long address", func(in *RegisterInput) { in.Address = strings.Repeat("a", 256) }, ErrAddressTooLong},
		{"no nic image", func(in *RegisterInput) { in.NICImage = nil }, ErrMissingNICImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegistration()
			tc.mutate(&in)
			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRegisterAndVerifyEmail(t *testing.T) {
	svc, mailer, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "ahmed khan", user.FullName, "name is stored lowercased")
	assert.Equal(t, "ahmed.khan@crimegpt.test", user.Email)
	assert.False(t, user.IsEmailVerified)
	assert.NotEmpty(t, user.EmailVerificationToken)

	require.Len(t, mailer.verificationURLs, 1)
	url := mailer.verificationURLs[0]
	require.Contains(t, url, "https://app.crimegpt.test/verify-email/")
	token := url[strings.LastIndex(url, "/")+1:]
	assert.NotEqual(t, token, user.EmailVerificationToken, "only the hash is stored")

	require.NoError(t, svc.VerifyEmail(token))

	// The token is single use.
	assert.ErrorIs(t, svc.VerifyEmail(token), ErrInvalidVerifyToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	dup := validRegistration()
	dup.NICNumber = "45203-1111111-1"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc, mailer, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, _, err = svc.Login("ahmed.khan@crimegpt.test", "wrong-password", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@crimegpt.test", "secret123", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, pair, err := svc.Login("Ahmed.Khan@crimegpt.test", "secret123", "device-token-1")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, "device-token-1", user.FCMToken, "latest device token wins")
	assert.Equal(t, pair.RefreshToken, user.RefreshToken)
	assert.Equal(t, []string{"ahmed.khan@crimegpt.test"}, mailer.logins)

	claims, err := auth.ParseAccessToken(testJWTConfig(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestRefreshRejectsUnstoredToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// Signed correctly, but never stored for the user.
	forged, err := auth.GenerateRefreshToken(testJWTConfig(), user.ID)
	require.NoError(t, err)
	_, _, err = svc.Refresh(forged)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, _, err = svc.Refresh("garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRotatesPair(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	_, pair, err := svc.Login("ahmed.khan@crimegpt.test", "secret123", "")
	require.NoError(t, err)

	user, next, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, next.RefreshToken, user.RefreshToken, "the stored token follows the rotation")

	claims, err := auth.ParseAccessToken(testJWTConfig(), next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, mailer, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword("ahmed.khan@crimegpt.test"))
	require.Len(t, mailer.resetURLs, 1)
	url := mailer.resetURLs[0]
	require.Contains(t, url, "https://app.crimegpt.test/reset-password/")
	token := url[strings.LastIndex(url, "/")+1:]

	require.NoError(t, svc.ResetPassword(token, "brand-new-pass"))
	assert.Equal(t, []string{"ahmed.khan@crimegpt.test"}, mailer.passwordChanges)

	_, _, err = svc.Login("ahmed.khan@crimegpt.test", "secret123", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("ahmed.khan@crimegpt.test", "brand-new-pass", "")
	require.NoError(t, err)

	// The token is single use.
	assert.ErrorIs(t, svc.ResetPassword(token, "another-pass"), ErrInvalidResetToken)
}

func TestResetPasswordRejectsForeignToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// Right shape, but never issued through ForgotPassword.
	token, err := auth.GenerateResetToken(testJWTConfig(), user.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ResetPassword(token, "x"), ErrInvalidResetToken)
}

func TestUpdateFCMToken(t *testing.T) {
	svc, _, db := newAuthFixture(t)
	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateFCMToken(user.ID, ""), ErrMissingRequiredFields)
	require.NoError(t, svc.UpdateFCMToken(user.ID, "device-token-2"))

	stored, err := repository.NewUserRepository(db).GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "device-token-2", stored.FCMToken)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"crimegpt/internal/domain"
	"crimegpt/internal/models"
	"crimegpt/internal/repository"
)

var (
	// ErrInvalidRecipientClass means the recipient type is not 'user',
	// 'admin' or 'both'.
	ErrInvalidRecipientClass = errors.New("recipient type must be one of 'user', 'admin' or 'both'")
	// ErrMissingTarget means no device token is available for the selected
	// recipient class.
	ErrMissingTarget = errors.New("no device tokens available for the selected recipients")
)

// Dispatch describes one notification to persist and push.
type Dispatch struct {
	UserID        uint
	UserToken     string
	AdminTokens   []string
	Title         string
	Body          string
	ImageURL      string
	ReportID      *uint
	CaseNumber    string
	Severity      string
	RecipientType string
}

// DeliveryResult is what a successful dispatch returns. The persisted record
// is guaranteed; push delivery is best effort, and a delivery problem shows up
// as a warning instead of an error.
type DeliveryResult struct {
	Notification    *models.Notification
	DeliveryWarning string
}

// NotificationService persists notification records and fans them out over
// the push gateway.
type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	push     PushGateway
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, push PushGateway) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, push: push}
}

// Dispatch validates the recipient class, writes the notification record and
// then attempts a single multicast push to the matching tokens. The record is
// written before any delivery attempt; a failed push never rolls it back and
// never fails the caller.
func (s *NotificationService) Dispatch(ctx context.Context, d Dispatch) (*DeliveryResult, error) {
	var tokens []string
	switch d.RecipientType {
	case domain.RecipientUser:
		tokens = compactTokens(d.UserToken)
	case domain.RecipientAdmin:
		tokens = compactTokens(d.AdminTokens...)
	case domain.RecipientBoth:
		tokens = compactTokens(append([]string{d.UserToken}, d.AdminTokens...)...)
	default:
		return nil, ErrInvalidRecipientClass
	}
	if len(tokens) == 0 {
		return nil, ErrMissingTarget
	}

	severity := d.Severity
	if severity == "" {
		severity = domain.SeverityLow
	}

	n := &models.Notification{
		UserID:        d.UserID,
		ReportID:      d.ReportID,
		CaseNumber:    d.CaseNumber,
		Title:         d.Title,
		Body:          d.Body,
		ImageURL:      d.ImageURL,
		SeverityLevel: severity,
		RecipientType: d.RecipientType,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, fmt.Errorf("persisting notification: %w", err)
	}

	result := &DeliveryResult{Notification: n}
	data := map[string]string{
		"caseNumber": d.CaseNumber,
		"severity":   severity,
	}
	if err := s.push.SendMulticast(ctx, tokens, d.Title, d.Body, data); err != nil {
		log.Printf("[notify] Push delivery failed for case %s: %v", d.CaseNumber, err)
		result.DeliveryWarning = "push delivery failed, notification recorded"
	}
	return result, nil
}

// AdminTokens fetches the push tokens of every admin account. Always a live
// query so freshly registered admin devices are picked up immediately.
func (s *NotificationService) AdminTokens() []string {
	tokens, err := s.userRepo.AdminFCMTokens()
	if err != nil {
		log.Printf("[notify] Failed to load admin tokens: %v", err)
		return nil
	}
	return tokens
}

func compactTokens(tokens ...string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

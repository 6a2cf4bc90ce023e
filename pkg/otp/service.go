package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/startupvista/verify/pkg/notification"
)

// VerificationService orchestrates the generate/verify state machine on
// top of a RecordRepository and the notification stack.
type VerificationService struct {
	repo                RecordRepository
	notificationManager *notification.NotificationManager
	codeExpiry          time.Duration
	attemptLimit        int32
	now                 func() time.Time
}

// VerificationServiceOption defines configuration options
type VerificationServiceOption func(*VerificationService)

// WithCodeExpiry sets how long an issued code stays valid
func WithCodeExpiry(expiry time.Duration) VerificationServiceOption {
	return func(s *VerificationService) {
		s.codeExpiry = expiry
	}
}

// WithAttemptLimit sets the ceiling of tolerated wrong guesses per code
func WithAttemptLimit(limit int32) VerificationServiceOption {
	return func(s *VerificationService) {
		s.attemptLimit = limit
	}
}

// WithNotificationManager sets the notification manager used to deliver codes
func WithNotificationManager(nm *notification.NotificationManager) VerificationServiceOption {
	return func(s *VerificationService) {
		s.notificationManager = nm
	}
}

// withClock overrides the time source in tests
func withClock(now func() time.Time) VerificationServiceOption {
	return func(s *VerificationService) {
		s.now = now
	}
}

// NewVerificationService creates a new verification service
func NewVerificationService(repo RecordRepository, opts ...VerificationServiceOption) *VerificationService {
	service := &VerificationService{
		repo:         repo,
		codeExpiry:   10 * time.Minute,
		attemptLimit: 3,
		now:          func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Generate issues a fresh code for the email, replacing any pending code,
// and delivers it by email. The code is never returned to the caller. If
// delivery fails the record is rolled back so a code the user never saw
// cannot linger until expiry.
func (s *VerificationService) Generate(ctx context.Context, email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	code, err := GenerateCode()
	if err != nil {
		slog.Error("Failed to generate verification code", "error", err)
		return err
	}

	now := s.now()
	record := &VerificationRecord{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.codeExpiry),
		Attempts:  0,
		CreatedAt: now,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		slog.Error("Failed to store verification record", "email", email, "error", err)
		return fmt.Errorf("failed to store verification record: %w", err)
	}

	if err := s.sendCodeEmail(email, code); err != nil {
		slog.Error("Failed to send verification code", "email", email, "error", err)
		if delErr := s.repo.Delete(ctx, email); delErr != nil {
			slog.Error("Failed to roll back verification record", "email", email, "error", delErr)
		}
		return ErrDeliveryFailed
	}

	slog.Info("Verification code issued", "email", email, "record_id", record.ID, "expires_at", record.ExpiresAt)
	return nil
}

// Verify checks the submitted code against the pending record. Expired
// and locked records are deleted on the spot; a matching code is
// one-time use and deletes the record as well.
func (s *VerificationService) Verify(ctx context.Context, email, submittedCode string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if submittedCode == "" {
		return ErrCodeRequired
	}

	record, err := s.repo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		slog.Error("Failed to load verification record", "email", email, "error", err)
		return fmt.Errorf("failed to load verification record: %w", err)
	}

	if s.now().After(record.ExpiresAt) {
		slog.Info("Verification code expired", "email", email, "expires_at", record.ExpiresAt)
		if err := s.repo.Delete(ctx, email); err != nil {
			slog.Error("Failed to delete expired record", "email", email, "error", err)
		}
		return ErrCodeExpired
	}

	// The ceiling is checked before the comparison, so a record tolerates
	// exactly attemptLimit wrong guesses and locks on the call after.
	if record.Attempts >= s.attemptLimit {
		slog.Warn("Verification attempt ceiling reached", "email", email, "attempts", record.Attempts)
		if err := s.repo.Delete(ctx, email); err != nil {
			slog.Error("Failed to delete locked record", "email", email, "error", err)
		}
		return ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(submittedCode), []byte(record.Code)) != 1 {
		attempts, err := s.repo.IncrementAttempts(ctx, email)
		if err != nil {
			slog.Error("Failed to record failed attempt", "email", email, "error", err)
		} else {
			slog.Info("Invalid verification code submitted", "email", email, "attempts", attempts)
		}
		return ErrInvalidCode
	}

	if err := s.repo.Delete(ctx, email); err != nil {
		slog.Error("Failed to delete verified record", "email", email, "error", err)
		return fmt.Errorf("failed to delete verification record: %w", err)
	}

	slog.Info("Email verified", "email", email)
	return nil
}

// DeleteExpired sweeps records whose expiry has passed. Expiry is always
// re-checked at read time, so this is storage hygiene only.
func (s *VerificationService) DeleteExpired(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		slog.Error("Failed to sweep expired verification records", "error", err)
		return 0, fmt.Errorf("failed to sweep expired verification records: %w", err)
	}

	if removed > 0 {
		slog.Info("Swept expired verification records", "removed", removed)
	}
	return removed, nil
}

// sendCodeEmail delivers the code through the notification manager
func (s *VerificationService) sendCodeEmail(email, code string) error {
	if s.notificationManager == nil {
		return fmt.Errorf("notification manager not configured")
	}

	data := notification.NotificationData{
		To: email,
		Data: map[string]string{
			"Code":          code,
			"ExpiryMinutes": fmt.Sprintf("%d", int(s.codeExpiry.Minutes())),
		},
	}

	return s.notificationManager.Send(notification.VerificationCode, notification.EmailSystem, data)
}

// Package otp implements the email verification protocol used during
// startup registration: a 6-digit one-time passcode is generated, stored
// against the email address, delivered out of band, and checked when the
// user echoes it back.
//
// # Overview
//
// The otp package provides:
//   - Cryptographically random 6-digit code generation
//   - One live verification record per email (regenerating replaces it)
//   - 10-minute code expiry, evaluated lazily at verification time
//   - A ceiling of 3 failed attempts before a record is invalidated
//   - One-time use: a successful verification deletes the record
//   - Repository pattern for PostgreSQL and in-memory storage
//
// # Basic Usage
//
//	repo := otp.NewRepository(pool)
//	service := otp.NewVerificationService(
//		repo,
//		otp.WithNotificationManager(notificationManager),
//		otp.WithCodeExpiry(10*time.Minute),
//	)
//
//	// Issue a code (also sends the email; never returns the code)
//	err := service.Generate(ctx, "founder@example.com")
//
//	// Check the code the user typed in
//	err = service.Verify(ctx, "founder@example.com", "492013")
//
// # Verification Lifecycle
//
// A record moves through PENDING (live, unexpired, attempts below the
// ceiling) to one of three terminal outcomes: verified (deleted on
// success), expired (deleted when touched after ExpiresAt), or locked
// (deleted once the attempt ceiling is hit). Calling Generate again at
// any point discards the old record and restarts the cycle, so a user can
// always request a fresh code.
//
// Failures are reported through the package sentinel errors
// (ErrRecordNotFound, ErrCodeExpired, ErrTooManyAttempts, ErrInvalidCode,
// ErrDeliveryFailed) and are safe to surface to end users verbatim.
//
// # Storage Hygiene
//
// Expiry is re-checked on every read, so no background cleanup is needed
// for correctness. Deployments that want tidy storage can run the sweep
// on a ticker:
//
//	go func() {
//		ticker := time.NewTicker(time.Hour)
//		for range ticker.C {
//			service.DeleteExpired(context.Background())
//		}
//	}()
package otp

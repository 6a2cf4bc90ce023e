package otp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VerificationRecord is the single persistent entity of the protocol: one
// pending code per email address.
type VerificationRecord struct {
	ID        uuid.UUID
	Email     string
	Code      string
	ExpiresAt time.Time
	Attempts  int32
	CreatedAt time.Time
}

// RecordRepository defines the keyed store holding verification records.
// Implementations must give last-write-wins semantics per email and an
// atomic failed-attempt increment.
type RecordRepository interface {
	// Upsert writes the record, totally replacing any existing record for
	// the same email.
	Upsert(ctx context.Context, record *VerificationRecord) error
	// Get returns the record for the email, or ErrRecordNotFound.
	Get(ctx context.Context, email string) (*VerificationRecord, error)
	// Delete removes the record for the email. Deleting an absent record
	// is not an error.
	Delete(ctx context.Context, email string) error
	// IncrementAttempts atomically bumps the failed-attempt counter and
	// returns the new value, or ErrRecordNotFound.
	IncrementAttempts(ctx context.Context, email string) (int32, error)
	// DeleteExpired removes records whose expiry has passed and reports
	// how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Repository implements RecordRepository on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL-backed verification record repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Upsert writes the record, replacing any prior record for the email
func (r *Repository) Upsert(ctx context.Context, record *VerificationRecord) error {
	query := `
		INSERT INTO verification_codes (id, email, code, expires_at, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET id = EXCLUDED.id,
		    code = EXCLUDED.code,
		    expires_at = EXCLUDED.expires_at,
		    attempts = EXCLUDED.attempts,
		    created_at = EXCLUDED.created_at
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.Email,
		record.Code,
		record.ExpiresAt,
		record.Attempts,
		record.CreatedAt,
	)
	return err
}

// Get retrieves the record for the email
func (r *Repository) Get(ctx context.Context, email string) (*VerificationRecord, error) {
	query := `
		SELECT id, email, code, expires_at, attempts, created_at
		FROM verification_codes
		WHERE email = $1
	`

	var rec VerificationRecord
	err := r.db.QueryRow(ctx, query, email).Scan(
		&rec.ID,
		&rec.Email,
		&rec.Code,
		&rec.ExpiresAt,
		&rec.Attempts,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &rec, nil
}

// Delete removes the record for the email
func (r *Repository) Delete(ctx context.Context, email string) error {
	query := `
		DELETE FROM verification_codes
		WHERE email = $1
	`

	_, err := r.db.Exec(ctx, query, email)
	return err
}

// IncrementAttempts bumps the failed-attempt counter as a single UPDATE,
// so concurrent wrong guesses cannot under-count.
func (r *Repository) IncrementAttempts(ctx context.Context, email string) (int32, error) {
	query := `
		UPDATE verification_codes
		SET attempts = attempts + 1
		WHERE email = $1
		RETURNING attempts
	`

	var attempts int32
	err := r.db.QueryRow(ctx, query, email).Scan(&attempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrRecordNotFound
		}
		return 0, err
	}

	return attempts, nil
}

// DeleteExpired removes records whose expiry has passed
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM verification_codes
		WHERE expires_at < $1
	`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

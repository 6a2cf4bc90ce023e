package otp

import (
	"context"
	"sync"
	"time"
)

// InMemRecordRepository implements RecordRepository with a process-local
// map. Data does not survive a restart and the store cannot be shared
// across instances, so it is only suitable for single-process deployments
// and tests.
type InMemRecordRepository struct {
	mutex   sync.RWMutex
	records map[string]*VerificationRecord // key: email
}

// NewInMemRecordRepository creates a new in-memory verification record repository
func NewInMemRecordRepository() *InMemRecordRepository {
	return &InMemRecordRepository{
		records: make(map[string]*VerificationRecord),
	}
}

// Upsert writes the record, replacing any prior record for the email
func (r *InMemRecordRepository) Upsert(ctx context.Context, record *VerificationRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	recCopy := *record
	r.records[record.Email] = &recCopy
	return nil
}

// Get retrieves a copy of the record for the email
func (r *InMemRecordRepository) Get(ctx context.Context, email string) (*VerificationRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rec, exists := r.records[email]
	if !exists {
		return nil, ErrRecordNotFound
	}

	recCopy := *rec
	return &recCopy, nil
}

// Delete removes the record for the email
func (r *InMemRecordRepository) Delete(ctx context.Context, email string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.records, email)
	return nil
}

// IncrementAttempts bumps the failed-attempt counter under the write lock
func (r *InMemRecordRepository) IncrementAttempts(ctx context.Context, email string) (int32, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	rec, exists := r.records[email]
	if !exists {
		return 0, ErrRecordNotFound
	}

	rec.Attempts++
	return rec.Attempts, nil
}

// DeleteExpired removes records whose expiry has passed
func (r *InMemRecordRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var removed int64
	for email, rec := range r.records {
		if now.After(rec.ExpiresAt) {
			delete(r.records, email)
			removed++
		}
	}

	return removed, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nileshnishad/laboursampark-backend/internal/domain/entities"
)

// UserRepository defines user data operations. Partial updates are
// field-level: concurrent writers to the same record rely on the store's
// single-row update atomicity, not on application locking.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	// GetByEmailOrMobile resolves a user matching either identifier; empty
	// arguments are skipped.
	GetByEmailOrMobile(ctx context.Context, email, mobile string) (*entities.User, error)
	// UpdateFields applies a partial update keyed by JSON field names.
	// Unknown keys are ignored.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	SetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	// ConsumeOTP clears the one-time code and marks the email verified.
	ConsumeOTP(ctx context.Context, id uuid.UUID) error
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

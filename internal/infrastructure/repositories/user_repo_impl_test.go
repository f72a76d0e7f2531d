package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nileshnishad/laboursampark-backend/internal/domain/entities"
	domainerrors "github.com/nileshnishad/laboursampark-backend/internal/domain/errors"
)

func seedUser(t *testing.T, repo *UserRepository, email, mobile string) *entities.User {
	t.Helper()
	u := &entities.User{
		FullName:     "Ravi Kumar",
		Email:        email,
		Mobile:       mobile,
		PasswordHash: "hash",
		UserType:     entities.UserTypeLabour,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_CreateAssignsID(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	u := seedUser(t, repo, "a@example.com", "9000000001")
	require.NotEqual(t, uuid.Nil, u.ID)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	seedUser(t, repo, "a@example.com", "9000000001")

	dup := &entities.User{
		FullName:     "Other",
		Email:        "a@example.com",
		Mobile:       "9000000002",
		PasswordHash: "hash",
		UserType:     entities.UserTypeContractor,
	}
	require.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrAlreadyExists)
}

func TestUserRepository_CreateDuplicateMobile(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	seedUser(t, repo, "a@example.com", "9000000001")

	dup := &entities.User{
		FullName:     "Other",
		Email:        "b@example.com",
		Mobile:       "9000000001",
		PasswordHash: "hash",
		UserType:     entities.UserTypeContractor,
	}
	require.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrAlreadyExists)
}

func TestUserRepository_GetByEmailOrMobile(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := seedUser(t, repo, "a@example.com", "9000000001")

	byEmail, err := repo.GetByEmailOrMobile(ctx, "a@example.com", "")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byMobile, err := repo.GetByEmailOrMobile(ctx, "", "9000000001")
	require.NoError(t, err)
	require.Equal(t, u.ID, byMobile.ID)

	byEither, err := repo.GetByEmailOrMobile(ctx, "nope@example.com", "9000000001")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEither.ID)

	_, err = repo.GetByEmailOrMobile(ctx, "nope@example.com", "9999999999")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmailOrMobile(ctx, "", "")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_UpdateFields_PartialMerge(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := seedUser(t, repo, "a@example.com", "9000000001")

	err := repo.UpdateFields(ctx, u.ID, map[string]interface{}{
		"bio":        "Twenty years of pipe fitting",
		"hourlyRate": 450.0,
		"skills":     []interface{}{"plumbing", "welding"},
		"location":   map[string]interface{}{"city": "Pune", "state": "MH"},
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Twenty years of pipe fitting", got.Bio)
	require.Equal(t, 450.0, got.HourlyRate)
	require.Equal(t, []string{"plumbing", "welding"}, got.Skills)
	require.NotNil(t, got.Location)
	require.Equal(t, "Pune", got.Location.City)

	// untouched fields survive
	require.Equal(t, "Ravi Kumar", got.FullName)
	require.Equal(t, "a@example.com", got.Email)
}

func TestUserRepository_UpdateFields_DropsUnknownKeys(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := seedUser(t, repo, "a@example.com", "9000000001")

	err := repo.UpdateFields(ctx, u.ID, map[string]interface{}{
		"bio":          "kept",
		"email":        "hijack@example.com",
		"passwordHash": "hijack",
		"nonsense":     42,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "kept", got.Bio)
	require.Equal(t, "a@example.com", got.Email)
	require.Equal(t, "hash", got.PasswordHash)
}

func TestUserRepository_UpdateFields_UnknownUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	err := repo.UpdateFields(context.Background(), uuid.New(), map[string]interface{}{
		"bio": "ghost",
	})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_OTPLifecycle(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := seedUser(t, repo, "a@example.com", "9000000001")

	expiry := time.Now().Add(10 * time.Minute)
	require.NoError(t, repo.SetOTP(ctx, u.ID, "123456", expiry))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.OTPCode.Valid)
	require.Equal(t, "123456", got.OTPCode.String)
	require.True(t, got.OTPExpiry.Valid)

	require.NoError(t, repo.ConsumeOTP(ctx, u.ID))

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.OTPCode.Valid)
	require.False(t, got.OTPExpiry.Valid)
	require.True(t, got.EmailVerified)
}

func TestUserRepository_RecordLoginAndPassword(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := seedUser(t, repo, "a@example.com", "9000000001")

	at := time.Now()
	require.NoError(t, repo.RecordLogin(ctx, u.ID, at))
	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "hash2"))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.LastLogin.Valid)
	require.Equal(t, "hash2", got.PasswordHash)

	require.ErrorIs(t, repo.RecordLogin(ctx, uuid.New(), at), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdatePassword(ctx, uuid.New(), "x"), domainerrors.ErrNotFound)
}

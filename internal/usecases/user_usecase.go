package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/nileshnishad/laboursampark-backend/internal/domain/entities"
	domainerrors "github.com/nileshnishad/laboursampark-backend/internal/domain/errors"
	"github.com/nileshnishad/laboursampark-backend/internal/domain/repositories"
	"github.com/nileshnishad/laboursampark-backend/pkg/crypto"
	"github.com/nileshnishad/laboursampark-backend/pkg/jwt"
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// restrictedUpdateFields are silently dropped from profile update payloads:
// identity, secrets and immutable fields.
var restrictedUpdateFields = []string{
	"id",
	"passwordHash",
	"resetPasswordToken",
	"resetPasswordExpire",
	"otpCode",
	"otpExpiry",
	"email",
	"mobile",
	"documents",
	"createdAt",
	"updatedAt",
}

// numericUpdateFields must hold a number when present in an update payload
var numericUpdateFields = []string{
	"rating",
	"totalReviews",
	"completedJobs",
	"hourlyRate",
	"dayRate",
	"projectRate",
	"minimumJobValue",
	"serviceRadius",
	"averageResponseTime",
	"acceptanceRate",
	"cancellationRate",
	"onTimeCompletionRate",
	"totalEarnings",
	"pendingEarnings",
	"withdrawnEarnings",
	"referralCount",
}

// booleanUpdateFields must hold a boolean when present in an update payload
var booleanUpdateFields = []string{
	"display",
	"isVerified",
	"emailVerified",
	"mobileVerified",
	"aadharVerified",
	"panVerified",
	"licenseVerified",
	"isOnline",
	"availability",
	"termsAgreed",
}

// UserUsecase handles registration, login and profile business logic
type UserUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	otpExpiry  time.Duration
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService, otpExpiry time.Duration) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		otpExpiry:  otpExpiry,
	}
}

// Register validates and creates a new user. All validation failures are
// reported before any store write; the returned token is issued for the
// fresh account.
func (u *UserUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, string, error) {
	if input.FullName == "" || input.Email == "" || input.Password == "" || input.Mobile == "" || input.UserType == "" {
		return nil, "", domainerrors.BadRequest("Please provide all required fields: fullName, email, password, mobile, userType")
	}

	if !emailRegex.MatchString(input.Email) {
		return nil, "", domainerrors.BadRequest("Please provide a valid email address")
	}

	if len(input.Password) < minPasswordLength {
		return nil, "", domainerrors.BadRequest("Password must be at least 6 characters long")
	}

	userType, ok := entities.ParseUserType(input.UserType)
	if !ok {
		return nil, "", domainerrors.BadRequest("userType must be either 'labour' or 'contractor'")
	}

	// Uniqueness lookup; the store's unique indexes remain the safety net
	// for two registrations racing past this check.
	_, err := u.userRepo.GetByEmailOrMobile(ctx, input.Email, input.Mobile)
	if err == nil {
		return nil, "", domainerrors.Conflict("User with this email or mobile number already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, "", err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &entities.User{
		FullName:     input.FullName,
		Email:        input.Email,
		Mobile:       input.Mobile,
		PasswordHash: passwordHash,
		UserType:     userType,
		Profile:      input.Profile,
	}
	if user.Status == "" {
		user.Status = string(entities.UserStatusActive)
	}
	if user.WorkingHours == "" {
		user.WorkingHours = "flexible"
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, "", domainerrors.Conflict("User with this email or mobile number already exists")
		}
		return nil, "", err
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, user.Mobile, string(user.UserType))
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login resolves a user by email or mobile and authenticates with either a
// password or a one-time code. A supplied password always wins over an OTP.
func (u *UserUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	if input.Email == "" && input.Mobile == "" {
		return nil, domainerrors.BadRequest("Please provide either email or mobile number")
	}

	if input.Password == "" && input.OTP == "" {
		return nil, domainerrors.BadRequest("Please provide either password or OTP")
	}

	var hint entities.UserType
	if input.UserType != "" {
		var ok bool
		hint, ok = entities.ParseUserType(input.UserType)
		if !ok {
			return nil, domainerrors.BadRequest("userType must be either 'labour' or 'contractor'")
		}
	}

	user, err := u.userRepo.GetByEmailOrMobile(ctx, input.Email, input.Mobile)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// Deliberately generic: does not confirm which identifier was wrong.
			return nil, domainerrors.Unauthorized("User not found. Please check your email/mobile and try again")
		}
		return nil, err
	}

	if hint != "" && user.UserType != hint {
		return nil, domainerrors.Forbidden(fmt.Sprintf(
			"This account is registered as '%s', but you're trying to login as '%s'", user.UserType, hint))
	}

	if input.Password != "" {
		if !crypto.CheckPassword(input.Password, user.PasswordHash) {
			return nil, domainerrors.NewAppError(http.StatusUnauthorized, "Invalid password", domainerrors.ErrInvalidCredentials)
		}
	} else {
		if !user.OTPCode.Valid || user.OTPCode.String != input.OTP {
			return nil, domainerrors.NewAppError(http.StatusUnauthorized, "Invalid OTP", domainerrors.ErrInvalidCredentials)
		}
		if user.OTPExpiry.Valid && time.Now().After(user.OTPExpiry.Time) {
			return nil, domainerrors.NewAppError(http.StatusUnauthorized, "OTP has expired. Please request a new one", domainerrors.ErrOTPExpired)
		}
		if err := u.userRepo.ConsumeOTP(ctx, user.ID); err != nil {
			return nil, err
		}
		user.OTPCode = null.String{}
		user.OTPExpiry = null.Time{}
		user.EmailVerified = true
	}

	now := time.Now()
	if err := u.userRepo.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = null.TimeFrom(now)

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, user.Mobile, string(user.UserType))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		User:  user,
		Token: token,
	}, nil
}

// GetProfile fetches a user by ID
func (u *UserUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a restricted, type-checked partial update. Identity
// and secret fields are stripped; email, mobile and password keys are
// rejected outright.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, payload map[string]interface{}) (*entities.User, error) {
	if _, ok := payload["email"]; ok {
		return nil, domainerrors.BadRequest("Email cannot be updated. Please contact support to change your registered email")
	}
	if _, ok := payload["mobile"]; ok {
		return nil, domainerrors.BadRequest("Mobile number cannot be updated. Please contact support to change your registered mobile")
	}

	for _, field := range restrictedUpdateFields {
		delete(payload, field)
	}

	if _, ok := payload["password"]; ok {
		return nil, domainerrors.BadRequest("Password cannot be updated here. Please use the change-password endpoint")
	}

	if problems := validateProfilePayload(payload); len(problems) > 0 {
		return nil, domainerrors.BadRequest("Validation failed: " + strings.Join(problems, "; "))
	}

	if userType, ok := payload["userType"].(string); ok {
		payload["userType"] = strings.ToLower(userType)
	}

	if err := u.userRepo.UpdateFields(ctx, userID, payload); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}

	return u.GetProfile(ctx, userID)
}

// validateProfilePayload type-checks an update payload and aggregates every
// problem found into a list of human-readable messages.
func validateProfilePayload(payload map[string]interface{}) []string {
	var problems []string

	if value, ok := payload["age"]; ok {
		age, isNumber := asNumber(value)
		switch {
		case !isNumber:
			problems = append(problems, "age must be a number")
		case age < 0:
			problems = append(problems, "age must be a non-negative number")
		}
	}

	for _, field := range numericUpdateFields {
		if value, ok := payload[field]; ok {
			if _, isNumber := asNumber(value); !isNumber {
				problems = append(problems, field+" must be a number")
			}
		}
	}

	for _, field := range booleanUpdateFields {
		if value, ok := payload[field]; ok {
			if _, isBool := value.(bool); !isBool {
				problems = append(problems, field+" must be a boolean")
			}
		}
	}

	if value, ok := payload["status"]; ok {
		status, isString := value.(string)
		if !isString || !entities.ValidUserStatus(status) {
			problems = append(problems, "status must be one of: active, inactive, blocked, suspended")
		}
	}

	if value, ok := payload["userType"]; ok {
		userType, isString := value.(string)
		if !isString {
			problems = append(problems, "userType must be either 'labour' or 'contractor'")
		} else if _, valid := entities.ParseUserType(userType); !valid {
			problems = append(problems, "userType must be either 'labour' or 'contractor'")
		}
	}

	return problems
}

// asNumber accepts the numeric shapes a decoded JSON payload can carry
func asNumber(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ChangePassword verifies the current password and replaces it with a newly
// hashed one. The new password follows the same length policy as
// registration.
func (u *UserUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return domainerrors.BadRequest("Please provide currentPassword and newPassword")
	}
	if len(input.NewPassword) < minPasswordLength {
		return domainerrors.BadRequest("Password must be at least 6 characters long")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.NewAppError(http.StatusUnauthorized, "Current password is incorrect", domainerrors.ErrInvalidCredentials)
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(ctx, userID, passwordHash)
}

// RequestOTP generates a one-time login code for the user matching the
// supplied identifier and stores it with an expiry. Delivery is handled
// externally; the code is returned so the caller can hand it off.
func (u *UserUsecase) RequestOTP(ctx context.Context, input *entities.RequestOTPInput) (string, error) {
	if input.Email == "" && input.Mobile == "" {
		return "", domainerrors.BadRequest("Please provide either email or mobile number")
	}

	user, err := u.userRepo.GetByEmailOrMobile(ctx, input.Email, input.Mobile)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("User not found")
		}
		return "", err
	}

	code, err := crypto.GenerateOTP()
	if err != nil {
		return "", err
	}

	if err := u.userRepo.SetOTP(ctx, user.ID, code, time.Now().Add(u.otpExpiry)); err != nil {
		return "", err
	}

	return code, nil
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nileshnishad/laboursampark-backend/internal/domain/entities"
	domainerrors "github.com/nileshnishad/laboursampark-backend/internal/domain/errors"
	"github.com/nileshnishad/laboursampark-backend/pkg/utils"
)

// userColumnByJSON maps updatable JSON field names to their columns. Keys
// absent from this map are silently dropped by UpdateFields; identity,
// secret and immutable fields are deliberately not listed.
var userColumnByJSON = map[string]string{
	"fullName":               "full_name",
	"userType":               "user_type",
	"age":                    "age",
	"experience":             "experience",
	"experienceRange":        "experience_range",
	"bio":                    "bio",
	"about":                  "about",
	"teamSize":               "team_size",
	"skills":                 "skills",
	"coverageArea":           "coverage_area",
	"servicesOffered":        "services_offered",
	"serviceCover":           "service_cover",
	"workTypes":              "work_types",
	"serviceCategories":      "service_categories",
	"preferredLanguages":     "preferred_languages",
	"businessType":           "business_type",
	"workingHours":           "working_hours",
	"location":               "location",
	"serviceRadius":          "service_radius",
	"profilePhotoUrl":        "profile_photo_url",
	"status":                 "status",
	"display":                "display",
	"isVerified":             "is_verified",
	"emailVerified":          "email_verified",
	"mobileVerified":         "mobile_verified",
	"aadharVerified":         "aadhar_verified",
	"panVerified":            "pan_verified",
	"licenseVerified":        "license_verified",
	"isOnline":               "is_online",
	"availability":           "availability",
	"termsAgreed":            "terms_agreed",
	"rating":                 "rating",
	"totalReviews":           "total_reviews",
	"completedJobs":          "completed_jobs",
	"companyName":            "company_name",
	"aboutCompany":           "about_company",
	"gstNumber":              "gst_number",
	"registrationNumber":     "registration_number",
	"companyLogoUrl":         "company_logo_url",
	"businessLicenseUrl":     "business_license_url",
	"aadharNumber":           "aadhar_number",
	"businessName":           "business_name",
	"panNumber":              "pan_number",
	"bankDetails":            "bank_details",
	"hourlyRate":             "hourly_rate",
	"dayRate":                "day_rate",
	"projectRate":            "project_rate",
	"minimumJobValue":        "minimum_job_value",
	"preferredContactMethod": "preferred_contact_method",
	"portfolioProjects":      "portfolio_projects",
	"certifications":         "certifications",
	"averageResponseTime":    "average_response_time",
	"acceptanceRate":         "acceptance_rate",
	"cancellationRate":       "cancellation_rate",
	"onTimeCompletionRate":   "on_time_completion_rate",
	"totalEarnings":          "total_earnings",
	"pendingEarnings":        "pending_earnings",
	"withdrawnEarnings":      "withdrawn_earnings",
	"insuranceDetails":       "insurance_details",
	"subscriptionPlan":       "subscription_plan",
	"planStartDate":          "plan_start_date",
	"planExpiryDate":         "plan_expiry_date",
	"socialLinks":            "social_links",
	"referralCode":           "referral_code",
	"referralCount":          "referral_count",
	"emergencyContact":       "emergency_contact",
}

// jsonColumns are stored as JSON-serialized text; arbitrary payload values
// destined for these columns are marshaled before the update.
var jsonColumns = map[string]bool{
	"skills":              true,
	"coverage_area":       true,
	"services_offered":    true,
	"service_cover":       true,
	"work_types":          true,
	"service_categories":  true,
	"preferred_languages": true,
	"business_type":       true,
	"location":            true,
	"bank_details":        true,
	"portfolio_projects":  true,
	"certifications":      true,
	"insurance_details":   true,
	"social_links":        true,
	"emergency_contact":   true,
}

// UserRepository implements user data operations on GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. The unique indexes on email and mobile are the
// safety net against two registrations racing past the usecase's lookup.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmailOrMobile resolves a user by whichever identifiers are supplied
func (r *UserRepository) GetByEmailOrMobile(ctx context.Context, email, mobile string) (*entities.User, error) {
	query := r.db.WithContext(ctx)
	switch {
	case email != "" && mobile != "":
		query = query.Where("email = ? OR mobile = ?", email, mobile)
	case email != "":
		query = query.Where("email = ?", email)
	case mobile != "":
		query = query.Where("mobile = ?", mobile)
	default:
		return nil, domainerrors.ErrNotFound
	}

	var user entities.User
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateFields applies a partial update keyed by JSON field names. Only the
// supplied fields are touched; keys without a known column are dropped.
func (r *UserRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	for key, value := range fields {
		column, ok := userColumnByJSON[key]
		if !ok {
			continue
		}
		if jsonColumns[column] && value != nil {
			raw, err := json.Marshal(value)
			if err != nil {
				return err
			}
			updates[column] = string(raw)
		} else {
			updates[column] = value
		}
	}

	result := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetOTP stores a one-time code with its expiry
func (r *UserRepository) SetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"otp_code":   code,
		"otp_expiry": expiresAt,
	})
}

// ConsumeOTP clears the one-time code and marks the email verified
func (r *UserRepository) ConsumeOTP(ctx context.Context, id uuid.UUID) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"otp_code":       nil,
		"otp_expiry":     nil,
		"email_verified": true,
	})
}

// RecordLogin stamps the last successful login
func (r *UserRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"last_login": at,
	})
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"password_hash": passwordHash,
	})
}

func (r *UserRepository) updateColumns(ctx context.Context, id uuid.UUID, columns map[string]interface{}) error {
	columns["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// UserType represents the two account types of the marketplace
type UserType string

const (
	UserTypeLabour     UserType = "labour"
	UserTypeContractor UserType = "contractor"
)

// ParseUserType normalizes and validates a user type string
func ParseUserType(s string) (UserType, bool) {
	switch UserType(strings.ToLower(s)) {
	case UserTypeLabour:
		return UserTypeLabour, true
	case UserTypeContractor:
		return UserTypeContractor, true
	}
	return "", false
}

// UserStatus represents the account status
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusBlocked   UserStatus = "blocked"
	UserStatusSuspended UserStatus = "suspended"
)

// ValidUserStatus reports whether s is one of the enumerated statuses
func ValidUserStatus(s string) bool {
	switch UserStatus(s) {
	case UserStatusActive, UserStatusInactive, UserStatusBlocked, UserStatusSuspended:
		return true
	}
	return false
}

// Location holds the user's address details
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	Address string `json:"address,omitempty"`
}

// BankDetails holds payout account information
type BankDetails struct {
	AccountHolderName string `json:"accountHolderName,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	IFSCCode          string `json:"ifscCode,omitempty"`
	BankName          string `json:"bankName,omitempty"`
}

// PortfolioProject is a single showcased project
type PortfolioProject struct {
	Title          string     `json:"title,omitempty"`
	Description    string     `json:"description,omitempty"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	ProjectLink    string     `json:"projectLink,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
}

// Certification is a qualification entry
type Certification struct {
	CertificateName  string     `json:"certificateName,omitempty"`
	IssuingAuthority string     `json:"issuingAuthority,omitempty"`
	IssueDate        *time.Time `json:"issueDate,omitempty"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	CertificateURL   string     `json:"certificateUrl,omitempty"`
}

// InsuranceDetails holds contractor insurance information
type InsuranceDetails struct {
	ProviderName   string     `json:"providerName,omitempty"`
	PolicyNumber   string     `json:"policyNumber,omitempty"`
	CoverageAmount float64    `json:"coverageAmount,omitempty"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	DocumentURL    string     `json:"documentUrl,omitempty"`
}

// SocialLinks holds the user's social profiles
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// EmergencyContact holds an emergency contact person
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}

// Profile is the descriptive, pricing and metadata attribute set of a user.
// Every field is optional; the core treats them opaquely beyond the type
// checks applied on partial updates.
type Profile struct {
	// Professional information
	Age             int      `json:"age,omitempty" gorm:"column:age"`
	Experience      string   `json:"experience,omitempty" gorm:"column:experience"`
	ExperienceRange string   `json:"experienceRange,omitempty" gorm:"column:experience_range"`
	Bio             string   `json:"bio,omitempty" gorm:"column:bio"`
	About           string   `json:"about,omitempty" gorm:"column:about"`
	TeamSize        string   `json:"teamSize,omitempty" gorm:"column:team_size"`
	Skills          []string `json:"skills,omitempty" gorm:"column:skills;serializer:json"`

	// Work information
	CoverageArea       []string  `json:"coverageArea,omitempty" gorm:"column:coverage_area;serializer:json"`
	ServicesOffered    []string  `json:"servicesOffered,omitempty" gorm:"column:services_offered;serializer:json"`
	ServiceCover       []string  `json:"serviceCover,omitempty" gorm:"column:service_cover;serializer:json"`
	WorkTypes          []string  `json:"workTypes,omitempty" gorm:"column:work_types;serializer:json"`
	ServiceCategories  []string  `json:"serviceCategories,omitempty" gorm:"column:service_categories;serializer:json"`
	PreferredLanguages []string  `json:"preferredLanguages,omitempty" gorm:"column:preferred_languages;serializer:json"`
	BusinessType       []string  `json:"businessType,omitempty" gorm:"column:business_type;serializer:json"`
	WorkingHours       string    `json:"workingHours,omitempty" gorm:"column:working_hours"`
	Location           *Location `json:"location,omitempty" gorm:"column:location;serializer:json"`
	ServiceRadius      float64   `json:"serviceRadius,omitempty" gorm:"column:service_radius"`

	// Media
	ProfilePhotoURL string `json:"profilePhotoUrl,omitempty" gorm:"column:profile_photo_url"`

	// Status & verification
	Status          string `json:"status,omitempty" gorm:"column:status"`
	Display         bool   `json:"display" gorm:"column:display"`
	IsVerified      bool   `json:"isVerified" gorm:"column:is_verified"`
	EmailVerified   bool   `json:"emailVerified" gorm:"column:email_verified"`
	MobileVerified  bool   `json:"mobileVerified" gorm:"column:mobile_verified"`
	AadharVerified  bool   `json:"aadharVerified" gorm:"column:aadhar_verified"`
	PanVerified     bool   `json:"panVerified" gorm:"column:pan_verified"`
	LicenseVerified bool   `json:"licenseVerified" gorm:"column:license_verified"`
	IsOnline        bool   `json:"isOnline" gorm:"column:is_online"`
	Availability    bool   `json:"availability" gorm:"column:availability"`
	TermsAgreed     bool   `json:"termsAgreed" gorm:"column:terms_agreed"`

	// Ratings & reviews
	Rating        float64 `json:"rating" gorm:"column:rating"`
	TotalReviews  int     `json:"totalReviews" gorm:"column:total_reviews"`
	CompletedJobs int     `json:"completedJobs" gorm:"column:completed_jobs"`

	// Contractor specific
	CompanyName        string `json:"companyName,omitempty" gorm:"column:company_name"`
	AboutCompany       string `json:"aboutCompany,omitempty" gorm:"column:about_company"`
	GSTNumber          string `json:"gstNumber,omitempty" gorm:"column:gst_number"`
	RegistrationNumber string `json:"registrationNumber,omitempty" gorm:"column:registration_number"`
	CompanyLogoURL     string `json:"companyLogoUrl,omitempty" gorm:"column:company_logo_url"`
	BusinessLicenseURL string `json:"businessLicenseUrl,omitempty" gorm:"column:business_license_url"`

	// Labour specific
	AadharNumber string `json:"aadharNumber,omitempty" gorm:"column:aadhar_number"`
	BusinessName string `json:"businessName,omitempty" gorm:"column:business_name"`
	PANNumber    string `json:"panNumber,omitempty" gorm:"column:pan_number"`

	// Banking
	BankDetails *BankDetails `json:"bankDetails,omitempty" gorm:"column:bank_details;serializer:json"`

	// Rates & pricing
	HourlyRate      float64 `json:"hourlyRate,omitempty" gorm:"column:hourly_rate"`
	DayRate         float64 `json:"dayRate,omitempty" gorm:"column:day_rate"`
	ProjectRate     float64 `json:"projectRate,omitempty" gorm:"column:project_rate"`
	MinimumJobValue float64 `json:"minimumJobValue,omitempty" gorm:"column:minimum_job_value"`

	PreferredContactMethod string `json:"preferredContactMethod,omitempty" gorm:"column:preferred_contact_method"`

	// Portfolio & certifications
	PortfolioProjects []PortfolioProject `json:"portfolioProjects,omitempty" gorm:"column:portfolio_projects;serializer:json"`
	Certifications    []Certification    `json:"certifications,omitempty" gorm:"column:certifications;serializer:json"`

	// Performance metrics
	AverageResponseTime  float64 `json:"averageResponseTime,omitempty" gorm:"column:average_response_time"`
	AcceptanceRate       float64 `json:"acceptanceRate,omitempty" gorm:"column:acceptance_rate"`
	CancellationRate     float64 `json:"cancellationRate,omitempty" gorm:"column:cancellation_rate"`
	OnTimeCompletionRate float64 `json:"onTimeCompletionRate,omitempty" gorm:"column:on_time_completion_rate"`

	// Earnings
	TotalEarnings     float64 `json:"totalEarnings" gorm:"column:total_earnings"`
	PendingEarnings   float64 `json:"pendingEarnings" gorm:"column:pending_earnings"`
	WithdrawnEarnings float64 `json:"withdrawnEarnings" gorm:"column:withdrawn_earnings"`

	// Insurance (contractor)
	InsuranceDetails *InsuranceDetails `json:"insuranceDetails,omitempty" gorm:"column:insurance_details;serializer:json"`

	// Subscription
	SubscriptionPlan string    `json:"subscriptionPlan,omitempty" gorm:"column:subscription_plan"`
	PlanStartDate    null.Time `json:"planStartDate,omitempty" gorm:"column:plan_start_date"`
	PlanExpiryDate   null.Time `json:"planExpiryDate,omitempty" gorm:"column:plan_expiry_date"`

	// Social & referral
	SocialLinks   *SocialLinks `json:"socialLinks,omitempty" gorm:"column:social_links;serializer:json"`
	ReferralCode  string       `json:"referralCode,omitempty" gorm:"column:referral_code"`
	ReferralCount int          `json:"referralCount" gorm:"column:referral_count"`

	// Emergency contact
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty" gorm:"column:emergency_contact;serializer:json"`
}

// User represents a marketplace account. The JSON tags are the single
// projection schema: marshaling a User is always safe for external exposure,
// secret fields carry `json:"-"`.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	FullName     string    `json:"fullName" gorm:"column:full_name"`
	Email        string    `json:"email" gorm:"column:email;uniqueIndex"`
	Mobile       string    `json:"mobile" gorm:"column:mobile;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	UserType     UserType  `json:"userType" gorm:"column:user_type"`

	Profile `gorm:"embedded"`

	// One-time-code login channel (repurposed email-verification fields)
	OTPCode   null.String `json:"-" gorm:"column:otp_code"`
	OTPExpiry null.Time   `json:"-" gorm:"column:otp_expiry"`

	// Password reset secrets, managed by an external flow
	ResetPasswordToken  null.String `json:"-" gorm:"column:reset_password_token"`
	ResetPasswordExpire null.Time   `json:"-" gorm:"column:reset_password_expire"`

	// References into the document collection, maintained externally
	Documents []string `json:"documents,omitempty" gorm:"column:documents;serializer:json"`

	LastLogin null.Time `json:"lastLogin,omitempty" gorm:"column:last_login"`

	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

// TableName sets the users table name
func (User) TableName() string {
	return "users"
}

// RegisterInput represents input for creating a user. Besides the required
// credentials, any of the profile attributes may be supplied up front.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	UserType string `json:"userType"`

	Profile
}

// LoginInput represents input for user login. At least one of Email/Mobile
// and one of Password/OTP is required; UserType is an optional hint.
type LoginInput struct {
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
	UserType string `json:"userType"`
}

// AuthResponse pairs the projected user with the issued bearer token
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// ChangePasswordInput represents input for changing the account password
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// RequestOTPInput represents input for requesting a login OTP
type RequestOTPInput struct {
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

package domain

import "time"

// Role names stored on the user record and carried in JWT claims.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	UserID           string    `json:"id" dynamodbav:"user_id"`
	FirstName        string    `json:"firstname" dynamodbav:"firstname"`
	LastName         string    `json:"lastname" dynamodbav:"lastname"`
	Email            string    `json:"email" dynamodbav:"email"`
	PhoneNumber      string    `json:"phoneNumber" dynamodbav:"phone_number"`
	PasswordHash     string    `json:"-" dynamodbav:"password_hash"`
	Role             string    `json:"role" dynamodbav:"role"`
	Verified         bool      `json:"isVerified" dynamodbav:"verified"`
	Blocked          bool      `json:"isBlocked" dynamodbav:"blocked"`
	ProfilePhoto     string    `json:"profilePhoto,omitempty" dynamodbav:"profile_photo"`
	// Sparse GSI key: must be absent (not NULL) when no reset is pending,
	// or DynamoDB rejects the write against the S-typed reset_token-index.
	ResetToken       *string   `json:"-" dynamodbav:"reset_token,omitempty"`
	ResetTokenExpiry *int64    `json:"-" dynamodbav:"reset_token_expiry,omitempty"` // Unix seconds
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	FirstName   string `json:"firstname" validate:"required"`
	LastName    string `json:"lastname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// ResendOTPRequest asks for a fresh code. Channel defaults to email;
// "sms" delivers to the account's phone number instead.
type ResendOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Channel string `json:"channel" validate:"omitempty,oneof=email sms"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type PhotoProfileRequest struct {
	ProfilePhoto string `json:"profilePhoto" validate:"required"` // base64-encoded image
	Filename     string `json:"filename"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// CreateAdminRequest is used by the superadmin-only create-admin endpoint.
type CreateAdminRequest struct {
	FirstName   string `json:"firstname" validate:"required"`
	LastName    string `json:"lastname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
}

package http

import (
	"context"

	"github.com/egotransfert/auth-api/internal/domain"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
	ScanAll(ctx context.Context) ([]domain.User, error)
}

// OTPRepository is the minimal interface the router requires from an OTP store.
type OTPRepository interface {
	Put(ctx context.Context, rec *domain.OTPRecord) error
	ListByUser(ctx context.Context, userID string) ([]domain.OTPRecord, error)
}

// TxRepository covers the multi-item write boundaries: account creation with
// its first OTP, and OTP consumption with the verified flip.
type TxRepository interface {
	CreateUserWithOTP(ctx context.Context, u *domain.User, rec *domain.OTPRecord) error
	ConsumeOTPAndVerify(ctx context.Context, userID, otpID string) error
}

// RefreshTokenRepository is the minimal interface the router requires from a
// refresh-token store.
type RefreshTokenRepository interface {
	Put(ctx context.Context, rt *domain.RefreshToken) error
	DeleteByUser(ctx context.Context, userID string) error
}

// PhotoStore is the minimal interface the router requires from the
// profile-photo storage backend.
type PhotoStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
}

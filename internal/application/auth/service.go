package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/egotransfert/auth-api/internal/domain"
	"github.com/egotransfert/auth-api/internal/pkg/id"
	"github.com/egotransfert/auth-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// Registration only accepts gmail addresses, as the upstream mobile app does.
var gmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)

// LoginResult carries the authenticated profile plus both tokens.
type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// AdminLoginResult is the superadmin login response payload. Admin tokens
// carry only the role, so no profile is returned.
type AdminLoginResult struct {
	Email        string
	AccessToken  string
	RefreshToken string
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) error
	VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) error
	ResendOTP(ctx context.Context, req domain.ResendOTPRequest) error
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	SuperAdminLogin(ctx context.Context, req domain.LoginRequest) (*AdminLoginResult, error)
	CreateAdmin(ctx context.Context, req domain.CreateAdminRequest) (*domain.User, error)
	BootstrapSuperAdmin(ctx context.Context, email, password string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type otpStore interface {
	Put(ctx context.Context, rec *domain.OTPRecord) error
	ListByUser(ctx context.Context, userID string) ([]domain.OTPRecord, error)
}

type txStore interface {
	CreateUserWithOTP(ctx context.Context, u *domain.User, rec *domain.OTPRecord) error
	ConsumeOTPAndVerify(ctx context.Context, userID, otpID string) error
}

type refreshTokenStore interface {
	Put(ctx context.Context, rt *domain.RefreshToken) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type tokenSigner interface {
	SignAccess(userID, role string) (string, error)
	SignRefresh(userID, role string) (string, error)
	SignAdminAccess(role string) (string, error)
	SignAdminRefresh(role string) (string, error)
}

type service struct {
	userRepo     userStore
	otpRepo      otpStore
	txRepo       txStore
	refreshRepo  refreshTokenStore
	mailer       mailer
	smsSender    smsSender
	tokens       tokenSigner
	otpTTL       time.Duration
	resetURLBase string
}

type ServiceDeps struct {
	UserRepo     userStore
	OTPRepo      otpStore
	TxRepo       txStore
	RefreshRepo  refreshTokenStore
	Mailer       mailer
	SMSSender    smsSender
	Tokens       tokenSigner
	OTPTTL       time.Duration
	ResetURLBase string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		userRepo:     deps.UserRepo,
		otpRepo:      deps.OTPRepo,
		txRepo:       deps.TxRepo,
		refreshRepo:  deps.RefreshRepo,
		mailer:       deps.Mailer,
		smsSender:    deps.SMSSender,
		tokens:       deps.Tokens,
		otpTTL:       deps.OTPTTL,
		resetURLBase: deps.ResetURLBase,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	if !gmailPattern.MatchString(req.Email) {
		return domain.BadRequest("this email format is invalid", domain.CodeInvalidEmailFormat)
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return domain.BadRequest("user already exists", domain.CodeUserAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, err := s.userRepo.GetByPhoneNumber(ctx, req.PhoneNumber); err == nil {
		return domain.BadRequest("this phone number is already in use, please pick another one", domain.CodePhoneNumberAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	code, expiresAt, err := otp.Generate(s.otpTTL)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	rec := &domain.OTPRecord{
		UserID:    u.UserID,
		OTPID:     id.New(),
		Code:      code,
		ExpiresAt: expiresAt,
	}
	// Account and first OTP land together or not at all.
	if err := s.txRepo.CreateUserWithOTP(ctx, u, rec); err != nil {
		return err
	}

	s.sendOTPEmail(u.Email, code)
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) error {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.BadRequest("user not found", domain.CodeUserNotFound)
		}
		return err
	}
	// Verification is one-way; a second submission on a verified account is a no-op.
	if u.Verified {
		return nil
	}

	recs, err := s.otpRepo.ListByUser(ctx, u.UserID)
	if err != nil {
		return err
	}
	var matched *domain.OTPRecord
	for i := range recs {
		if recs[i].Code == req.OTP {
			matched = &recs[i]
			break
		}
	}
	if matched == nil || matched.ExpiresAt < time.Now().Unix() {
		return domain.BadRequest("otp code is invalid or has expired", domain.CodeInvalidOTP)
	}

	return s.txRepo.ConsumeOTPAndVerify(ctx, u.UserID, matched.OTPID)
}

func (s *service) ResendOTP(ctx context.Context, req domain.ResendOTPRequest) error {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.BadRequest("user not found", domain.CodeUserNotFound)
		}
		return err
	}

	code, expiresAt, err := otp.Generate(s.otpTTL)
	if err != nil {
		return err
	}
	// Older unconsumed codes stay valid until their own expiry.
	rec := &domain.OTPRecord{
		UserID:    u.UserID,
		OTPID:     id.New(),
		Code:      code,
		ExpiresAt: expiresAt,
	}
	if err := s.otpRepo.Put(ctx, rec); err != nil {
		return err
	}

	if req.Channel == "sms" && s.smsSender != nil {
		if err := s.smsSender.SendSMS(ctx, u.PhoneNumber, "Your verification code is "+code+". It expires in 10 min"); err != nil {
			slog.Warn("failed to send otp sms", "user_id", u.UserID, "err", err)
		}
		return nil
	}
	s.sendOTPEmail(u.Email, code)
	return nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.BadRequest("user not found", domain.CodeUserNotFound)
		}
		return nil, err
	}
	if !u.Verified {
		return nil, domain.BadRequest("this account has not been verified yet", domain.CodeAccountNotVerified)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.BadRequest("incorrect password", domain.CodeIncorrectPassword)
	}

	accessToken, err := s.tokens.SignAccess(u.UserID, u.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.SignRefresh(u.UserID, u.Role)
	if err != nil {
		return nil, err
	}
	if err := s.refreshRepo.Put(ctx, &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    u.UserID,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	return &LoginResult{User: u, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.BadRequest("user not found", domain.CodeUserNotFound)
		}
		return err
	}

	token, err := otp.NewResetToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.otpTTL).Unix()
	if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
		domain.FieldResetToken:       token,
		domain.FieldResetTokenExpiry: expiry,
	}); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s?token=%s", s.resetURLBase, token)
	return s.mailer.SendEmail(u.Email, "Password reset",
		"You requested a password reset. Follow this link to choose a new password: "+resetURL)
}

func (s *service) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	u, err := s.userRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.BadRequest("reset token is invalid or has expired", domain.CodeUserNotFound)
		}
		return err
	}
	if u.ResetTokenExpiry == nil || *u.ResetTokenExpiry < time.Now().Unix() {
		return domain.BadRequest("reset token is invalid or has expired", domain.CodeUserNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
		domain.FieldPasswordHash:     string(hash),
		domain.FieldResetToken:       nil,
		domain.FieldResetTokenExpiry: nil,
	})
}

func (s *service) SuperAdminLogin(ctx context.Context, req domain.LoginRequest) (*AdminLoginResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.BadRequest("superadmin not found", domain.CodeSuperAdminNotFound)
		}
		return nil, err
	}
	// No verified-flag check here: the bootstrap superadmin must be able to
	// log in without ever passing through the OTP flow.
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.BadRequest("incorrect password", domain.CodeIncorrectPassword)
	}

	accessToken, err := s.tokens.SignAdminAccess(u.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.SignAdminRefresh(u.Role)
	if err != nil {
		return nil, err
	}
	if err := s.refreshRepo.Put(ctx, &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    u.UserID,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	return &AdminLoginResult{Email: u.Email, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) CreateAdmin(ctx context.Context, req domain.CreateAdminRequest) (*domain.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, domain.BadRequest("email already in use", domain.CodeUserAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByPhoneNumber(ctx, req.PhoneNumber); err == nil {
		return nil, domain.BadRequest("phone number already in use", domain.CodePhoneNumberAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// BootstrapSuperAdmin creates the superadmin account at startup when the
// configured credentials are set and no such account exists yet.
func (s *service) BootstrapSuperAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		slog.Info("superadmin already exists", "email", email)
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        email,
		PhoneNumber:  "0000000000",
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Put(ctx, u); err != nil {
		return fmt.Errorf("initialize superadmin: %w", err)
	}
	slog.Info("superadmin account created", "email", email)
	return nil
}

// sendOTPEmail delivers the code. Delivery failure is logged, not surfaced:
// the account exists either way and the client can ask for a resend.
func (s *service) sendOTPEmail(email, code string) {
	body := "Your verification code is " + code + " to sign in to EgoTransfert. It expires in 10 min"
	if err := s.mailer.SendEmail(email, "Verification OTP", body); err != nil {
		slog.Warn("failed to send otp email", "email", email, "err", err)
	}
}

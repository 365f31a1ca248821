package user

import (
	"context"
	"errors"
	"time"

	"github.com/egotransfert/auth-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListResult is the paginated user listing returned to admins.
type ListResult struct {
	Users      []domain.User
	TotalUsers int
	Page       int
	TotalPages int
}

type Service interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	List(ctx context.Context, page, limit int) (*ListResult, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID string, req domain.UpdatePasswordRequest) error
	UpdatePhoto(ctx context.Context, userID string, req domain.PhotoProfileRequest) (string, error)
	Delete(ctx context.Context, userID string) error
	Logout(ctx context.Context, userID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
	ScanAll(ctx context.Context) ([]domain.User, error)
}

type refreshTokenStore interface {
	DeleteByUser(ctx context.Context, userID string) error
}

type photoStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
}

type service struct {
	userRepo    userStore
	refreshRepo refreshTokenStore
	photos      photoStore
}

type ServiceDeps struct {
	UserRepo    userStore
	RefreshRepo refreshTokenStore
	Photos      photoStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		userRepo:    deps.UserRepo,
		refreshRepo: deps.RefreshRepo,
		photos:      deps.Photos,
	}
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.BadRequest("user not found", domain.CodeUserNotFound)
		}
		return nil, err
	}
	return u, nil
}

// List paginates over the full user table. The table is small enough that a
// scan plus in-memory slicing keeps the offset-based contract the clients use.
func (s *service) List(ctx context.Context, page, limit int) (*ListResult, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	all, err := s.userRepo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}

	total := len(all)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &ListResult{
		Users:      all[start:end],
		TotalUsers: total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates[domain.FieldFirstName] = *req.FirstName
	}
	if req.LastName != nil {
		updates[domain.FieldLastName] = *req.LastName
	}
	if req.Email != nil {
		existing, err := s.userRepo.GetByEmail(ctx, *req.Email)
		if err == nil && existing.UserID != userID {
			return nil, domain.BadRequest("this email is already used", domain.CodeEmailAlreadyUsed)
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		updates[domain.FieldEmail] = *req.Email
	}
	if len(updates) == 0 {
		return nil, domain.BadRequest("no data to update", domain.CodeNoDataToUpdate)
	}

	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.BadRequest("user not found", domain.CodeUserNotFound)
		}
		return nil, err
	}
	return s.userRepo.Get(ctx, userID)
}

func (s *service) UpdatePassword(ctx context.Context, userID string, req domain.UpdatePasswordRequest) error {
	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.BadRequest("user not found", domain.CodeUserNotFound)
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.Update(ctx, userID, map[string]interface{}{
		domain.FieldPasswordHash: string(hash),
	})
}

func (s *service) UpdatePhoto(ctx context.Context, userID string, req domain.PhotoProfileRequest) (string, error) {
	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.BadRequest("user not found", domain.CodeUserNotFound)
		}
		return "", err
	}

	filename := req.Filename
	if filename == "" {
		filename = "profile.jpg"
	}
	key := "profile-photos/" + userID + "/" + time.Now().UTC().Format("20060102T150405") + "-" + filename

	url, err := s.photos.UploadBase64(ctx, key, req.ProfilePhoto)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		domain.FieldProfilePhoto: url,
	}); err != nil {
		return "", err
	}
	return url, nil
}

// Delete removes the account permanently along with its refresh tokens.
func (s *service) Delete(ctx context.Context, userID string) error {
	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.BadRequest("user not found", domain.CodeUserNotFound)
		}
		return err
	}
	if err := s.refreshRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// Logout invalidates every refresh token the user holds.
func (s *service) Logout(ctx context.Context, userID string) error {
	return s.refreshRepo.DeleteByUser(ctx, userID)
}

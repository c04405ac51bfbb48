package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for password hashes.
const BcryptCost = 10

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
	UserID    int64  `json:"-"`
}

// AuthService covers registration, login, and self-service account changes.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ChangePassword(ctx context.Context, caller *Claims, req ChangePasswordRequest) error
	Me(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*models.User, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService JWTService
	limiter    LoginLimiter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(users repository.UserRepository, jwtService JWTService, limiter LoginLimiter) AuthService {
	if limiter == nil {
		limiter = noopLimiter{}
	}
	return &authService{
		users:      users,
		jwtService: jwtService,
		limiter:    limiter,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	return createUser(ctx, s.users, req.Name, req.Email, req.Password, models.RoleUser)
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	allowed, err := s.limiter.Allowed(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if err := s.limiter.Failed(ctx, req.Email); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		if err := s.limiter.Failed(ctx, req.Email); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, req.Email); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Message:   "login successful",
		Token:     token,
		ExpiresIn: int64(s.jwtService.GetExpiry().Seconds()),
		UserID:    user.ID,
	}, nil
}

// ChangePassword only lets callers change their own password. The body email
// must match the stored account, not the token claim.
func (s *authService) ChangePassword(ctx context.Context, caller *Claims, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if normalizeEmail(req.Email) != user.Email {
		return ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrIncorrectPassword
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.users.Update(ctx, user)
}

func (s *authService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return findUser(ctx, s.users, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*models.User, error) {
	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}

	if err := saveUser(ctx, s.users, user); err != nil {
		return nil, err
	}
	return user, nil
}

func createUser(ctx context.Context, users repository.UserRepository, name, email, password string, role models.Role) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    normalizeEmail(email),
		Password: hash,
		Role:     role,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func findUser(ctx context.Context, users repository.UserRepository, id int64) (*models.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func saveUser(ctx context.Context, users repository.UserRepository, user *models.User) error {
	if err := users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

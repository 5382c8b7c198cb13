package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"points-board-api/internal/domain"
	"points-board-api/internal/dto"
	"points-board-api/internal/metrics"
	"points-board-api/internal/repository"
	"points-board-api/internal/response"
)

const (
	invalidCredentialsMessage = "Invalid email or password"

	// bcrypt ignores input past this many bytes
	maxPasswordBytes = 72
)

// AuthService defines the interface for account and session logic
type AuthService interface {
	Register(ctx context.Context, req *dto.CredentialsRequest) (uint, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *Claims) error
	Me(ctx context.Context, userID uint) (*dto.UserResponse, error)
	ValidateToken(ctx context.Context, raw string) (*Claims, error)
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo   repository.UserRepository
	tokens     *TokenManager
	revocation RevocationService
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *TokenManager,
	revocation RevocationService,
	m *metrics.Metrics,
	logger *zap.Logger,
) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authServiceImpl{
		userRepo:   userRepo,
		tokens:     tokens,
		revocation: revocation,
		metrics:    m,
		logger:     logger,
	}
}

// normalizeEmail trims and lower-cases an address before storage or lookup
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns its id
func (s *authServiceImpl) Register(ctx context.Context, req *dto.CredentialsRequest) (uint, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return 0, response.NewAppError(response.ErrCodeValidation, "Missing required fields: email, password", "")
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return 0, response.NewAppError(response.ErrCodeAlreadyExists, "User already exists", "")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, response.NewAppError(response.ErrCodeInternal, "Failed to check existing user", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return 0, response.NewAppError(response.ErrCodeValidation, "Password is too long", "")
		}
		return 0, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, response.NewAppError(response.ErrCodeAlreadyExists, "User already exists", "")
		}
		return 0, response.NewAppError(response.ErrCodeInternal, "Failed to create user", err.Error())
	}

	s.logger.Info("User registered", zap.Uint("user_id", user.ID))
	return user.ID, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password fail with the same message.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	password := []byte(req.Password)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
		}
		// Keep the unknown-email path as slow as a real comparison
		_ = bcrypt.CompareHashAndPassword(dummyHash(), password)
		s.metrics.RecordLogin(false)
		return nil, response.NewAppError(response.ErrCodeUnauthorized, invalidCredentialsMessage, "")
	}

	// A registered password never exceeds the limit; a longer one would
	// otherwise match on its first 72 bytes
	if len(password) > maxPasswordBytes {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), password[:maxPasswordBytes])
		s.metrics.RecordLogin(false)
		return nil, response.NewAppError(response.ErrCodeUnauthorized, invalidCredentialsMessage, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), password); err != nil {
		s.metrics.RecordLogin(false)
		return nil, response.NewAppError(response.ErrCodeUnauthorized, invalidCredentialsMessage, "")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}

	s.metrics.RecordLogin(true)
	return &dto.LoginResponse{AccessToken: token}, nil
}

// Logout revokes the token's jti for one token lifetime
func (s *authServiceImpl) Logout(ctx context.Context, claims *Claims) error {
	expiresAt := s.tokens.now().Add(s.tokens.TTL())
	if err := s.revocation.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to log out", err.Error())
	}

	s.metrics.IncrementLogout()
	s.logger.Info("User logged out", zap.Uint("user_id", claims.UserID))
	return nil
}

// Me returns the caller's public profile
func (s *authServiceImpl) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}
	return &dto.UserResponse{ID: user.ID, Email: user.Email}, nil
}

// ValidateToken verifies the token and rejects revoked ones. A failed
// revocation lookup rejects the token as well.
func (s *authServiceImpl) ValidateToken(ctx context.Context, raw string) (*Claims, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid or expired token", err.Error())
	}

	revoked, err := s.revocation.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Revocation check failed, rejecting token", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Token has been revoked", err.Error())
	}
	if revoked {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Token has been revoked", "")
	}
	return claims, nil
}

var (
	dummyHashOnce  sync.Once
	dummyHashValue []byte
)

func dummyHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHashValue, _ = bcrypt.GenerateFromPassword([]byte("points-board-dummy"), bcrypt.DefaultCost)
	})
	return dummyHashValue
}

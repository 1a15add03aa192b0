package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hotelhub/internal/auth"
	"hotelhub/internal/errors"
	"hotelhub/internal/model"
	"hotelhub/internal/repository"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// RegisterInput carries the fields a new guest supplies.
type RegisterInput struct {
	Email    string
	Password string
	Profile  model.Profile
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a guest account with a hashed password and returns it with a fresh token.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	user := &model.User{
		Email:   input.Email,
		Role:    model.RoleGuest,
		Profile: input.Profile,
	}
	user.Normalize()

	if err := model.ValidateUser(user); err != nil {
		return nil, "", err
	}
	if len(input.Password) < MinPasswordLength {
		return nil, "", errors.Validation("", map[string]string{
			"password": fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		})
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		return nil, "", errors.ErrEmailTaken
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", errors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.IssueToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and issues a token.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", errors.Validation("please provide email and password", nil)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.IssueToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Me reloads the authenticated user.
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUnknownUser
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return errors.ErrUnauthenticated
	}
	if err := s.tokenStore.RevokeToken(ctx, claims.ID, claims.ExpiresIn()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

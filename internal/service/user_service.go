package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tuff-gaming/internal/apperror"
	"tuff-gaming/internal/auth"
	"tuff-gaming/internal/domain"
	"tuff-gaming/internal/repository"

	"github.com/google/uuid"
)

const (
	msgDuplicateUser      = "Username or email already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgPasswordTooLong    = "Password must be at most 72 characters long"
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// RegisterInput is a validated registration request
type RegisterInput struct {
	Username string `json:"username" validate:"min=5"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=5,max=72"`
}

// LoginInput is a validated login request
type LoginInput struct {
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"required"`
}

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (token string, user *domain.User, err error)
}

type userService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a new user account with a hashed password
func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = strings.TrimSpace(input.Email)

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "failed to check existing user")
	}
	if exists {
		return nil, apperror.Conflict(msgDuplicateUser)
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		// max=72 counts characters; bcrypt's limit is bytes.
		return nil, apperror.Wrap(apperror.KindValidation, err, msgPasswordTooLong)
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "failed to hash password")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "failed to generate user id")
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           id,
		Username:     input.Username,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			// Lost a race with a concurrent registration.
			return nil, apperror.Wrap(apperror.KindConflict, err, msgDuplicateUser)
		}
		return nil, apperror.Wrap(apperror.KindInternal, err, "failed to create user")
	}

	return user, nil
}

// Login authenticates a user and returns a signed session token
func (s *userService) Login(ctx context.Context, input LoginInput) (string, *domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, apperror.Auth(msgInvalidCredentials)
		}
		return "", nil, apperror.Wrap(apperror.KindInternal, err, "failed to find user")
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return "", nil, apperror.Wrap(apperror.KindInternal, err, "failed to verify password")
	}
	if !ok {
		return "", nil, apperror.Auth(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return "", nil, apperror.Wrap(apperror.KindInternal, fmt.Errorf("issue token: %w", err), "failed to sign in")
	}

	return token, user, nil
}

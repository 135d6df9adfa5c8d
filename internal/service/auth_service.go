package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"classifieds/internal/auth"
	"classifieds/internal/models"
	"classifieds/internal/observability"
	"classifieds/internal/repository"
	"classifieds/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the hashing cost used when none is configured.
const DefaultBcryptCost = 10

const msgInvalidCredentials = "Invalid credentials"

// TokenIssuer signs session tokens for an identity.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// AuthService registers accounts and verifies credentials.
type AuthService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name     *string `json:"name"`
	Email    string  `json:"email" validate:"required"`
	Password string  `json:"password" validate:"required"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the public view of an account returned with a token.
// CreatedAt is only populated on registration.
type AuthUser struct {
	ID        uint       `json:"id"`
	Name      *string    `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// AuthResponse pairs the account with a freshly issued session token.
type AuthResponse struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}

// NewAuthService returns an AuthService. A cost below bcrypt.MinCost uses
// DefaultBcryptCost.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = DefaultBcryptCost
	}
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates an account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (resp *AuthResponse, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AuthService", "Register")
	defer func() { observability.EndSpan(span, err); recordAuth("register", err) }()

	if validation.Check(in) != nil {
		return nil, models.NewValidationError("Email and password are required")
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, models.NewConflictError("Email already registered")
	} else if !models.HasCode(err, models.CodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, models.NewValidationError("Password must be at most 72 bytes")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var name *string
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		name = in.Name
	}

	user := &models.User{Name: name, Email: in.Email, Password: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	createdAt := user.CreatedAt
	return &AuthResponse{
		User:  AuthUser{ID: user.ID, Name: user.Name, Email: user.Email, CreatedAt: &createdAt},
		Token: token,
	}, nil
}

// Login verifies credentials. Unknown email and wrong password fail with the
// same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (resp *AuthResponse, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AuthService", "Login")
	defer func() { observability.EndSpan(span, err); recordAuth("login", err) }()

	if validation.Check(in) != nil {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &AuthResponse{
		User:  AuthUser{ID: user.ID, Name: user.Name, Email: user.Email},
		Token: token,
	}, nil
}

// Me returns the profile of the authenticated account.
func (s *AuthService) Me(ctx context.Context, userID uint) (user *AuthUser, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AuthService", "Me")
	defer func() { observability.EndSpan(span, err) }()

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	created := u.CreatedAt
	return &AuthUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: &created}, nil
}

// DeleteAccount removes the authenticated account together with its listings
// and favorites. Tokens already issued stay valid until they expire but no
// longer match an account.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AuthService", "DeleteAccount")
	defer func() { observability.EndSpan(span, err) }()

	return s.users.Delete(ctx, userID)
}

func recordAuth(action string, err error) {
	outcome := "success"
	if err != nil {
		outcome = strings.ToLower(models.AsAppError(err).Code)
	}
	observability.AuthAttempts.WithLabelValues(action, outcome).Inc()
}

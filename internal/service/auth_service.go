package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"relay_control/internal/config"
	"relay_control/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrEmptyPassword   = errors.New("password is empty")
	// ErrSignUpClosed rejects anonymous registration once an operator exists.
	ErrSignUpClosed  = errors.New("sign-up is closed")
	ErrUsernameTaken = repository.ErrUsernameTaken
)

// AuthService registers operators and issues bearer tokens for the HTTP API.
//
// Anonymous sign-up creates only the first operator unless auth.allow_sign_up
// is set; later accounts are added by an authenticated operator.
type AuthService struct {
	authRepo    repository.Authorization
	signingKey  []byte
	tokenTTL    time.Duration
	allowSignUp bool
}

func NewAuthService(repo repository.Authorization, settings config.AuthSettings) *AuthService {
	return &AuthService{
		authRepo:    repo,
		signingKey:  []byte(settings.SigningKey),
		tokenTTL:    settings.TokenTTL,
		allowSignUp: settings.AllowSignUp,
	}
}

func (s *AuthService) SignUp(ctx context.Context, p SignUpParams) (int, error) {
	hash, err := hashPassword(p.Password)
	if err != nil {
		return 0, err
	}

	if p.InvitedBy != 0 || s.allowSignUp {
		id, err := s.authRepo.Create(ctx, p.Username, hash)
		if err != nil {
			return 0, fmt.Errorf("sign up %q: %w", p.Username, err)
		}
		return id, nil
	}

	id, err := s.authRepo.CreateFirst(ctx, p.Username, hash)
	if errors.Is(err, repository.ErrOperatorsExist) {
		return 0, ErrSignUpClosed
	}
	if err != nil {
		return 0, fmt.Errorf("bootstrap operator %q: %w", p.Username, err)
	}
	return id, nil
}

// Claims carries the operator ID in the token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("look up %q: %w", username, err)
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidPassword
	}
	return s.issueToken(u.ID)
}

// ParseToken accepts only HS256-family tokens signed with the configured key.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}

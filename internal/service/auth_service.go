package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lumirum/internal/models"
	"lumirum/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = 24 * time.Hour

	minUsernameLen = 3
	maxUsernameLen = 25
	minPasswordLen = 8
)

// AuthConfig carries the signing material for JWTs. The key comes from
// configuration, never from source.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// AuthService handles user auth logic
type AuthService struct {
	userRepo repository.Users
	cfg      AuthConfig
}

func NewAuthService(repo repository.Users, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{userRepo: repo, cfg: cfg}
}

// SignUp hashes the password and creates a new user.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int64, error) {
	if err := validateUsername(username); err != nil {
		return 0, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}

	return s.userRepo.Create(ctx, username, hash)
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// GenerateToken validates credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(u.ID)
}

// ParseToken parses a JWT and returns the user ID it was issued to.
func (s *AuthService) ParseToken(accessToken string) (int64, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// GetUser returns the user's public record.
func (s *AuthService) GetUser(ctx context.Context, id int64) (models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}

// ChangePassword verifies the old password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, id, hash)
}

func validateUsername(username string) error {
	if n := len([]rune(username)); n < minUsernameLen || n > maxUsernameLen {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrValidation, minUsernameLen, maxUsernameLen)
	}
	for _, r := range username {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlnum {
			return fmt.Errorf("%w: username must be alphanumeric", ErrValidation)
		}
	}
	return nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password is empty", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safebite/safebite/internal/middleware"
	"github.com/safebite/safebite/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

const sessionTTL = 24 * time.Hour

// AuthService owns session identity: anonymous bootstrap, token
// validation, and sign-out.
type AuthService struct {
	db        *gorm.DB
	revoked   RevocationStore
	jwtSecret string
}

func NewAuthService(db *gorm.DB, revoked RevocationStore, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		revoked:   revoked,
		jwtSecret: jwtSecret,
	}
}

// CreateAnonymousSession creates a fresh anonymous user and issues a
// session token for it. The returned user id is stable for the lifetime
// of the session.
func (s *AuthService) CreateAnonymousSession(ctx context.Context) (string, uuid.UUID, error) {
	user := models.User{
		ID:        uuid.New(),
		Anonymous: true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", uuid.Nil, err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return "", uuid.Nil, err
	}
	return token, user.ID, nil
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken verifies the signature and expiry of a session token and
// rejects tokens revoked by sign-out.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return &middleware.TokenClaims{UserID: userID}, nil
}

// SignOut revokes the presented token until its natural expiry. The
// failure mode is reported to the caller; there is no automatic retry.
func (s *AuthService) SignOut(ctx context.Context, tokenString string) error {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return ErrInvalidToken
	}

	ttl := sessionTTL
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}

	return s.revoked.Revoke(ctx, tokenString, ttl)
}

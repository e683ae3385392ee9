package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vibast-solutions/ms-go-calendar/app/dto"
	"github.com/vibast-solutions/ms-go-calendar/app/entity"
	"github.com/vibast-solutions/ms-go-calendar/app/repository"
	"github.com/vibast-solutions/ms-go-calendar/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Claims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo         *repository.UserRepository
	refreshTokenRepo *repository.RefreshTokenRepository
	cfg              *config.Config
}

func NewAuthService(
	userRepo *repository.UserRepository,
	refreshTokenRepo *repository.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*dto.AuthResult, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.saveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &dto.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login deliberately returns the same ErrInvalidCredentials for an unknown
// email and a wrong password, so responses never reveal whether an account
// exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.saveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &dto.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a brand-new pair and
// overwrites the stored session row (rotation-on-use). A token that verifies
// cryptographically but is no longer the stored one fails here, which is what
// invalidates superseded tokens.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.verifyRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	stored, err := s.refreshTokenRepo.FindActive(ctx, claims.UserID, refreshToken, time.Now())
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrInvalidToken
	}

	accessToken, newRefreshToken, err := s.issueTokenPair(claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.saveRefreshToken(ctx, claims.UserID, newRefreshToken); err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout is idempotent: deleting a token that was never stored succeeds.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshTokenRepo.DeleteByToken(ctx, refreshToken)
}

func (s *AuthService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.parseToken(tokenString, s.cfg.JWT.AccessSecret)
}

func (s *AuthService) verifyRefreshToken(tokenString string) (*Claims, error) {
	return s.parseToken(tokenString, s.cfg.JWT.RefreshSecret)
}

func (s *AuthService) parseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// issueTokenPair signs the access and refresh tokens with their own secrets,
// so compromising one secret never forges the other token class.
func (s *AuthService) issueTokenPair(userID uint64) (string, string, error) {
	accessToken, err := s.signToken(userID, s.cfg.JWT.AccessSecret, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := s.signToken(userID, s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *AuthService) signToken(userID uint64, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatUint(userID, 10),
			// jti keeps two tokens minted within the same second distinct.
			ID: uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *AuthService) saveRefreshToken(ctx context.Context, userID uint64, token string) error {
	now := time.Now()
	return s.refreshTokenRepo.Upsert(ctx, &entity.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(s.cfg.JWT.RefreshTokenTTL),
		CreatedAt: now,
	})
}

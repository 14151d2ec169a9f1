package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
)

const (
	tokenTypeAccess    = "access"
	refreshTokenLength = 64
)

// TokenConfig 토큰 관련 설정
type TokenConfig struct {
	Secret          string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AccessClaims are the claims carried by an access token.
type AccessClaims struct {
	Login string `json:"login"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject claim.
func (c *AccessClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// IssuedRefreshToken is a freshly generated refresh token; only Hash is persisted.
type IssuedRefreshToken struct {
	Raw       string
	Hash      string
	ExpiresAt time.Time
}

// TokenService issues and parses HS256 access tokens and opaque refresh tokens.
type TokenService struct {
	config TokenConfig
	now    func() time.Time
}

func NewTokenService(config TokenConfig) *TokenService {
	return &TokenService{config: config, now: time.Now}
}

// GenerateAccessToken signs a token for user with a random jti.
func (s *TokenService) GenerateAccessToken(user *model.User) (string, *AccessClaims, error) {
	jti, err := gonanoid.New()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := s.now()
	claims := &AccessClaims{
		Login: user.Login,
		Type:  tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, claims, nil
}

// ParseAccessToken validates signature, algorithm, expiry, issuer and token type.
func (s *TokenService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.Type != tokenTypeAccess {
		return nil, errors.New("unexpected token type")
	}
	if claims.ID == "" {
		return nil, errors.New("token id is missing")
	}
	if _, err := claims.UserID(); err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}
	return claims, nil
}

// GenerateRefreshToken returns a random opaque token and its sha256 hash.
func (s *TokenService) GenerateRefreshToken() (*IssuedRefreshToken, error) {
	raw, err := gonanoid.New(refreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &IssuedRefreshToken{
		Raw:       raw,
		Hash:      HashToken(raw),
		ExpiresAt: s.now().Add(s.config.RefreshTokenTTL),
	}, nil
}

func (s *TokenService) AccessTokenTTL() time.Duration {
	return s.config.AccessTokenTTL
}

// HashToken returns the hex sha256 of a refresh token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

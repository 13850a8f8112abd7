package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"davefit/internal/domain"
)

// JWTService valida los access tokens que emite la plataforma de autenticacion.
// Tambien puede emitirlos para la CLI y los tests.
type JWTService struct {
	secret    []byte
	accessTTL time.Duration
	issuer    string
}

type Claims struct {
	UserID    string `json:"uid,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

// NewJWTService crea el servicio. Un issuer vacio desactiva la verificacion del emisor.
func NewJWTService(secret string, accessTTL time.Duration, issuer string) *JWTService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &JWTService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		issuer:    strings.TrimSpace(issuer),
	}
}

// GenerateAccessToken firma un token HS256 para la identidad dada.
func (s *JWTService) GenerateAccessToken(identity domain.Identity) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(identity.ID) == "" {
		return "", ErrJWTInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		UserID:    identity.ID,
		Email:     identity.Email,
		Role:      identity.Role,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseAccessToken valida firma, expiracion y emisor, y devuelve la identidad.
func (s *JWTService) ParseAccessToken(accessToken string) (domain.Identity, error) {
	if len(s.secret) == 0 {
		return domain.Identity{}, ErrJWTInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return domain.Identity{}, ErrJWTInvalid
	}

	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(accessToken, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, ErrJWTExpired
		}
		return domain.Identity{}, ErrJWTInvalid
	}
	if claims.TokenType != "" && claims.TokenType != "access" {
		return domain.Identity{}, ErrJWTInvalid
	}
	if !s.isValidClaims(claims) {
		return domain.Identity{}, ErrJWTInvalid
	}

	return domain.Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.Subject) == "" {
		return false
	}
	if claims.UserID != "" && claims.UserID != claims.Subject {
		return false
	}
	if s.issuer == "" {
		return true
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}

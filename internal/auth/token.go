package auth

import (
	"errors"
	"fmt"
	"time"

	apperrors "beautify/pkg/errors"
	"beautify/pkg/sanitizer"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the credential payload: the caller's email plus exp/iat.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the decoded principal of an authenticated request.
type Identity struct {
	Email     string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies HS256 credentials.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *TokenIssuer) Issue(email string) (string, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return "", apperrors.InvalidInput("email is required to issue a token")
	}

	now := t.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. Every failure is an
// InvalidCredential.
func (t *TokenIssuer) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, apperrors.InvalidCredential("Token expired", err)
		}
		return Identity{}, apperrors.InvalidCredential("Invalid token", err)
	}
	if !token.Valid {
		return Identity{}, apperrors.InvalidCredential("Invalid token", nil)
	}

	email := sanitizer.NormalizeEmail(claims.Email)
	if email == "" {
		return Identity{}, apperrors.InvalidCredential("Token carries no email", nil)
	}

	return Identity{Email: email, ExpiresAt: claims.ExpiresAt.Time}, nil
}

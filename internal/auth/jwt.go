package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 7 * 24 * time.Hour

type Claims struct {
	Subject   uint
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Sign issues an HS256 token carrying the user id as subject.
func Sign(userID uint) (string, error) {
	key := []byte(os.Getenv("TOKEN_SECRET"))
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// Verify checks the signature and shape of a token and returns its
// claims. Expiry is NOT validated here: the auth gate compares
// ExpiresAt against the clock itself, so an expired-but-well-signed
// token decodes fine.
func Verify(tokenStr string) (Claims, error) {
	key := []byte(os.Getenv("TOKEN_SECRET"))
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
	if err != nil || !tok.Valid {
		return Claims{}, errors.New("invalid token")
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}
	sub, ok := mapc["sub"].(float64)
	if !ok {
		return Claims{}, errors.New("invalid subject")
	}
	c := Claims{Subject: uint(sub)}
	if iat, ok := mapc["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mapc["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return c, nil
}

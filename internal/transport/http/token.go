package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SessionToken struct {
	DeviceID   string    `json:"device_id"`
	PuzzleID   string    `json:"puzzle_id"`
	Seed       string    `json:"seed"`
	Difficulty string    `json:"difficulty"`
	StartedAt  time.Time `json:"started_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// sessionClaims embeds SessionToken's fields alongside the registered JWT
// claims, so token expiry is enforced by the jwt library itself rather
// than checked by hand after parsing.
type sessionClaims struct {
	jwt.RegisteredClaims
	DeviceID   string `json:"device_id"`
	PuzzleID   string `json:"puzzle_id"`
	Seed       string `json:"seed"`
	Difficulty string `json:"difficulty"`
}

// session token helpers are defined in this file

func createToken(secret string, session SessionToken) (string, error) {
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(session.StartedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
		DeviceID:   session.DeviceID,
		PuzzleID:   session.PuzzleID,
		Seed:       session.Seed,
		Difficulty: session.Difficulty,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func verifyToken(secret, token string) (*SessionToken, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired")
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return &SessionToken{
		DeviceID:   claims.DeviceID,
		PuzzleID:   claims.PuzzleID,
		Seed:       claims.Seed,
		Difficulty: claims.Difficulty,
		StartedAt:  claims.IssuedAt.Time,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

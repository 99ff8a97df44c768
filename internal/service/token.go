package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"autoClassifieds/internal/models"
)

type TokenConfig struct {
	// Secret signs new tokens and verifies them.
	Secret string
	// PreviousSecrets only verify, so tokens signed before a rotation stay valid until they expire.
	PreviousSecrets []string
	Duration        time.Duration
	Now             func() time.Time
}

type TokenService interface {
	Issue(accountID, email, role string) (string, error)
	Verify(token string) (models.Identity, error)
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret   []byte
	verifyBy [][]byte
	duration time.Duration
	now      func() time.Time
}

func NewTokenService(cfg TokenConfig) (TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is empty")
	}

	if cfg.Duration <= 0 {
		return nil, errors.New("token duration must be positive")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	verifyBy := [][]byte{[]byte(cfg.Secret)}
	for _, s := range cfg.PreviousSecrets {
		if s != "" {
			verifyBy = append(verifyBy, []byte(s))
		}
	}

	return &tokenService{
		secret:   []byte(cfg.Secret),
		verifyBy: verifyBy,
		duration: cfg.Duration,
		now:      now,
	}, nil
}

func (s *tokenService) Issue(accountID, email, role string) (string, error) {
	now := s.now()

	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return token, nil
}

// Verify checks the token against the current secret, then each previous one.
func (s *tokenService) Verify(token string) (models.Identity, error) {
	var lastErr error

	for _, key := range s.verifyBy {
		identity, err := s.verifyWith(token, key)
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, models.ErrTokenSignatureInvalid) {
			return models.Identity{}, err
		}
		lastErr = err
	}

	return models.Identity{}, lastErr
}

func (s *tokenService) verifyWith(token string, key []byte) (models.Identity, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Identity{}, tokenError(err)
	}

	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("token has no subject: %w", models.ErrTokenMalformed)
	}

	identity, ok := models.NewIdentity(claims.Subject, claims.Email, claims.Role)
	if !ok {
		return models.Identity{}, fmt.Errorf("token has unknown role %q: %w", claims.Role, models.ErrTokenMalformed)
	}

	return identity, nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%v: %w", err, models.ErrTokenExpired)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%v: %w", err, models.ErrTokenSignatureInvalid)
	default:
		return fmt.Errorf("%v: %w", err, models.ErrTokenMalformed)
	}
}

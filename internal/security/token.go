package security

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

// TokenStore handles the stored bearer credential. The client never holds the
// backend's signing secret, so tokens are inspected without verification: an
// unparseable token is treated as opaque and left to the backend to judge.
type TokenStore struct {
	state     domain.StateRepository
	encryptor *Encryptor
}

// NewTokenStore creates a new token store. The encryptor is optional; when
// present the token is encrypted at rest.
func NewTokenStore(state domain.StateRepository, encryptor *Encryptor) *TokenStore {
	return &TokenStore{state: state, encryptor: encryptor}
}

// Save stores the bearer token
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}
	value := token
	if s.encryptor != nil {
		encrypted, err := s.encryptor.EncryptString(token)
		if err != nil {
			return fmt.Errorf("failed to encrypt token: %w", err)
		}
		value = encrypted
	}
	return s.state.Set(ctx, domain.StateKeyToken, value)
}

// Load returns the stored bearer token. A missing or expired token surfaces
// as an authentication error.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	value, err := s.state.Get(ctx, domain.StateKeyToken)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if value == "" {
		return "", fmt.Errorf("no stored token: %w", domain.ErrAuthentication)
	}
	token := value
	if s.encryptor != nil {
		decrypted, err := s.encryptor.DecryptString(value)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt token: %w", err)
		}
		token = decrypted
	}
	if Expired(token) {
		return "", fmt.Errorf("token expired: %w", domain.ErrAuthentication)
	}
	return token, nil
}

// Clear removes the stored token together with the cached profile snapshot,
// which is meaningless without a credential.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.state.Delete(ctx, domain.StateKeyToken); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if err := s.state.Delete(ctx, domain.StateKeyProfile); err != nil {
		return fmt.Errorf("failed to clear profile snapshot: %w", err)
	}
	if err := s.state.Delete(ctx, domain.StateKeyProfilePicture); err != nil {
		return fmt.Errorf("failed to clear profile picture: %w", err)
	}
	return nil
}

// BearerHeader builds the Authorization header value for a token
func BearerHeader(token string) string {
	return "Bearer " + token
}

// Expired reports whether a JWT carries an expiry claim in the past.
// Signature verification is skipped; tokens that do not parse as JWT are
// treated as opaque and never expired client-side.
func Expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		log.Debug().Err(err).Msg("Token is not a parseable JWT, treating as opaque")
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

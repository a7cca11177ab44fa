package security

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

type memState struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemState() *memState {
	return &memState{values: map[string]string{}}
}

func (s *memState) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *memState) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memState) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	store := NewTokenStore(state, nil)

	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, token))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, loaded)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestTokenStore_MissingToken(t *testing.T) {
	store := NewTokenStore(newMemState(), nil)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestTokenStore_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(newMemState(), nil)

	require.NoError(t, store.Save(ctx, signedToken(t, time.Now().Add(-time.Hour))))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestTokenStore_OpaqueTokenNeverExpires(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(newMemState(), nil)

	require.NoError(t, store.Save(ctx, "opaque-api-key"))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opaque-api-key", loaded)
}

func TestTokenStore_EmptyTokenRejected(t *testing.T) {
	store := NewTokenStore(newMemState(), nil)
	assert.Error(t, store.Save(context.Background(), ""))
}

func TestTokenStore_EncryptedAtRest(t *testing.T) {
	ctx := context.Background()
	state := newMemState()

	key, err := GenerateKey()
	require.NoError(t, err)
	encryptor, err := NewEncryptor(key)
	require.NoError(t, err)

	store := NewTokenStore(state, encryptor)
	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, token))

	stored, err := state.Get(ctx, domain.StateKeyToken)
	require.NoError(t, err)
	assert.NotEqual(t, token, stored, "token must not be stored in the clear")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, loaded)
}

func TestTokenStore_ClearWipesProfileSnapshot(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	store := NewTokenStore(state, nil)

	require.NoError(t, store.Save(ctx, "opaque"))
	require.NoError(t, state.Set(ctx, domain.StateKeyProfile, `{"id":7}`))
	require.NoError(t, state.Set(ctx, domain.StateKeyProfilePicture, "base64"))

	require.NoError(t, store.Clear(ctx))

	for _, key := range []string{domain.StateKeyToken, domain.StateKeyProfile, domain.StateKeyProfilePicture} {
		value, err := state.Get(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, value)
	}
}

func TestEncryptor_Roundtrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	encryptor, err := NewEncryptor(key)
	require.NoError(t, err)

	ciphertext, err := encryptor.EncryptString("ความลับ")
	require.NoError(t, err)

	plaintext, err := encryptor.DecryptString(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "ความลับ", plaintext)

	// A second key must not decrypt the first key's ciphertext.
	otherKey, err := GenerateKey()
	require.NoError(t, err)
	other, err := NewEncryptor(otherKey)
	require.NoError(t, err)
	_, err = other.DecryptString(ciphertext)
	assert.Error(t, err)
}

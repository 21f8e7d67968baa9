package auth_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("hemmeligt123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := auth.VerifyPassword(hash, "hemmeligt123")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = auth.VerifyPassword(hash, "forkert")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_RejectsEmpty(t *testing.T) {
	_, err := auth.HashPassword("")
	require.Error(t, err)
}

func TestVerifyPassword_MalformedHashIsFalse(t *testing.T) {
	ok, err := auth.VerifyPassword("not-a-hash", "whatever")
	require.NoError(t, err)
	require.False(t, ok)
}

func testTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	keyHex := strings.Repeat("ab", 32)
	ts, err := auth.NewTokenService(keyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)
	return ts
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	ts := testTokenService(t)

	coach := &domain.Coach{ID: "coach-abc", Email: "anna@club.dk", IsAdmin: true}

	token, err := ts.GenerateAccessToken(coach)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := ts.VerifyAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "coach-abc", claims.CoachID)
	require.Equal(t, "anna@club.dk", claims.Email)
	require.True(t, claims.IsAdmin)
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	ts := testTokenService(t)

	token, err := ts.GenerateAccessToken(&domain.Coach{ID: "coach-abc", Email: "a@b.dk"})
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(token + "x")
	require.Error(t, err)
}

func TestTokenService_RejectsWrongKey(t *testing.T) {
	ts := testTokenService(t)
	other, err := auth.NewTokenService(strings.Repeat("cd", 32), 15*time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := ts.GenerateAccessToken(&domain.Coach{ID: "coach-abc", Email: "a@b.dk"})
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	require.Error(t, err)
}

func TestNewTokenService_RejectsBadKey(t *testing.T) {
	_, err := auth.NewTokenService("short", time.Minute, time.Hour)
	require.Error(t, err)

	_, err = auth.NewTokenService(strings.Repeat("zz", 32), time.Minute, time.Hour)
	require.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	ts := testTokenService(t)

	a, err := ts.GenerateRefreshToken()
	require.NoError(t, err)
	b, err := ts.GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	// Hash is deterministic and never equals the raw token.
	require.Equal(t, auth.HashRefreshToken(a), auth.HashRefreshToken(a))
	require.NotEqual(t, a, auth.HashRefreshToken(a))
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key1, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	require.Len(t, key1, 64)

	// Second load returns the persisted key.
	key2, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	require.Equal(t, key1, key2)

	// Corrupt key file is rejected.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.key"), []byte("bogus"), 0o600))
	_, err = auth.LoadOrGenerateKey(dir)
	require.Error(t, err)
}

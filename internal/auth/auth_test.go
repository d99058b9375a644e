package auth

import (
	"testing"
	"time"

	"github.com/chris/jot/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	hashCost = bcrypt.MinCost
}

func testUsers() []config.User {
	return []config.User{
		{Username: "demo_user", Name: "Demo User", Password: "demo123"},
		{Username: "Ana", Name: "", Password: "s3cret"},
	}
}

func TestDirectory_Verify(t *testing.T) {
	dir, err := NewDirectory(testUsers())
	require.NoError(t, err)

	name, err := dir.Verify("demo_user", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "Demo User", name)

	name, err = dir.Verify("  ana ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)

	_, err = dir.Verify("demo_user", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = dir.Verify("nobody", "demo123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDirectory_StoresHashes(t *testing.T) {
	dir, err := NewDirectory(testUsers())
	require.NoError(t, err)
	assert.NotEqual(t, "demo123", string(dir.accounts["demo_user"].hash))
}

func TestSessionStore_Expiry(t *testing.T) {
	now := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	store := NewSessionStore(time.Hour)
	store.now = func() time.Time { return now }

	sess := store.Create("demo_user", "Demo User")
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, now.Add(time.Hour), sess.ExpiresAt)

	got, err := store.Get(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	now = now.Add(time.Hour)
	_, err = store.Get(sess.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = store.Get(sess.Token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionStore_UniqueTokens(t *testing.T) {
	store := NewSessionStore(time.Hour)
	a := store.Create("u", "U")
	b := store.Create("u", "U")
	assert.NotEqual(t, a.Token, b.Token)
}

func TestAuthenticator_LoginLogout(t *testing.T) {
	a, err := New(testUsers(), 30, zap.NewNop())
	require.NoError(t, err)

	sess, err := a.Login("demo_user", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "demo_user", sess.Username)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), sess.ExpiresAt, time.Minute)

	got, err := a.Session(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", got.Name)

	a.Logout(sess.Token)
	_, err = a.Session(sess.Token)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = a.Login("demo_user", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

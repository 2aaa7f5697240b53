package users_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-trade-insights/users"
	"github.com/stretchr/testify/require"
)

const (
	testUsername = "johndoe"
	testPassword = "password123"
)

func TestRegisterThenVerify(t *testing.T) {
	repo := users.NewInMemoryRepo()

	require.NoError(t, repo.Register(testUsername, testPassword))
	require.True(t, repo.Exists(testUsername))

	require.True(t, repo.Verify(testUsername, testPassword))
	require.False(t, repo.Verify(testUsername, "wrong-password"))
	require.False(t, repo.Verify("nobody", testPassword))
}

func TestRegisterDuplicateUser(t *testing.T) {
	repo := users.NewInMemoryRepo()

	require.NoError(t, repo.Register(testUsername, testPassword))

	// Rejected regardless of password.
	err := repo.Register(testUsername, testPassword)
	require.ErrorIs(t, err, users.ErrDuplicateUser)
	err = repo.Register(testUsername, "another-password")
	require.ErrorIs(t, err, users.ErrDuplicateUser)
}

func TestRegisterIsCaseSensitive(t *testing.T) {
	repo := users.NewInMemoryRepo()

	require.NoError(t, repo.Register("JohnDoe", testPassword))
	require.NoError(t, repo.Register("johndoe", testPassword))

	require.True(t, repo.Verify("JohnDoe", testPassword))
	require.True(t, repo.Verify("johndoe", testPassword))
}

func TestRegisterRecordsJoinTime(t *testing.T) {
	joined := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := users.NewInMemoryRepo(users.WithNowTime(func() time.Time { return joined }))

	require.NoError(t, repo.Register(testUsername, testPassword))
	require.True(t, repo.Verify(testUsername, testPassword))
}

func TestClearRemovesUsers(t *testing.T) {
	repo := users.NewInMemoryRepo()

	require.NoError(t, repo.Register(testUsername, testPassword))
	repo.Clear()

	require.False(t, repo.Exists(testUsername))
	require.False(t, repo.Verify(testUsername, testPassword))
	require.NoError(t, repo.Register(testUsername, testPassword))
}

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := users.HashPassword(testPassword)
	require.NoError(t, err)
	require.NotEqual(t, testPassword, hash)
	require.True(t, users.CheckPasswordHash(testPassword, hash))
	require.False(t, users.CheckPasswordHash("wrong", hash))
}

func TestValidateUsername(t *testing.T) {
	require.NoError(t, users.ValidateUsername("abc"))
	require.NoError(t, users.ValidateUsername("user123"))

	require.Error(t, users.ValidateUsername("ab"))
	require.Error(t, users.ValidateUsername("user name"))
	require.Error(t, users.ValidateUsername("user-name"))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	require.Error(t, users.ValidateUsername(string(long)))
}

func TestValidatePasswordStrength(t *testing.T) {
	require.NoError(t, users.ValidatePasswordStrength("123456"))
	require.Error(t, users.ValidatePasswordStrength("12345"))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Passw0rd!", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "Passw0rd!", hash)

	require.True(t, CheckPassword(hash, "Passw0rd!"))
	require.False(t, CheckPassword(hash, "passw0rd!"))
	require.False(t, CheckPassword(hash, ""))
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-input", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("same-input", bcrypt.MinCost)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, CheckPassword(first, "same-input"))
	require.True(t, CheckPassword(second, "same-input"))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	require.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
	require.False(t, CheckPassword("", "anything"))
}

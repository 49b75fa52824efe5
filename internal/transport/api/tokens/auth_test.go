package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJWTRoundTrip(t *testing.T) {
	key := []byte("secret")
	var userID int64 = 42

	tokenStr, genErr := GenerateUserJWT(userID, time.Hour, key)
	require.NoError(t, genErr)
	require.NotEmpty(t, tokenStr)

	token, valErr := ValidateUserJWT(tokenStr, key)
	require.NoError(t, valErr)

	claims, ok := token.Claims.(*UserClaims)
	require.True(t, ok)
	assert.Equal(t, userID, claims.ID)
}

func TestValidateUserJWTErrors(t *testing.T) {
	key := []byte("secret")

	t.Run("expired", func(t *testing.T) {
		tokenStr, genErr := GenerateUserJWT(1, -time.Minute, key)
		require.NoError(t, genErr)

		_, valErr := ValidateUserJWT(tokenStr, key)
		assert.ErrorIs(t, valErr, ErrTokenExpired)
	})

	t.Run("wrong key", func(t *testing.T) {
		tokenStr, genErr := GenerateUserJWT(1, time.Hour, key)
		require.NoError(t, genErr)

		_, valErr := ValidateUserJWT(tokenStr, []byte("another key"))
		assert.Error(t, valErr)
	})
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordVerifier(t *testing.T) {
	verifier, err := NewPasswordVerifier(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	tests := []struct {
		name  string
		hash  string
		plain string
		want  error
	}{
		{name: "match", hash: hash, plain: "s3cret-pass"},
		{name: "mismatch", hash: hash, plain: "wrong", want: ErrInvalidCredentials},
		{name: "unknown account", hash: "", plain: "s3cret-pass", want: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifier.Verify(tt.hash, tt.plain)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHashPasswordFallsBackOnInvalidCost(t *testing.T) {
	hash, err := HashPassword("pw", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

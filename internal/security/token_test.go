package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret-that-is-long-enough-000", 60)

	token, err := manager.GenerateAccessToken(7, 42, []string{"treasurer", "speaker"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.OfficerID)
	assert.Equal(t, int32(42), claims.MemberNo)
	assert.True(t, claims.HasRole("treasurer"))
	assert.False(t, claims.HasRole("chairman"))
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	manager := NewTokenManager("test-secret-that-is-long-enough-000", 60)
	other := NewTokenManager("another-secret-that-is-long-enough", 60)

	token, err := other.GenerateAccessToken(7, 42, nil)
	assert.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret-that-is-long-enough-000", 60)
	_, err := manager.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevoker(t *testing.T) {
	r := NewMemoryRevoker()
	now := time.Now()
	r.now = func() time.Time { return now }

	assert.False(t, r.IsRevoked("a"))

	require.NoError(t, r.Revoke("a", now.Add(time.Minute)))
	require.NoError(t, r.Revoke("b", now.Add(-time.Minute)))
	assert.True(t, r.IsRevoked("a"))
	assert.False(t, r.IsRevoked("b"))

	now = now.Add(2 * time.Minute)
	assert.False(t, r.IsRevoked("a"))

	require.NoError(t, r.Revoke("c", now.Add(time.Minute)))
	assert.Len(t, r.revoked, 1)
}

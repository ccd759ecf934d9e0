package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvidenceExpiry(t *testing.T) {
	collected := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, EvidenceExpiry(collected, nil))

	ttl := 24
	exp := EvidenceExpiry(collected, &ttl)
	require.NotNil(t, exp)
	assert.Equal(t, time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC), *exp)
}

func TestFresh(t *testing.T) {
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	past, future := now.Add(-time.Second), now.Add(time.Second)
	assert.True(t, EvidenceItem{}.Fresh(now))
	assert.True(t, EvidenceItem{ExpiresAt: &future}.Fresh(now))
	assert.False(t, EvidenceItem{ExpiresAt: &past}.Fresh(now))
	assert.False(t, EvidenceItem{ExpiresAt: &now}.Fresh(now), "expiry at now is stale")
}

package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsFresh(t *testing.T) {
	now := time.Now()

	assert.True(t, IsFresh(now.Add(-1*time.Hour), FreshnessHistory))
	assert.False(t, IsFresh(now.Add(-21*time.Hour), FreshnessHistory))
	assert.True(t, IsFresh(now.Add(-5*24*time.Hour), FreshnessFinancials))
	assert.False(t, IsFresh(now.Add(-7*24*time.Hour), FreshnessFinancials))
	assert.False(t, IsFresh(time.Time{}, FreshnessHistory), "zero time is never fresh")
}

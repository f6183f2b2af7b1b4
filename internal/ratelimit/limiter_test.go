package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterBurst(t *testing.T) {
	l := NewWithBurst("rawg", 0.001, 2)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
	assert.Equal(t, "rawg", l.Source())
}

func TestLimiterWaitCancelled(t *testing.T) {
	l := NewWithBurst("wikipedia", 0.001, 1)
	require.True(t, l.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait for wikipedia")
}

func TestNilLimiterNeverBlocks(t *testing.T) {
	var l *Limiter
	require.NoError(t, l.Wait(context.Background()))
	assert.True(t, l.Allow())
	assert.Empty(t, l.Source())
}

func TestNewClampsBurst(t *testing.T) {
	l := New("zero", 0)
	assert.True(t, l.Allow())
}

package deadline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRace_ReturnsResult(t *testing.T) {
	v, err := Race(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestRace_PassesThroughError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Race(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRace_ExpiresOnStuckCall(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	_, err := Race(context.Background(), 20*time.Millisecond, func(ctx context.Context) (string, error) {
		// ignores ctx on purpose
		<-release
		return "late", nil
	})

	assert.ErrorIs(t, err, ErrExpired)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRace_ExpiresOnContextAwareCall(t *testing.T) {
	_, err := Race(context.Background(), 20*time.Millisecond, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	assert.ErrorIs(t, err, ErrExpired)
}

func TestRace_ParentCancellationWins(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Race(parent, time.Second, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrExpired)
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterEnforcesDelay(t *testing.T) {
	limiter := NewRateLimiter(100)

	start := time.Now()
	limiter.Wait()
	limiter.Wait()

	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestRateLimiterFirstCallIsImmediate(t *testing.T) {
	limiter := NewRateLimiter(5000)

	start := time.Now()
	limiter.Wait()

	require.Less(t, time.Since(start), time.Second)
}

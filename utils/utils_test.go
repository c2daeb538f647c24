package utils

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchSize_WithinBounds(t *testing.T) {
	for _, rate := range []int{1, 2, 5, 10} {
		seen := make(map[int]bool)
		for i := 0; i < 1000; i++ {
			n := BatchSize(rate)
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, rate)
			seen[n] = true
		}
		if rate > 1 {
			// Both ends of [1, rate] should show up over 1000 draws.
			assert.True(t, seen[1], "rate %d never produced 1", rate)
			assert.True(t, seen[rate], "rate %d never produced %d", rate, rate)
		}
	}
}

func TestBatchSize_DegenerateRates(t *testing.T) {
	assert.Equal(t, 1, BatchSize(0))
	assert.Equal(t, 1, BatchSize(-3))
	assert.Equal(t, 1, BatchSize(1))
}

func TestRedisHealthCheck_Reachable(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	assert.NoError(t, RedisHealthCheck(context.Background(), client))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisHealthCheck_Unreachable(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(assert.AnError)

	err := RedisHealthCheck(context.Background(), client)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate-limiter redis unreachable")
}

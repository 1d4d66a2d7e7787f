package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbadb/ingestion/internal/client"
)

func TestRunBatchAllSucceed(t *testing.T) {
	var calls []int
	ingest := func(ctx context.Context, gameID int) error {
		calls = append(calls, gameID)
		return nil
	}

	result := runBatch(context.Background(), []int{1, 2, 3}, ingest)
	assert.Equal(t, 3, result.Ingested)
	assert.Empty(t, result.Failed)
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestRunBatchRetriesTransientAtEndOfBatch(t *testing.T) {
	var calls []int
	transientLeft := map[int]int{2: 1}
	ingest := func(ctx context.Context, gameID int) error {
		calls = append(calls, gameID)
		if transientLeft[gameID] > 0 {
			transientLeft[gameID]--
			return &client.TransientError{Err: errors.New("connection reset")}
		}
		return nil
	}

	result := runBatch(context.Background(), []int{1, 2, 3}, ingest)
	assert.Equal(t, 3, result.Ingested)
	assert.Empty(t, result.Failed)

	// Game 2 is retried after the rest of the batch, not immediately.
	assert.Equal(t, []int{1, 2, 3, 2}, calls)
}

func TestRunBatchSecondTransientFailureIsPermanent(t *testing.T) {
	ingest := func(ctx context.Context, gameID int) error {
		if gameID == 2 {
			return &client.TransientError{Err: errors.New("connection reset")}
		}
		return nil
	}

	result := runBatch(context.Background(), []int{1, 2, 3}, ingest)
	assert.Equal(t, 2, result.Ingested)
	require.Len(t, result.Failed, 1)
	assert.True(t, client.IsTransient(result.Failed[2]))
}

func TestRunBatchNonTransientFailureIsNotRetried(t *testing.T) {
	calls := 0
	ingest := func(ctx context.Context, gameID int) error {
		calls++
		return errors.New("malformed response")
	}

	result := runBatch(context.Background(), []int{7}, ingest)
	assert.Zero(t, result.Ingested)
	require.Len(t, result.Failed, 1)
	assert.EqualError(t, result.Failed[7], "malformed response")
	assert.Equal(t, 1, calls)
}

func TestRunBatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ingest := func(ctx context.Context, gameID int) error {
		t.Fatal("ingest should not run after cancellation")
		return nil
	}

	result := runBatch(ctx, []int{1, 2}, ingest)
	assert.Zero(t, result.Ingested)
	assert.Len(t, result.Failed, 2)
}

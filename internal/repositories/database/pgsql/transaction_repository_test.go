package pgsql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/pocket_ledger_app/internal/apperrors"
	"github.com/pocketledger/pocket_ledger_app/internal/utils/pagination"
)

func TestBuildHistoryQueryFullHistoryByDefault(t *testing.T) {
	query, args, err := buildHistoryQuery("acc-1", 0, nil)

	require.NoError(t, err)
	assert.NotContains(t, query, "LIMIT")
	assert.Contains(t, query, "ORDER BY created_at DESC, transaction_id DESC")
	assert.Equal(t, []interface{}{"acc-1"}, args)
}

func TestBuildHistoryQueryNegativeLimitMeansFullHistory(t *testing.T) {
	query, args, err := buildHistoryQuery("acc-1", -1, nil)

	require.NoError(t, err)
	assert.NotContains(t, query, "LIMIT")
	assert.Len(t, args, 1)
}

func TestBuildHistoryQueryWithLimit(t *testing.T) {
	query, args, err := buildHistoryQuery("acc-1", 20, nil)

	require.NoError(t, err)
	assert.Contains(t, query, "LIMIT $2")
	require.Len(t, args, 2)
	// One extra row is fetched to detect whether a next page exists.
	assert.Equal(t, 21, args[1])
}

func TestBuildHistoryQueryWithCursor(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token := pagination.EncodeToken(createdAt, "txn-42")

	query, args, err := buildHistoryQuery("acc-1", 10, &token)

	require.NoError(t, err)
	assert.Contains(t, query, "(created_at, transaction_id) < ($2, $3)")
	assert.Contains(t, query, "LIMIT $4")
	require.Len(t, args, 4)
	cursorTime, ok := args[1].(time.Time)
	require.True(t, ok)
	assert.True(t, createdAt.Equal(cursorTime))
	assert.Equal(t, "txn-42", args[2])
	assert.Equal(t, 11, args[3])
}

func TestBuildHistoryQueryCursorWithoutLimit(t *testing.T) {
	// A cursor restarts the listing mid-stream; without a limit the rest of
	// the history comes back in one response.
	token := pagination.EncodeToken(time.Now().UTC(), "txn-42")

	query, args, err := buildHistoryQuery("acc-1", 0, &token)

	require.NoError(t, err)
	assert.Contains(t, query, "(created_at, transaction_id) < ($2, $3)")
	assert.NotContains(t, query, "LIMIT")
	assert.Len(t, args, 3)
}

func TestBuildHistoryQueryRejectsBadToken(t *testing.T) {
	token := "not-a-token"

	_, _, err := buildHistoryQuery("acc-1", 10, &token)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

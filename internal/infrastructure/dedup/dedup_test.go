package dedup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDeduplicatorClaim(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.MatchExpectationsInOrder(true)
	mock.ExpectSetNX(keyPrefix+"w-1", 1, time.Hour).SetVal(true)
	mock.ExpectSetNX(keyPrefix+"w-1", 1, time.Hour).SetVal(false)

	d := NewRedisDeduplicator(db, time.Hour)

	first, err := d.Claim(context.Background(), "w-1")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := d.Claim(context.Background(), "w-1")
	require.NoError(t, err)
	assert.False(t, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisDeduplicatorClaimError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectSetNX(keyPrefix+"w-2", 1, time.Hour).SetErr(errors.New("connection refused"))

	_, err := NewRedisDeduplicator(db, time.Hour).Claim(context.Background(), "w-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRedisDeduplicatorRelease(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectDel(keyPrefix + "w-3").SetVal(1)

	require.NoError(t, NewRedisDeduplicator(db, time.Hour).Release(context.Background(), "w-3"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoop(t *testing.T) {
	ok, err := Noop{}.Claim(context.Background(), "any")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, Noop{}.Release(context.Background(), "any"))
}

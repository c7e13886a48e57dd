package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_AdjustBalance(t *testing.T) {
	e := newTestEnv(t)
	svc := NewLedgerService(e.users)
	ctx := context.Background()

	e.seedUser(t, "alice", 10, false)

	updated, err := svc.AdjustBalance(ctx, "alice", 25)
	require.NoError(t, err)
	assert.Equal(t, 35, updated.Balance)
	assert.Equal(t, 25, updated.Stats.CoinsAwarded)

	updated, err = svc.AdjustBalance(ctx, "alice", -5)
	require.NoError(t, err)
	assert.Equal(t, 30, updated.Balance)
	assert.Equal(t, 20, updated.Stats.CoinsAwarded, "negative adjustments reduce awarded total")
}

func TestLedgerService_AdjustBalanceRejectsZeroAndOverdraw(t *testing.T) {
	e := newTestEnv(t)
	svc := NewLedgerService(e.users)
	ctx := context.Background()

	e.seedUser(t, "alice", 10, false)

	_, err := svc.AdjustBalance(ctx, "alice", 0)
	assertErrCode(t, err, "VALIDATION_ERROR")

	_, err = svc.AdjustBalance(ctx, "alice", -11)
	assertErrCode(t, err, "VALIDATION_ERROR")
	assert.Equal(t, 10, e.balance(t, "alice"), "rejected adjustment must not move the balance")

	_, err = svc.AdjustBalance(ctx, "ghost", 5)
	assertErrCode(t, err, "NOT_FOUND")
}

func TestLedgerService_DebitAndRefundStake(t *testing.T) {
	e := newTestEnv(t)
	svc := NewLedgerService(e.users)
	ctx := context.Background()

	e.seedUser(t, "alice", 10, false)

	require.NoError(t, svc.DebitStake(ctx, "alice", 5))
	assert.Equal(t, 5, e.balance(t, "alice"))

	err := svc.DebitStake(ctx, "alice", 6)
	assertErrCode(t, err, "INSUFFICIENT_FUNDS")
	assert.Equal(t, 5, e.balance(t, "alice"))

	require.NoError(t, svc.RefundStake(ctx, "alice", 5))
	assert.Equal(t, 10, e.balance(t, "alice"))

	// Zero-stake lobbies never touch the ledger
	require.NoError(t, svc.DebitStake(ctx, "alice", 0))
	require.NoError(t, svc.RefundStake(ctx, "alice", 0))
	assert.Equal(t, 10, e.balance(t, "alice"))
}

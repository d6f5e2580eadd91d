package services

import (
	"context"
	"sync"
	"testing"

	"dream-analyzer/backend/internal/db/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardLedger_GrantsOnce(t *testing.T) {
	db, sqlxDB := setupTestDB(t)
	ledger := NewRewardLedger(repositories.NewRewardLedgerRepository(sqlxDB))
	user := seedUser(t, db, 42, 2, false)

	outcome, err := ledger.ClaimReward(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, ClaimGranted, outcome.Result)
	assert.Equal(t, 3, outcome.NewBalance)

	again, err := ledger.ClaimReward(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, ClaimAlreadyClaimed, again.Result)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, 3, stored.Balance)
	assert.True(t, stored.ChannelRewardClaimed)
}

func TestRewardLedger_UserNotFound(t *testing.T) {
	_, sqlxDB := setupTestDB(t)
	ledger := NewRewardLedger(repositories.NewRewardLedgerRepository(sqlxDB))

	outcome, err := ledger.ClaimReward(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, ClaimUserNotFound, outcome.Result)
}

func TestRewardLedger_AlreadyClaimedSkipsWrite(t *testing.T) {
	db, sqlxDB := setupTestDB(t)
	ledger := NewRewardLedger(repositories.NewRewardLedgerRepository(sqlxDB))
	user := seedUser(t, db, 42, 5, true)

	outcome, err := ledger.ClaimReward(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, ClaimAlreadyClaimed, outcome.Result)
	assert.Equal(t, 5, reloadUser(t, db, user.ID).Balance)
}

func TestRewardLedger_ConcurrentClaims(t *testing.T) {
	db, sqlxDB := setupTestDB(t)
	ledger := NewRewardLedger(repositories.NewRewardLedgerRepository(sqlxDB))
	user := seedUser(t, db, 42, 2, false)

	const n = 20
	results := make([]ClaimOutcome, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = ledger.ClaimReward(context.Background(), user.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	granted := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		switch results[i].Result {
		case ClaimGranted:
			granted++
			assert.Equal(t, 3, results[i].NewBalance)
		case ClaimAlreadyClaimed:
		default:
			t.Errorf("Unexpected outcome %s", results[i].Result)
		}
	}

	assert.Equal(t, 1, granted)
	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, 3, stored.Balance)
	assert.True(t, stored.ChannelRewardClaimed)
}

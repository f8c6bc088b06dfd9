package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/hashchain"
)

func TestHashChainStore_ServiceRoundTrip(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()

	svc := hashchain.NewService(NewHashChainStore(pool), nil, hashchain.Config{SegmentLength: 4})
	require.NoError(t, svc.Init(ctx))

	var issued []domain.ChainLink
	for i := 0; i < 4; i++ {
		link, err := svc.Next(ctx)
		require.NoError(t, err)
		issued = append(issued, link)
	}
	require.NoError(t, svc.VerifyAll(ctx))
	assert.Len(t, svc.Commitment().Segments, 2)
	svc.Close()

	restarted := hashchain.NewService(NewHashChainStore(pool), nil, hashchain.Config{SegmentLength: 4})
	require.NoError(t, restarted.Init(ctx))
	defer restarted.Close()
	before, after := svc.Commitment(), restarted.Commitment()
	assert.Equal(t, before.FinalHash, after.FinalHash)
	assert.Equal(t, before.Next, after.Next)
	assert.Equal(t, before.Remaining, after.Remaining)

	next, err := restarted.Next(ctx)
	require.NoError(t, err)
	assert.Greater(t, next.OrderIndex, issued[len(issued)-1].OrderIndex)

	var checksum string
	require.NoError(t, pool.QueryRow(ctx, `SELECT checksum FROM hash_chain_links WHERE order_index = $1`, next.OrderIndex).Scan(&checksum))
	assert.Equal(t, next.Prev, checksum)
}

func TestHashChainStore_RejectsOverlap(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()
	store := NewHashChainStore(pool)

	links, err := hashchain.Generate("", 3, 0, nil)
	require.NoError(t, err)
	seg := domain.ChainSegment{Index: 0, Start: 0, Length: 3, FinalHash: links[0], CreatedAt: time.Now()}
	require.NoError(t, store.AppendSegment(ctx, seg, links))

	seg.Index = 1
	err = store.AppendSegment(ctx, seg, links)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Segments, 1)
	assert.NoError(t, hashchain.VerifyState(state))
}

func TestHashChainStore_SingleIssuer(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()

	first := hashchain.NewService(NewHashChainStore(pool), nil, hashchain.Config{SegmentLength: 4})
	require.NoError(t, first.Init(ctx))

	second := hashchain.NewService(NewHashChainStore(pool), nil, hashchain.Config{SegmentLength: 4})
	err := second.Init(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	issued, err := first.Next(ctx)
	require.NoError(t, err)
	first.Close()

	require.NoError(t, second.Init(ctx))
	defer second.Close()
	next, err := second.Next(ctx)
	require.NoError(t, err)
	assert.Greater(t, next.OrderIndex, issued.OrderIndex, "no index is issued twice across processes")
}

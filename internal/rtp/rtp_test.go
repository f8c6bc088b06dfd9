package rtp

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/event"
)

func settled(bet, won string) domain.Wager {
	status := domain.WagerStatusLost
	if decimal.RequireFromString(won).IsPositive() {
		status = domain.WagerStatusWon
	}
	return domain.Wager{
		BetAmount: decimal.RequireFromString(bet),
		WonAmount: decimal.RequireFromString(won),
		Status:    status,
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		wagers     []domain.Wager
		wantRTP    string
		wantMargin string
		wantCount  int64
	}{
		{"empty", nil, "0", "0", 0},
		{"one double, one loss", []domain.Wager{settled("10", "20"), settled("10", "0")}, "100", "0", 2},
		{"all lost", []domain.Wager{settled("5", "0"), settled("5", "0")}, "0", "100", 2},
		{"fractional", []domain.Wager{settled("4", "3")}, "75", "25", 1},
		{"pending ignored", []domain.Wager{
			settled("10", "5"),
			{BetAmount: decimal.NewFromInt(1000), WonAmount: decimal.Zero, Status: domain.WagerStatusPending},
		}, "50", "50", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Compute(tt.wagers)
			assert.True(t, decimal.RequireFromString(tt.wantRTP).Equal(stats.RTP), "rtp %s", stats.RTP)
			assert.True(t, decimal.RequireFromString(tt.wantMargin).Equal(stats.ProfitMargin), "margin %s", stats.ProfitMargin)
			assert.Equal(t, tt.wantCount, stats.WagerCount)
		})
	}
}

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) AggregateSettled(ctx context.Context, filter domain.RTPFilter, since *time.Time) (domain.RTPStats, error) {
	args := m.Called(ctx, filter, since)
	return args.Get(0).(domain.RTPStats), args.Error(1)
}

func (m *MockRepository) GetGameStats(ctx context.Context) ([]domain.GameStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GameStats), args.Error(1)
}

func TestComputeRTP_CachesUntilWagerSettles(t *testing.T) {
	repo := &MockRepository{}
	bus := event.NewMemoryBus()
	svc := NewService(repo, quartz.NewMock(t), time.Minute)
	svc.Register(bus)

	filter := domain.RTPFilter{GameName: domain.GameTypeSolo}
	totals := domain.RTPStats{TotalWagered: decimal.NewFromInt(20), TotalWon: decimal.NewFromInt(20), WagerCount: 2}
	repo.On("AggregateSettled", mock.Anything, filter, (*time.Time)(nil)).Return(totals, nil)

	first, err := svc.ComputeRTP(context.Background(), filter)
	require.NoError(t, err)
	assert.True(t, first.RTP.Equal(decimal.NewFromInt(100)))

	_, err = svc.ComputeRTP(context.Background(), filter)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "AggregateSettled", 1)

	require.NoError(t, bus.Publish(context.Background(), event.Event{Type: event.WagerSettled}))

	_, err = svc.ComputeRTP(context.Background(), filter)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "AggregateSettled", 2)
}

func TestComputeRTP_TimeRange(t *testing.T) {
	repo := &MockRepository{}
	clock := quartz.NewMock(t)
	svc := NewService(repo, clock, time.Minute)

	want := clock.Now().AddDate(0, 0, -7)
	repo.On("AggregateSettled", mock.Anything, mock.Anything, mock.MatchedBy(func(since *time.Time) bool {
		return since != nil && since.Equal(want)
	})).Return(domain.RTPStats{TotalWagered: decimal.Zero, TotalWon: decimal.Zero}, nil)

	stats, err := svc.ComputeRTP(context.Background(), domain.RTPFilter{TimeRangeDays: 7})
	require.NoError(t, err)
	assert.True(t, stats.RTP.IsZero())
	assert.True(t, stats.ProfitMargin.IsZero())
}

func TestComputeRTP_RejectsBadRange(t *testing.T) {
	svc := NewService(&MockRepository{}, quartz.NewMock(t), time.Minute)

	for _, days := range []int{-1, MaxTimeRangeDays + 1} {
		_, err := svc.ComputeRTP(context.Background(), domain.RTPFilter{TimeRangeDays: days})
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestStatsCache_DropsOldSchema(t *testing.T) {
	c := newStatsCache(4, time.Minute)
	f := domain.RTPFilter{GameID: "g"}
	c.lru.Add(cacheKey(f), cachedStats{Version: "0.9"})

	_, ok := c.Get(f)
	assert.False(t, ok)
	assert.Equal(t, 0, c.lru.Len())
}

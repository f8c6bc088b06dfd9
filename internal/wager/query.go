package wager

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// GetGroupRoundStatus reports whether a round is accepting wagers and for how
// much longer, in milliseconds
func (s *service) GetGroupRoundStatus(ctx context.Context) (*domain.GroupRoundStatusView, error) {
	now := s.clock.Now()
	round, err := s.repo.GetOpenGroupRound(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetOpenRound, err)
	}
	if round == nil {
		return &domain.GroupRoundStatusView{Active: false}, nil
	}

	endTime := round.EndTime
	return &domain.GroupRoundStatusView{
		Active:        true,
		GameID:        round.GameID,
		EndTime:       &endTime,
		TimeRemaining: round.EndTime.Sub(now).Milliseconds(),
	}, nil
}

// GetGroupRoundResult returns one player's view of a group round. An expired
// round that nobody has settled yet is settled first. Seeds are only included
// once the round is completed.
func (s *service) GetGroupRoundResult(ctx context.Context, gameID, userID string) (*domain.GroupRoundResultView, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	round, err := s.repo.GetGroupRound(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetRound, err)
	}
	if round == nil {
		return nil, domain.ErrRoundNotFound
	}

	if round.Status == domain.GroupRoundPending && !s.clock.Now().Before(round.EndTime) {
		if _, err := s.SettleGroupRound(ctx, gameID); err != nil && !errors.Is(err, domain.ErrRoundStillOpen) {
			return nil, err
		}
		if round, err = s.repo.GetGroupRound(ctx, gameID); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetRound, err)
		}
		if round == nil {
			return nil, domain.ErrRoundNotFound
		}
	}

	wagers, err := s.repo.GetRoundWagersForUser(ctx, gameID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetWagers, err)
	}
	if len(wagers) == 0 {
		return nil, fmt.Errorf("%w: no wager by %s on round %s", domain.ErrWagerNotFound, userID, gameID)
	}

	return resultView(round, wagers), nil
}

// resultView folds a player's wagers on one round into a single view
func resultView(round *domain.GroupRound, wagers []domain.Wager) *domain.GroupRoundResultView {
	view := &domain.GroupRoundResultView{
		GameID:    round.GameID,
		Status:    domain.WagerStatusPending,
		BetAmount: decimal.Zero,
		WonAmount: decimal.Zero,
		RTP:       decimal.Zero,
	}
	for _, w := range wagers {
		view.BetAmount = view.BetAmount.Add(w.BetAmount)
		view.WonAmount = view.WonAmount.Add(w.WonAmount)
	}

	if round.Status != domain.GroupRoundCompleted {
		return view
	}

	view.Status = domain.WagerStatusLost
	if view.WonAmount.IsPositive() {
		view.Status = domain.WagerStatusWon
	}
	if view.BetAmount.IsPositive() {
		view.RTP = view.WonAmount.Div(view.BetAmount).Mul(decimal.NewFromInt(100))
	}
	seeds := round.Seeds
	view.Seeds = &seeds
	view.RoundResult = round.Result
	view.ChainLink = round.ChainLink
	return view
}

// GetUserWagers lists a user's most recent wagers. Seeds of wagers that are
// still pending are never included.
func (s *service) GetUserWagers(ctx context.Context, userID string, limit int) ([]domain.Wager, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	wagers, err := s.repo.GetUserWagers(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetWagers, err)
	}
	for i := range wagers {
		if !wagers[i].Status.Terminal() {
			wagers[i].Seeds = nil
		}
	}
	return wagers, nil
}

// GetPlayerStats returns a player's totals plus recent game history
func (s *service) GetPlayerStats(ctx context.Context, userID string) (*domain.PlayerStats, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	limit := s.cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	stats, err := s.repo.GetPlayerStats(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetPlayerStats, err)
	}
	if stats == nil {
		logger.FromContext(ctx).Debug(LogMsgNoPlayerStats, "userID", userID)
		return &domain.PlayerStats{
			UserID:              userID,
			TotalBaseWinAmount:  decimal.Zero,
			TotalBonusWinAmount: decimal.Zero,
			TotalBetAmount:      decimal.Zero,
		}, nil
	}
	return stats, nil
}

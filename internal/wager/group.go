package wager

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/metrics"
	"github.com/osse101/ProvablyFair_Go/internal/repository"
	"github.com/osse101/ProvablyFair_Go/internal/rng"
)

// PlaceGroupWager debits the bet and attaches a pending wager to the open
// round, creating the round when none is open
func (s *service) PlaceGroupWager(ctx context.Context, req domain.WagerRequest) (*domain.WagerOutcome, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPlaceGroupWagerCalled, "userID", req.UserID, "bet", req.BetAmount, "currency", req.Currency)

	sb, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	target := s.defaultTarget(ctx)

	var w *domain.Wager
	var round *domain.GroupRound
	var created bool
	err = s.withRetry(ctx, domain.GameTypeGroup, func() error {
		var txErr error
		w, round, created, txErr = s.executeGroupJoinTx(ctx, req, sb, target)
		return txErr
	})
	if err != nil {
		log.Warn(LogMsgSettlementFailed, "userID", req.UserID, "error", err)
		return nil, err
	}

	metrics.WagersPlaced.WithLabelValues(string(domain.GameTypeGroup), string(req.Currency)).Inc()
	if created {
		log.Info(LogMsgGroupRoundCreated, "gameID", round.GameID, "endTime", round.EndTime)
		s.publish(ctx, event.NewGroupRoundOpenedEvent(*round))
	}
	log.Info(LogMsgGroupWagerAccepted, "wagerID", w.ID, "gameID", round.GameID)

	if remaining := round.EndTime.Sub(w.CreatedAt); remaining <= s.cfg.LateJoinSettleWindow {
		s.scheduleSettle(ctx, round.GameID, remaining)
	}

	endTime := round.EndTime
	return &domain.WagerOutcome{
		WagerID:        w.ID,
		Status:         domain.WagerStatusPending,
		WonAmount:      decimal.Zero,
		ServerSeedHash: round.ServerSeedHash,
		GameID:         round.GameID,
		EndTime:        &endTime,
	}, nil
}

func (s *service) executeGroupJoinTx(ctx context.Context, req domain.WagerRequest, sb domain.SubBalance, target decimal.Decimal) (*domain.Wager, *domain.GroupRound, bool, error) {
	tx, err := s.repo.BeginWagerTx(ctx)
	if err != nil {
		return nil, nil, false, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	before, err := tx.DebitBalance(ctx, req.UserID, sb, req.BetAmount)
	if err != nil {
		return nil, nil, false, fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
	}

	if err := tx.LockRoundCreation(ctx); err != nil {
		return nil, nil, false, fmt.Errorf("%s: %w", ErrContextFailedToLockRounds, err)
	}

	now := s.clock.Now()
	round, err := tx.GetOpenGroupRoundForShare(ctx, now)
	if err != nil {
		return nil, nil, false, fmt.Errorf("%s: %w", ErrContextFailedToGetOpenRound, err)
	}

	created := false
	if round == nil {
		if round, err = s.newGroupRound(now); err != nil {
			return nil, nil, false, err
		}
		if err := tx.CreateGroupRound(ctx, round); err != nil {
			return nil, nil, false, fmt.Errorf("%s: %w", ErrContextFailedToCreateRound, err)
		}
		created = true
	}

	w := &domain.Wager{
		ID:               uuid.New(),
		UserID:           req.UserID,
		GameName:         domain.GameTypeGroup,
		GameID:           round.GameID,
		BetAmount:        req.BetAmount,
		BalanceBefore:    before,
		TargetMultiplier: target,
		Currency:         req.Currency,
		Status:           domain.WagerStatusPending,
		WonAmount:        decimal.Zero,
		CreatedAt:        now,
	}
	if err := tx.InsertWager(ctx, w); err != nil {
		return nil, nil, false, fmt.Errorf("%s: %w", ErrContextFailedToInsertWager, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, false, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return w, round, created, nil
}

// newGroupRound commits to fresh seeds; only the server seed hash is published
func (s *service) newGroupRound(now time.Time) (*domain.GroupRound, error) {
	seeds, err := rng.NewSeedTriple("", rand.Uint64N(GroupRoundNonceRange))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGenerateSeeds, err)
	}
	return &domain.GroupRound{
		GameID:         uuid.NewString(),
		StartTime:      now,
		EndTime:        now.Add(s.cfg.GroupRoundDuration),
		Status:         domain.GroupRoundPending,
		Seeds:          seeds,
		ServerSeedHash: rng.HashSeed(seeds.ServerSeed),
	}, nil
}

// scheduleSettle settles gameID once its deadline passes. At most one such
// timer exists per round.
func (s *service) scheduleSettle(ctx context.Context, gameID string, delay time.Duration) {
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lateSettles[gameID]; ok {
		return
	}

	logger.FromContext(ctx).Info(LogMsgLateJoinSettleScheduled, "gameID", gameID, "in", delay)
	s.wg.Add(1)
	s.lateSettles[gameID] = s.clock.AfterFunc(delay, func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.lateSettles, gameID)
			s.mu.Unlock()
		}()

		settleCtx := context.Background()
		if _, err := s.SettleGroupRound(settleCtx, gameID); err != nil {
			logger.FromContext(settleCtx).Warn(LogMsgLateSettleFailed, "gameID", gameID, "error", err)
		}
	}, clockTagWager, clockTagLateJoin)
}

// SettleGroupRound closes an expired round exactly once. Concurrent callers in
// this process share one attempt; callers in other processes lose the status
// CAS and see a no-op.
func (s *service) SettleGroupRound(ctx context.Context, gameID string) (*domain.GroupRound, error) {
	v, err, _ := s.settles.Do(gameID, func() (interface{}, error) {
		return s.settleGroupRound(ctx, gameID)
	})
	if err != nil {
		return nil, err
	}
	round, _ := v.(*domain.GroupRound)
	return round, nil
}

func (s *service) settleGroupRound(ctx context.Context, gameID string) (*domain.GroupRound, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSettleGroupRoundCalled, "gameID", gameID)

	start := time.Now()
	var settledRound *domain.GroupRound
	var settled []domain.Wager
	err := s.withRetry(ctx, domain.GameTypeGroup, func() error {
		settledRound, settled = nil, nil

		round, err := s.repo.GetGroupRound(ctx, gameID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToGetRound, err)
		}
		if round == nil {
			return domain.ErrRoundNotFound
		}
		if round.Status == domain.GroupRoundCompleted {
			log.Info(LogMsgGroupRoundAlreadyClosed, "gameID", gameID)
			return nil
		}
		if err := s.validateSettle(round); err != nil {
			return err
		}

		settledRound, settled, err = s.executeGroupSettleTx(ctx, round)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrRoundStillOpen) {
			log.Warn(LogMsgSettlementFailed, "gameID", gameID, "error", err)
		}
		return nil, err
	}
	if settledRound == nil {
		return nil, nil
	}
	metrics.SettlementDuration.WithLabelValues(string(domain.GameTypeGroup)).Observe(time.Since(start).Seconds())

	log.Info(LogMsgGroupRoundSettled, "gameID", gameID,
		"payoutMultiplier", settledRound.Result.PayoutMultiplier, "wagers", len(settled))

	s.publish(ctx, event.NewGroupRoundCompletedEvent(*settledRound, len(settled)))
	for _, w := range settled {
		s.publish(ctx, event.NewWagerSettledEvent(w))
	}
	return settledRound, nil
}

func (s *service) validateSettle(round *domain.GroupRound) error {
	if round.Status != domain.GroupRoundPending {
		return fmt.Errorf("%w (status: %s)", domain.ErrRoundAlreadyCompleted, round.Status)
	}
	if s.clock.Now().Before(round.EndTime) {
		return fmt.Errorf("%w (ends: %v)", domain.ErrRoundStillOpen, round.EndTime)
	}
	return nil
}

// executeGroupSettleTx claims the round, plays it once with a unit bet and
// pays every pending wager. A lost claim returns a nil round.
func (s *service) executeGroupSettleTx(ctx context.Context, round *domain.GroupRound) (*domain.GroupRound, []domain.Wager, error) {
	tx, err := s.repo.BeginWagerTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	claimed, err := tx.UpdateGroupRoundStatusIfMatches(ctx, round.GameID, domain.GroupRoundPending, domain.GroupRoundCompleted)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToCloseRound, err)
	}
	if claimed == 0 {
		logger.FromContext(ctx).Info(LogMsgGroupRoundClaimedByPeer, "gameID", round.GameID)
		return nil, nil, nil
	}

	result, _ := s.engine.Play(round.Seeds, decimal.NewFromInt(groupRoundBet))

	pending, err := tx.GetPendingRoundWagers(ctx, round.GameID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToGetRoundWagers, err)
	}

	now := s.clock.Now()
	settled := make([]domain.Wager, 0, len(pending))
	for _, w := range pending {
		paid, ok, err := s.settleGroupWager(ctx, tx, w, round.Seeds, result, now)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			settled = append(settled, paid)
		}
	}

	link, err := s.chain.Next(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToIssueChainLink, err)
	}

	if err := tx.SaveGroupRoundResult(ctx, round.GameID, result, &link, now); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveRoundResult, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	closed := *round
	closed.Status = domain.GroupRoundCompleted
	closed.Result = &result
	closed.ChainLink = &link
	metrics.GroupRoundWagers.Observe(float64(len(settled)))
	return &closed, settled, nil
}

// settleGroupWager pays amount * PayoutMultiplier. ok is false when the wager
// was no longer pending.
func (s *service) settleGroupWager(ctx context.Context, tx repository.WagerTx, w domain.Wager, seeds domain.SeedTriple, result domain.RoundResult, now time.Time) (domain.Wager, bool, error) {
	won := w.BetAmount.Mul(result.PayoutMultiplier)
	status := domain.WagerStatusLost
	if won.IsPositive() {
		status = domain.WagerStatusWon
	}

	n, err := tx.SettleWagerIfPending(ctx, w.ID, status, won, now)
	if err != nil {
		return w, false, fmt.Errorf("%s: %w", ErrContextFailedToSettleWager, err)
	}
	if n == 0 {
		return w, false, nil
	}

	if won.IsPositive() {
		sb, err := w.Currency.SubBalance()
		if err != nil {
			return w, false, fmt.Errorf("%s: %w", ErrContextFailedToResolveSubBalance, err)
		}
		if err := tx.CreditBalance(ctx, w.UserID, sb, won); err != nil {
			return w, false, fmt.Errorf("%s: %w", ErrContextFailedToCredit, err)
		}
	}

	w.Status = status
	w.WonAmount = won
	w.SettledAt = &now
	w.Seeds = &seeds
	if err := tx.RecordStats(ctx, statsDelta(&w, result, seeds, now)); err != nil {
		return w, false, fmt.Errorf("%s: %w", ErrContextFailedToRecordStats, err)
	}
	return w, true, nil
}

package wager

import (
	"context"
	"fmt"
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

// PlaceSoloWager debits, plays and pays a wager in one transaction
func (s *service) PlaceSoloWager(ctx context.Context, req domain.WagerRequest) (*domain.WagerOutcome, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPlaceSoloWagerCalled, "userID", req.UserID, "bet", req.BetAmount, "currency", req.Currency)

	sb, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	target := s.defaultTarget(ctx)

	unlock, err := s.userLocks.LockContext(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: waiting for previous wager: %v", domain.ErrConcurrencyConflict, err)
	}
	defer unlock()

	start := time.Now()
	var settled *domain.Wager
	var result domain.RoundResult
	err = s.withRetry(ctx, domain.GameTypeSolo, func() error {
		var txErr error
		settled, result, txErr = s.executeSoloTx(ctx, req, sb, target)
		return txErr
	})
	metrics.SettlementDuration.WithLabelValues(string(domain.GameTypeSolo)).Observe(time.Since(start).Seconds())
	if err != nil {
		log.Warn(LogMsgSettlementFailed, "userID", req.UserID, "error", err)
		return nil, err
	}

	metrics.WagersPlaced.WithLabelValues(string(domain.GameTypeSolo), string(req.Currency)).Inc()
	log.Info(LogMsgSoloWagerSettled, "wagerID", settled.ID, "status", settled.Status, "won", settled.WonAmount)
	s.publish(ctx, event.NewWagerSettledEvent(*settled))

	return soloOutcome(settled, result), nil
}

// executeSoloTx is one settlement attempt. Nothing it does survives an error.
func (s *service) executeSoloTx(ctx context.Context, req domain.WagerRequest, sb domain.SubBalance, target decimal.Decimal) (*domain.Wager, domain.RoundResult, error) {
	var none domain.RoundResult

	tx, err := s.repo.BeginWagerTx(ctx)
	if err != nil {
		return nil, none, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	before, err := tx.DebitBalance(ctx, req.UserID, sb, req.BetAmount)
	if err != nil {
		return nil, none, fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
	}

	nonce, err := tx.NextNonce(ctx, req.UserID)
	if err != nil {
		return nil, none, fmt.Errorf("%s: %w", ErrContextFailedToGetNonce, err)
	}

	seeds, err := rng.NewSeedTriple(req.ClientSeed, nonce)
	if err != nil {
		return nil, none, fmt.Errorf("%s: %w", ErrContextFailedToGenerateSeeds, err)
	}

	result, _ := s.engine.Play(seeds, req.BetAmount)

	link, err := s.chain.Next(ctx)
	if err != nil {
		return nil, none, fmt.Errorf("%s: %w", ErrContextFailedToIssueChainLink, err)
	}

	gameID := req.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}

	now := s.clock.Now()
	w := &domain.Wager{
		ID:               uuid.New(),
		UserID:           req.UserID,
		GameName:         domain.GameTypeSolo,
		GameID:           gameID,
		BetAmount:        req.BetAmount,
		BalanceBefore:    before,
		TargetMultiplier: target,
		Currency:         req.Currency,
		Status:           domain.WagerStatusLost,
		WonAmount:        result.TotalPayout,
		Seeds:            &seeds,
		ChainLink:        &link,
		CreatedAt:        now,
		SettledAt:        &now,
	}
	if result.Won() {
		w.Status = domain.WagerStatusWon
	}

	if err := tx.InsertWager(ctx, w); err != nil {
		return nil, none, fmt.Errorf("%s: %w", ErrContextFailedToInsertWager, err)
	}

	if w.WonAmount.IsPositive() {
		if err := tx.CreditBalance(ctx, req.UserID, sb, w.WonAmount); err != nil {
			return nil, none, fmt.Errorf("%s: %w", ErrContextFailedToCredit, err)
		}
	}

	if err := tx.RecordStats(ctx, statsDelta(w, result, seeds, now)); err != nil {
		return nil, none, fmt.Errorf("%s: %w", ErrContextFailedToRecordStats, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, none, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	return w, result, nil
}

func statsDelta(w *domain.Wager, result domain.RoundResult, seeds domain.SeedTriple, at time.Time) domain.StatsDelta {
	return domain.StatsDelta{
		UserID: w.UserID,
		Result: result,
		Bet:    w.BetAmount,
		Won:    w.WonAmount,
		History: domain.GameHistory{
			ServerSeed: seeds.ServerSeed,
			ClientSeed: seeds.ClientSeed,
			Nonce:      seeds.Nonce,
			BetAmount:  w.BetAmount,
			WinAmount:  w.WonAmount,
			Timestamp:  at,
		},
	}
}

// soloOutcome reveals the seed triple; the wager is already terminal
func soloOutcome(w *domain.Wager, result domain.RoundResult) *domain.WagerOutcome {
	nonce := w.Seeds.Nonce
	return &domain.WagerOutcome{
		WagerID:        w.ID,
		Status:         w.Status,
		WonAmount:      w.WonAmount,
		RTP:            w.RTP(),
		RoundResult:    &result,
		ServerSeed:     w.Seeds.ServerSeed,
		ServerSeedHash: rng.HashSeed(w.Seeds.ServerSeed),
		ClientSeed:     w.Seeds.ClientSeed,
		Nonce:          &nonce,
		GameID:         w.GameID,
		ChainLink:      w.ChainLink,
	}
}

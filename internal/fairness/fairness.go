// Package fairness lets anyone recompute a result from its revealed seeds and
// check hash chain links against the published commitment.
package fairness

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/hashchain"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/outcome"
	"github.com/osse101/ProvablyFair_Go/internal/rng"
)

// VerifyRoundRequest is a revealed seed triple plus whatever the caller
// recorded when the round was played
type VerifyRoundRequest struct {
	ServerSeed     string              `json:"serverSeed" validate:"required"`
	ClientSeed     string              `json:"clientSeed" validate:"required"`
	Nonce          uint64              `json:"nonce"`
	BetAmount      decimal.Decimal     `json:"betAmount"`
	ServerSeedHash string              `json:"serverSeedHash,omitempty"`
	Draws          []float64           `json:"draws,omitempty"`
	Expected       *domain.RoundResult `json:"expected,omitempty"`
}

// Mismatch is one field whose recorded value differs from the replay
type Mismatch struct {
	Field    string `json:"field"`
	Index    int    `json:"index,omitempty"`
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

// RoundReport is the outcome of replaying a round
type RoundReport struct {
	Valid      bool               `json:"valid"`
	Result     domain.RoundResult `json:"result"`
	Trace      outcome.Trace      `json:"trace"`
	Mismatches []Mismatch         `json:"mismatches,omitempty"`
}

// ChainReport is the outcome of checking a list of links
type ChainReport struct {
	Valid  bool   `json:"valid"`
	Length int    `json:"length"`
	Reason string `json:"reason,omitempty"`
}

// WagerReport is the outcome of replaying a stored wager
type WagerReport struct {
	WagerID    uuid.UUID          `json:"wagerId"`
	GameName   domain.GameType    `json:"gameName"`
	Valid      bool               `json:"valid"`
	Seeds      domain.SeedTriple  `json:"seeds"`
	Result     domain.RoundResult `json:"result"`
	ChainLink  *domain.ChainLink  `json:"chainLink,omitempty"`
	Mismatches []Mismatch         `json:"mismatches,omitempty"`
}

// Service defines the interface for fairness verification
type Service interface {
	VerifyRound(ctx context.Context, req VerifyRoundRequest) (*RoundReport, error)
	VerifyChain(ctx context.Context, links []string) (*ChainReport, error)
	// VerifyWager replays a settled wager from storage. A mismatch returns the
	// report together with an error wrapping domain.ErrFairnessVerification.
	VerifyWager(ctx context.Context, id uuid.UUID) (*WagerReport, error)
	VerifyStoredChain(ctx context.Context) (*ChainReport, error)
	Commitment(ctx context.Context) domain.Commitment
	Tables() outcome.Tables
}

// WagerReader is the storage the wager replay needs
type WagerReader interface {
	GetWager(ctx context.Context, id uuid.UUID) (*domain.Wager, error)
	GetGroupRound(ctx context.Context, gameID string) (*domain.GroupRound, error)
}

// ChainAuditor exposes the service's own hash chain
type ChainAuditor interface {
	VerifyAll(ctx context.Context) error
	Commitment() domain.Commitment
}

type service struct {
	engine *outcome.Engine
	repo   WagerReader
	chain  ChainAuditor
}

// NewService creates a fairness service. repo and chain may be nil for
// stateless verification only.
func NewService(engine *outcome.Engine, repo WagerReader, chain ChainAuditor) Service {
	return &service{engine: engine, repo: repo, chain: chain}
}

func (s *service) Tables() outcome.Tables {
	return outcome.AllTables()
}

func (s *service) Commitment(ctx context.Context) domain.Commitment {
	if s.chain == nil {
		return domain.Commitment{}
	}
	return s.chain.Commitment()
}

// VerifyRound replays the triple and compares it with everything recorded
func (s *service) VerifyRound(ctx context.Context, req VerifyRoundRequest) (*RoundReport, error) {
	logger.FromContext(ctx).Debug(LogMsgVerifyRoundCalled, "clientSeed", req.ClientSeed, "nonce", req.Nonce)

	seeds := domain.SeedTriple{ServerSeed: req.ServerSeed, ClientSeed: req.ClientSeed, Nonce: req.Nonce}
	if err := rng.ValidateSeeds(seeds); err != nil {
		return nil, err
	}
	bet := req.BetAmount
	if bet.IsZero() {
		bet = decimal.NewFromInt(DefaultVerifyBet)
	}
	if bet.IsNegative() {
		return nil, domain.ErrInvalidBetAmount
	}

	result, trace := s.engine.Play(seeds, bet)
	report := &RoundReport{Result: result, Trace: trace}

	if req.ServerSeedHash != "" {
		if got := rng.HashSeed(req.ServerSeed); got != req.ServerSeedHash {
			report.Mismatches = append(report.Mismatches, Mismatch{Field: FieldServerSeedHash, Recorded: req.ServerSeedHash, Replayed: got})
		}
	}
	if req.Draws != nil {
		report.Mismatches = append(report.Mismatches, compareDraws(req.Draws, trace)...)
	}
	if req.Expected != nil {
		report.Mismatches = append(report.Mismatches, compareResults(*req.Expected, result)...)
	}

	report.Valid = len(report.Mismatches) == 0
	return report, nil
}

func compareDraws(recorded []float64, trace outcome.Trace) []Mismatch {
	if len(recorded) != len(trace) {
		return []Mismatch{{
			Field:    FieldDrawCount,
			Recorded: fmt.Sprint(len(recorded)),
			Replayed: fmt.Sprint(len(trace)),
		}}
	}
	var out []Mismatch
	for i, d := range trace {
		// floats from four stream bytes are exact in float64, so equality is safe
		if recorded[i] != d.Value {
			out = append(out, Mismatch{Field: FieldDraw, Index: i, Recorded: fmt.Sprint(recorded[i]), Replayed: fmt.Sprint(d.Value)})
		}
	}
	return out
}

func compareResults(recorded, replayed domain.RoundResult) []Mismatch {
	var out []Mismatch
	if !sameAmount(recorded.TotalPayout, replayed.TotalPayout) {
		out = append(out, Mismatch{Field: FieldTotalPayout, Recorded: recorded.TotalPayout.String(), Replayed: replayed.TotalPayout.String()})
	}
	ints := []struct {
		field    string
		recorded int
		replayed int
	}{
		{FieldBaseWins, recorded.BaseWinCount, replayed.BaseWinCount},
		{FieldBonusWins, recorded.BonusWinCount, replayed.BonusWinCount},
		{FieldBonusesTriggered, recorded.BonusesTriggered, replayed.BonusesTriggered},
	}
	for _, c := range ints {
		if c.recorded != c.replayed {
			out = append(out, Mismatch{Field: c.field, Recorded: fmt.Sprint(c.recorded), Replayed: fmt.Sprint(c.replayed)})
		}
	}
	if recorded.FinalCursor != 0 && recorded.FinalCursor != replayed.FinalCursor {
		out = append(out, Mismatch{Field: FieldFinalCursor, Recorded: fmt.Sprint(recorded.FinalCursor), Replayed: fmt.Sprint(replayed.FinalCursor)})
	}
	return out
}

func sameAmount(a, b decimal.Decimal) bool {
	return a.Round(AmountScale).Equal(b.Round(AmountScale))
}

// VerifyChain checks a caller-supplied list of links, newest commitment first
func (s *service) VerifyChain(ctx context.Context, links []string) (*ChainReport, error) {
	if len(links) == 0 {
		return nil, fmt.Errorf("%w: no links supplied", domain.ErrInvalidInput)
	}
	report := &ChainReport{Valid: true, Length: len(links)}
	if err := hashchain.Verify(links); err != nil {
		report.Valid = false
		report.Reason = err.Error()
	}
	return report, nil
}

// VerifyStoredChain checks the persisted chain; a mismatch is an error
func (s *service) VerifyStoredChain(ctx context.Context) (*ChainReport, error) {
	if s.chain == nil {
		return nil, domain.ErrChainEmpty
	}
	commitment := s.chain.Commitment()
	var length int
	for _, seg := range commitment.Segments {
		length += seg.Length
	}

	if err := s.chain.VerifyAll(ctx); err != nil {
		if errors.Is(err, domain.ErrFairnessVerification) {
			logger.FromContext(ctx).Error(LogMsgStoredChainInvalid, "error", err)
			return &ChainReport{Valid: false, Length: length, Reason: err.Error()}, err
		}
		return nil, err
	}
	return &ChainReport{Valid: true, Length: length}, nil
}

// VerifyWager replays a settled wager. Pending wagers are refused so that
// seeds never leak before settlement.
func (s *service) VerifyWager(ctx context.Context, id uuid.UUID) (*WagerReport, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgVerifyWagerCalled, "wagerID", id)

	if s.repo == nil {
		return nil, domain.ErrWagerNotFound
	}
	w, err := s.repo.GetWager(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetWager, err)
	}
	if w == nil {
		return nil, domain.ErrWagerNotFound
	}
	if !w.Status.Terminal() {
		return nil, domain.ErrWagerNotTerminal
	}

	var report *WagerReport
	if w.GameName == domain.GameTypeGroup {
		report, err = s.replayGroupWager(ctx, w)
	} else {
		report, err = s.replaySoloWager(w)
	}
	if err != nil {
		return nil, err
	}

	if link := report.ChainLink; link != nil && link.Prev != "" && !hashchain.VerifyPair(link.Prev, link.Hash) {
		report.Mismatches = append(report.Mismatches, Mismatch{Field: FieldChainLink, Recorded: link.Hash, Replayed: link.Prev})
	}

	report.Valid = len(report.Mismatches) == 0
	if !report.Valid {
		log.Error(LogMsgIntegrityBreach, "wagerID", id, "mismatches", report.Mismatches)
		return report, fmt.Errorf("%w: wager %s", domain.ErrFairnessVerification, id)
	}
	return report, nil
}

func (s *service) replaySoloWager(w *domain.Wager) (*WagerReport, error) {
	if w.Seeds == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPersistence, ErrMsgWagerHasNoSeeds)
	}
	result, _ := s.engine.Play(*w.Seeds, w.BetAmount)
	report := &WagerReport{
		WagerID:   w.ID,
		GameName:  w.GameName,
		Seeds:     *w.Seeds,
		Result:    result,
		ChainLink: w.ChainLink,
	}
	if !sameAmount(result.TotalPayout, w.WonAmount) {
		report.Mismatches = append(report.Mismatches, Mismatch{Field: FieldWonAmount, Recorded: w.WonAmount.String(), Replayed: result.TotalPayout.String()})
	}
	return report, nil
}

func (s *service) replayGroupWager(ctx context.Context, w *domain.Wager) (*WagerReport, error) {
	round, err := s.repo.GetGroupRound(ctx, w.GameID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetRound, err)
	}
	if round == nil {
		return nil, domain.ErrRoundNotFound
	}
	if round.Status != domain.GroupRoundCompleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoundNotSettled, ErrMsgRoundNotCompleted)
	}

	result, _ := s.engine.Play(round.Seeds, decimal.NewFromInt(1))
	report := &WagerReport{
		WagerID:   w.ID,
		GameName:  w.GameName,
		Seeds:     round.Seeds,
		Result:    result,
		ChainLink: round.ChainLink,
	}
	if round.Result != nil && !sameAmount(round.Result.PayoutMultiplier, result.PayoutMultiplier) {
		report.Mismatches = append(report.Mismatches, Mismatch{Field: FieldPayoutMultiplier, Recorded: round.Result.PayoutMultiplier.String(), Replayed: result.PayoutMultiplier.String()})
	}
	if want := w.BetAmount.Mul(result.PayoutMultiplier); !sameAmount(want, w.WonAmount) {
		report.Mismatches = append(report.Mismatches, Mismatch{Field: FieldWonAmount, Recorded: w.WonAmount.String(), Replayed: want.String()})
	}
	return report, nil
}

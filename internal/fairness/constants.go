package fairness

import "github.com/osse101/ProvablyFair_Go/internal/domain"

// AmountScale is the scale replayed amounts are compared at
const AmountScale = domain.AmountScale

// DefaultVerifyBet is used when a round verification omits the bet
const DefaultVerifyBet = 1

// Mismatch field names reported back to the caller
const (
	FieldServerSeedHash   = "serverSeedHash"
	FieldDrawCount        = "drawCount"
	FieldDraw             = "draw"
	FieldTotalPayout      = "totalPayout"
	FieldBaseWins         = "totalBaseWins"
	FieldBonusWins        = "totalBonusWins"
	FieldBonusesTriggered = "bonusesTriggered"
	FieldFinalCursor      = "finalCursor"
	FieldWonAmount        = "wonAmount"
	FieldPayoutMultiplier = "payoutMultiplier"
	FieldChainLink        = "chainLink"
)

// Log messages
const (
	LogMsgVerifyRoundCalled  = "VerifyRound called"
	LogMsgVerifyWagerCalled  = "VerifyWager called"
	LogMsgIntegrityBreach    = "Stored record failed fairness verification"
	LogMsgStoredChainInvalid = "Persisted hash chain failed verification"
)

// Error context messages
const (
	ErrContextFailedToGetWager = "failed to get wager"
	ErrContextFailedToGetRound = "failed to get group round"
	ErrMsgWagerHasNoSeeds      = "settled wager has no recorded seeds"
	ErrMsgRoundNotCompleted    = "group round is not completed"
)

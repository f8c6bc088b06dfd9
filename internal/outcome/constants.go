package outcome

// ============================================================================
// Table Sizes
// ============================================================================

const (
	BaseAmmoRange        = 63
	BonusAmmoRange       = 186
	BonusMultiplierRange = 64
)

// ============================================================================
// Round Defaults
// ============================================================================

const (
	DefaultBaseWinMultiplierTarget = 1.0
	DefaultBonusMultiplierTarget   = 1.0
	DefaultInitialBonusRounds      = 10
	DefaultBonusRetriggerRounds    = 10
	DefaultBonusTriggerRange       = 200
	DefaultChambers                = 6
)

// multiplierScale is the 32-bit range the crash-style multiplier is drawn over
const multiplierScale = float64(0xFFFFFFFF)

// ============================================================================
// Draw Kinds
// ============================================================================

// DrawKind labels a draw in a round trace
type DrawKind string

const (
	DrawBaseMultiplier  DrawKind = "base_multiplier"
	DrawFirstRoll       DrawKind = "first_roll"
	DrawWinRoll         DrawKind = "win_roll"
	DrawBonusTrigger    DrawKind = "bonus_trigger"
	DrawBonusMultiplier DrawKind = "bonus_multiplier"
	DrawBonusWinRoll    DrawKind = "bonus_win_roll"
	DrawBonusAmmo       DrawKind = "bonus_ammo"
	DrawBonusRetrigger  DrawKind = "bonus_retrigger"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgInvalidConfig    = "invalid outcome config"
	ErrMsgFailedToReadFile = "failed to read game config file"
	ErrMsgFailedToParse    = "failed to parse game config file"
)

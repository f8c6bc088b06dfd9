package outcome

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of the round state machine
type Config struct {
	BaseWinMultiplierTarget float64 `yaml:"base_win_multiplier_target"`
	BonusMultiplierTarget   float64 `yaml:"bonus_multiplier_target"`
	InitialBonusRounds      int     `yaml:"initial_bonus_rounds"`
	BonusRetriggerRounds    int     `yaml:"bonus_retrigger_rounds"`
	BonusTriggerRange       int     `yaml:"bonus_trigger_range"`
	Chambers                int     `yaml:"chambers"`
}

// DefaultConfig returns the canonical game constants
func DefaultConfig() Config {
	return Config{
		BaseWinMultiplierTarget: DefaultBaseWinMultiplierTarget,
		BonusMultiplierTarget:   DefaultBonusMultiplierTarget,
		InitialBonusRounds:      DefaultInitialBonusRounds,
		BonusRetriggerRounds:    DefaultBonusRetriggerRounds,
		BonusTriggerRange:       DefaultBonusTriggerRange,
		Chambers:                DefaultChambers,
	}
}

// Validate rejects configs that would never terminate or never pay
func (c Config) Validate() error {
	switch {
	case c.BaseWinMultiplierTarget < 1:
		return fmt.Errorf("%s: base_win_multiplier_target must be >= 1", ErrMsgInvalidConfig)
	case c.BonusMultiplierTarget < 1:
		return fmt.Errorf("%s: bonus_multiplier_target must be >= 1", ErrMsgInvalidConfig)
	case c.InitialBonusRounds < 1:
		return fmt.Errorf("%s: initial_bonus_rounds must be >= 1", ErrMsgInvalidConfig)
	case c.BonusRetriggerRounds < 0:
		return fmt.Errorf("%s: bonus_retrigger_rounds must be >= 0", ErrMsgInvalidConfig)
	case c.BonusTriggerRange < 1:
		return fmt.Errorf("%s: bonus_trigger_range must be >= 1", ErrMsgInvalidConfig)
	case c.BonusRetriggerRounds >= c.BonusTriggerRange:
		// expected bonus length diverges once a retrigger adds a round per draw
		return fmt.Errorf("%s: bonus_retrigger_rounds must be below bonus_trigger_range", ErrMsgInvalidConfig)
	case c.Chambers < 1:
		return fmt.Errorf("%s: chambers must be >= 1", ErrMsgInvalidConfig)
	}
	return nil
}

// gameFile is the on-disk layout of the game tunables file
type gameFile struct {
	Outcome Config `yaml:"outcome"`
}

// LoadConfig reads the outcome section of a YAML game file. Missing fields
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", ErrMsgFailedToReadFile, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes on top of DefaultConfig
func ParseConfig(data []byte) (Config, error) {
	f := gameFile{Outcome: DefaultConfig()}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("%s: %w", ErrMsgFailedToParse, err)
	}
	if err := f.Outcome.Validate(); err != nil {
		return Config{}, err
	}
	return f.Outcome, nil
}

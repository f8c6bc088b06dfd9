package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/ProvablyFair_Go/internal/outcome"
)

// GroupSettings holds group round timing
type GroupSettings struct {
	RoundDuration        time.Duration `yaml:"round_duration"`
	LateJoinSettleWindow time.Duration `yaml:"late_join_settle_window"`
}

// GameFile is the game tunables file. Fields left out keep their defaults.
type GameFile struct {
	Outcome outcome.Config `yaml:"outcome"`
	Group   GroupSettings  `yaml:"group"`
}

// DefaultGameFile returns the built-in tunables
func DefaultGameFile() GameFile {
	return GameFile{
		Outcome: outcome.DefaultConfig(),
		Group: GroupSettings{
			RoundDuration:        DefaultGroupRoundDuration,
			LateJoinSettleWindow: DefaultLateJoinSettleWindow,
		},
	}
}

// LoadGameFile reads path on top of the defaults. A missing file is not an
// error; the defaults are returned with found=false.
func LoadGameFile(path string) (game GameFile, found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultGameFile(), false, nil
	}
	if err != nil {
		return GameFile{}, false, fmt.Errorf("%s: %w", ErrMsgFailedToReadGameFile, err)
	}
	game, err = ParseGameFile(data)
	return game, err == nil, err
}

// ParseGameFile decodes YAML bytes on top of the defaults and validates them
func ParseGameFile(data []byte) (GameFile, error) {
	g := DefaultGameFile()
	if err := yaml.Unmarshal(data, &g); err != nil {
		return GameFile{}, fmt.Errorf("%s: %w", ErrMsgFailedToParseGame, err)
	}
	if err := g.Outcome.Validate(); err != nil {
		return GameFile{}, err
	}
	if g.Group.RoundDuration <= 0 {
		return GameFile{}, errors.New(ErrMsgInvalidGroupDuration)
	}
	return g, nil
}

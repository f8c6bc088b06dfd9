// Package configs ships the default game file and its schema inside the
// binaries so fairctl can validate from any working directory.
package configs

import _ "embed"

//go:embed schemas/game.schema.json
var GameSchema []byte

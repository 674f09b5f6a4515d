package migration

import "embed"

//go:embed scripts
var scriptsFS embed.FS

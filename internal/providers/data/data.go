// Package data embeds the schedule fixtures served by the static provider.
package data

import _ "embed"

//go:embed schedules.json
var Schedules []byte

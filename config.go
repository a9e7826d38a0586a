package blockgame

import (
	"github.com/akmonengine/blockgame/actor"
	"github.com/akmonengine/blockgame/fade"
	"github.com/akmonengine/blockgame/history"
	"github.com/akmonengine/blockgame/trail"
)

// Config holds the tunables of a World
type Config struct {
	PlayerRadius float64
	// HistoryCapacity is the number of rewindable moves. Zero or less keeps all of them.
	HistoryCapacity int
	Lookahead       int
	TrailWindow     int
	FadeDuration    int
	// GemSpin is the gem rotation per tick, in degrees
	GemSpin    float64
	RecordsDir string
}

func DefaultConfig() Config {
	return Config{
		PlayerRadius:    actor.PlayerRadius,
		HistoryCapacity: history.DefaultCapacity,
		Lookahead:       trail.Lookahead,
		TrailWindow:     trail.Window,
		FadeDuration:    fade.DefaultDuration,
		GemSpin:         5,
		RecordsDir:      "records",
	}
}

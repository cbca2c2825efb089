package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/boxfall/config"
	"github.com/pthm-cable/boxfall/game"
)

func TestAppStepStopsAtMaxTicks(t *testing.T) {
	cfg := config.Defaults()
	g, err := game.NewGame(game.Options{Config: cfg, Seed: 1})
	require.NoError(t, err)
	defer g.Unload()

	a := &app{cfg: cfg, game: g, maxTicks: 3}

	assert.NoError(t, a.step())
	assert.NoError(t, a.step())
	assert.ErrorIs(t, a.step(), ebiten.Termination)
	assert.Equal(t, int32(3), g.Tick())
	assert.Len(t, g.Sprites(), 309)
}

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/goldrun/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", "Stub", func() Game { return &stubGame{id: "zz-stub"} })

	assert.True(t, Exists("zz-stub"))
	g, err := Create("zz-stub")
	require.NoError(t, err)
	assert.Equal(t, "zz-stub", g.ID())

	list := List()
	require.NotEmpty(t, list)
	assert.Equal(t, GameInfo{ID: "zz-stub", Title: "Stub"}, list[len(list)-1])

	_, err = Create("missing")
	assert.Error(t, err)

	assert.Panics(t, func() {
		Register("zz-stub", "Again", func() Game { return &stubGame{} })
	})
}

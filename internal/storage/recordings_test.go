package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/goldrun/internal/config"
	gcore "github.com/vovakirdan/goldrun/internal/games/goldrun/core"
)

func sampleRecording() Recording {
	cfg := config.DefaultGoldrunConfig()
	cfg.Game.Lives = 3
	return Recording{
		GameID: "goldrun-alternate",
		Seed:   -42,
		Start:  1,
		Rules:  "alternate",
		Config: cfg,
		Inputs: []gcore.Input{
			{Tick: 0, Kind: gcore.InputTarget, I: 5, J: 1},
			{Tick: 12, Kind: gcore.InputDigLeft},
			{Tick: 90, Kind: gcore.InputSkip},
		},
		Ticks:  300,
		Score:  1750,
		Result: "won",
	}
}

func TestRecordingRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := sampleRecording()
	id, err := store.SaveRecording(want)
	require.NoError(t, err)

	got, err := store.Recording(id)
	require.NoError(t, err)

	want.ID = id
	want.CreatedAt = got.CreatedAt
	assert.Equal(t, want, got)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRecordingNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Recording(99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteRecording(99), ErrNotFound)
}

func TestRecentRecordings(t *testing.T) {
	store := openTestStore(t)

	var ids []int64
	for i := range 4 {
		r := sampleRecording()
		r.Score = i * 100
		id, err := store.SaveRecording(r)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	recent, err := store.RecentRecordings(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[3], recent[0].ID)
	assert.Equal(t, ids[2], recent[1].ID)
	assert.Len(t, recent[0].Inputs, 3)

	require.NoError(t, store.DeleteRecording(ids[3]))
	recent, err = store.RecentRecordings(0)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}

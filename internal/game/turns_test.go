package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drawdash/internal"
)

func TestNextTurnStartsGame(t *testing.T) {
	reg, e := newTestEngine(t, internal.DefaultSettings())
	players := joinPlayers(t, reg, "ABCD", 2)

	room := e.NextTurn("ABCD")
	require.NotNil(t, room)

	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.True(t, room.Started)
	assert.Equal(t, 1, room.Round)
	assert.Equal(t, 0, room.TurnIndex)
	assert.Equal(t, players[0].Id, room.DrawerID, "insertion order defines rotation")
	assert.Equal(t, internal.PhaseChoosing, room.Phase)
	assert.True(t, room.WaitingForChoice)
	assert.Empty(t, room.Word)
	assert.Equal(t, room.Settings.TurnSeconds, room.TimeLeft)
	assert.Len(t, room.WordChoices, 3)
}

func TestNextTurnOffersDistinctWords(t *testing.T) {
	reg, e := newTestEngine(t, internal.DefaultSettings())
	joinPlayers(t, reg, "ABCD", 2)

	room := e.NextTurn("ABCD")
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	seen := make(map[string]bool)
	for _, w := range room.WordChoices {
		assert.False(t, seen[w], "offered words must be distinct")
		seen[w] = true
	}
}

func TestNextTurnClampsWordChoiceCount(t *testing.T) {
	settings := internal.DefaultSettings()
	settings.WordChoices = 9
	reg, e := newTestEngine(t, settings)
	joinPlayers(t, reg, "ABCD", 2)

	room := e.NextTurn("ABCD")
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.Len(t, room.WordChoices, 5)
}

func TestNextTurnEmptyRoomIsNoop(t *testing.T) {
	reg, e := newTestEngine(t, internal.DefaultSettings())
	room := reg.GetOrCreate("EMPT")

	got := e.NextTurn("EMPT")
	require.NotNil(t, got)

	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.False(t, room.Started)
	assert.Equal(t, -1, room.TurnIndex)
}

func TestNextTurnUnknownRoom(t *testing.T) {
	_, e := newTestEngine(t, internal.DefaultSettings())
	assert.Nil(t, e.NextTurn("NOPE"))
}

// The rotation must visit every player exactly once per round and end the
// game exactly after the last turn of the last round.
func TestTurnRotationAcrossRounds(t *testing.T) {
	tests := []struct {
		players int
		rounds  int
	}{
		{2, 1},
		{2, 3},
		{3, 2},
		{5, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dp_%dr", tt.players, tt.rounds), func(t *testing.T) {
			settings := internal.DefaultSettings()
			settings.Rounds = tt.rounds
			reg, e := newTestEngine(t, settings)
			players := joinPlayers(t, reg, "ROTA", tt.players)

			total := tt.players * tt.rounds
			for turn := 0; turn < total; turn++ {
				room := e.NextTurn("ROTA")
				require.NotNil(t, room)

				room.Mu.RLock()
				assert.True(t, room.Started, "turn %d should still be in-game", turn)
				assert.Equal(t, turn/tt.players+1, room.Round)
				assert.Equal(t, players[turn%tt.players].Id, room.DrawerID)
				room.Mu.RUnlock()
			}

			room := e.NextTurn("ROTA")
			room.Mu.RLock()
			defer room.Mu.RUnlock()
			assert.False(t, room.Started, "game must end after %d turns", total)
			assert.Equal(t, internal.PhaseGameOver, room.Phase)
			assert.Empty(t, room.DrawerID)
			assert.Empty(t, room.Word)
			assert.Empty(t, room.WordMask)
			assert.Zero(t, room.TimeLeft)
			assert.False(t, room.WaitingForChoice)
		})
	}
}

func TestNextTurnResetsPerTurnState(t *testing.T) {
	reg, e := newTestEngine(t, internal.DefaultSettings())
	players := joinPlayers(t, reg, "ABCD", 3)

	e.NextTurn("ABCD")
	players[1].Guessed = true
	players[1].TurnPoints = 55

	room := e.NextTurn("ABCD")
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	for _, p := range room.Players {
		assert.False(t, p.Guessed)
		assert.Zero(t, p.TurnPoints)
	}
	assert.Empty(t, room.RevealedIndices)
	assert.False(t, room.Reveal50Done)
	assert.False(t, room.Reveal25Done)
}

func TestNextTurnClearsCanvas(t *testing.T) {
	reg, e := newTestEngine(t, internal.DefaultSettings())
	joinPlayers(t, reg, "ABCD", 2)

	canvas := reg.Canvas("ABCD")
	canvas.Append([]byte(`{"x":1}`))
	require.Equal(t, 1, canvas.Len())

	e.NextTurn("ABCD")
	assert.Zero(t, canvas.Len())
}

func TestRematchResetsScores(t *testing.T) {
	settings := internal.DefaultSettings()
	settings.Rounds = 1
	reg, e := newTestEngine(t, settings)
	players := joinPlayers(t, reg, "ABCD", 2)

	e.NextTurn("ABCD")
	players[1].Score = 120
	e.NextTurn("ABCD") // second turn
	room := e.NextTurn("ABCD")
	room.Mu.RLock()
	over := room.Phase == internal.PhaseGameOver
	room.Mu.RUnlock()
	require.True(t, over)

	room = e.NextTurn("ABCD")
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.True(t, room.Started)
	assert.Equal(t, 1, room.Round)
	for _, p := range room.Players {
		assert.Zero(t, p.Score)
	}
}

func TestChooseWordHandshake(t *testing.T) {
	settings := internal.DefaultSettings()
	settings.Rounds = 1
	settings.TurnSeconds = 80
	reg, e := newTestEngine(t, settings)
	players := joinPlayers(t, reg, "ABCD", 2)
	alice, bob := players[0], players[1]

	room := e.NextTurn("ABCD")
	room.Mu.Lock()
	require.Equal(t, alice.Id, room.DrawerID)
	require.True(t, room.WaitingForChoice)
	room.WordChoices = []string{"apple", "banana", "cherry"}
	room.Mu.Unlock()

	t.Run("word outside the offered set is ignored", func(t *testing.T) {
		e.ChooseWord("ABCD", alice.Id, "zeppelin")
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		assert.True(t, room.WaitingForChoice)
		assert.Empty(t, room.Word)
	})

	t.Run("non-drawer cannot choose", func(t *testing.T) {
		e.ChooseWord("ABCD", bob.Id, "apple")
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		assert.True(t, room.WaitingForChoice)
		assert.Empty(t, room.Word)
	})

	t.Run("drawer picks an offered word", func(t *testing.T) {
		room.Mu.Lock()
		room.TimeLeft = 73 // pretend choosing took a few seconds
		room.Mu.Unlock()

		e.ChooseWord("ABCD", alice.Id, "apple")

		room.Mu.RLock()
		defer room.Mu.RUnlock()
		assert.Equal(t, "apple", room.Word)
		assert.Equal(t, "_____", room.WordMask)
		assert.False(t, room.WaitingForChoice)
		assert.Empty(t, room.WordChoices)
		assert.Equal(t, internal.PhaseDrawing, room.Phase)
		assert.Equal(t, 73, room.TimeLeft, "choosing must not extend drawing time")
		assert.Empty(t, room.RevealedIndices)
	})

	t.Run("choosing twice is ignored", func(t *testing.T) {
		e.ChooseWord("ABCD", alice.Id, "banana")
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		assert.Equal(t, "apple", room.Word)
	})
}

func TestUpdateSettings(t *testing.T) {
	reg, e := newTestEngine(t, internal.DefaultSettings())
	players := joinPlayers(t, reg, "ABCD", 2)
	host, guest := players[0], players[1]
	room := reg.Room("ABCD")

	t.Run("host can change settings in the lobby", func(t *testing.T) {
		e.UpdateSettings("ABCD", host.Id, internal.RoomSettings{
			MaxPlayers:  4,
			Rounds:      5,
			TurnSeconds: 60,
			WordChoices: 5,
		})
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		assert.Equal(t, 4, room.Settings.MaxPlayers)
		assert.Equal(t, 5, room.Settings.Rounds)
		assert.Equal(t, 60, room.Settings.TurnSeconds)
		assert.Equal(t, 5, room.Settings.WordChoices)
	})

	t.Run("word choice count outside the allowed set is kept", func(t *testing.T) {
		e.UpdateSettings("ABCD", host.Id, internal.RoomSettings{
			MaxPlayers: 4, Rounds: 5, TurnSeconds: 60, WordChoices: 4,
		})
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		assert.Equal(t, 5, room.Settings.WordChoices)
	})

	t.Run("non-host is ignored", func(t *testing.T) {
		e.UpdateSettings("ABCD", guest.Id, internal.RoomSettings{
			MaxPlayers: 8, Rounds: 1, TurnSeconds: 30, WordChoices: 2,
		})
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		assert.Equal(t, 5, room.Settings.Rounds)
	})

	t.Run("settings freeze once the game starts", func(t *testing.T) {
		e.NextTurn("ABCD")
		e.UpdateSettings("ABCD", host.Id, internal.RoomSettings{
			MaxPlayers: 8, Rounds: 1, TurnSeconds: 30, WordChoices: 2,
		})
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		assert.Equal(t, 5, room.Settings.Rounds)
	})
}

func TestEndTurnAdvancesOrFinishes(t *testing.T) {
	settings := internal.DefaultSettings()
	settings.Rounds = 1
	reg, e := newTestEngine(t, settings)
	players := joinPlayers(t, reg, "ABCD", 2)

	room := e.NextTurn("ABCD")
	setWord(t, e, room, "apple")

	e.EndTurn("ABCD")
	room.Mu.RLock()
	assert.Equal(t, players[1].Id, room.DrawerID, "turn passes to the next player")
	assert.True(t, room.WaitingForChoice)
	room.Mu.RUnlock()

	setWord(t, e, room, "banana")
	e.EndTurn("ABCD")
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.Equal(t, internal.PhaseGameOver, room.Phase)
	assert.False(t, room.Started)
}

package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"drawdash/internal"
	"drawdash/internal/words"
)

func newTestEngine(t *testing.T, settings internal.RoomSettings) (*Registry, *Engine) {
	t.Helper()
	bank, err := words.New([]string{
		"apple", "banana", "cherry", "dragon", "falcon",
		"guitar", "hammer", "island", "jigsaw", "kitten",
	})
	require.NoError(t, err)
	reg := NewRegistry(settings)
	return reg, NewEngine(reg, bank)
}

// joinPlayers adds n connectionless players named p1..pn to the room.
func joinPlayers(t *testing.T, reg *Registry, code string, n int) []*internal.Player {
	t.Helper()
	players := make([]*internal.Player, 0, n)
	for i := 1; i <= n; i++ {
		p := &internal.Player{
			Id:       fmt.Sprintf("p%d", i),
			Username: fmt.Sprintf("player%d", i),
		}
		require.NoError(t, reg.Join(code, p))
		players = append(players, p)
	}
	return players
}

// chooseOffered picks the first offered word so tests can reach the
// drawing phase without caring which words were drawn.
func chooseOffered(t *testing.T, e *Engine, room *internal.Room) string {
	t.Helper()
	room.Mu.RLock()
	require.NotEmpty(t, room.WordChoices)
	word := room.WordChoices[0]
	drawer := room.DrawerID
	room.Mu.RUnlock()

	e.ChooseWord(room.Code, drawer, word)

	room.Mu.RLock()
	defer room.Mu.RUnlock()
	require.Equal(t, word, room.Word)
	return word
}

// setWord forces a specific secret word on a room in the choosing phase.
func setWord(t *testing.T, e *Engine, room *internal.Room, word string) {
	t.Helper()
	room.Mu.Lock()
	require.True(t, room.WaitingForChoice)
	room.WordChoices = []string{word}
	drawer := room.DrawerID
	room.Mu.Unlock()

	e.ChooseWord(room.Code, drawer, word)

	room.Mu.RLock()
	defer room.Mu.RUnlock()
	require.Equal(t, word, room.Word)
}

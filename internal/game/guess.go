package game

import (
	"log"
	"strings"

	"drawdash/internal"
)

// SubmitGuess evaluates a chat guess against the room's secret word and
// applies scoring. Returns whether the guess scored. Rules:
//   - no active word, or the room is still choosing: nothing to match
//   - the current drawer is never scored, whatever they typed
//   - a player scores at most once per turn
//   - a correct first guess awards max(GuessFloorPoints, timeLeft)
//   - a wrong guess is re-broadcast as ordinary chat
//
// When the last non-drawer guesses correctly the turn ends immediately.
func (e *Engine) SubmitGuess(code, playerID, text string) bool {
	room := e.reg.Room(code)
	if room == nil {
		return false
	}

	room.Mu.Lock()

	player := room.FindPlayer(playerID)
	if player == nil {
		room.Mu.Unlock()
		return false
	}

	if room.Word == "" || room.WaitingForChoice || room.IsDrawer(playerID) || player.Guessed {
		// Nothing can be scored. Matching text from the drawer or a
		// player who already guessed is swallowed rather than relayed,
		// so the word never leaks into chat.
		target := strings.ToLower(strings.TrimSpace(room.Word))
		guess := strings.ToLower(strings.TrimSpace(text))
		matches := target != "" && guess == target
		chat := internal.ChatData{PlayerID: player.Id, Username: player.Username, Text: text}
		room.Mu.Unlock()

		if !matches {
			SafeBroadcastToRoom(room, internal.Message[internal.ChatData]{Type: "chat", Data: chat})
		}
		return false
	}

	guess := strings.ToLower(strings.TrimSpace(text))
	target := strings.ToLower(strings.TrimSpace(room.Word))

	if guess != target {
		chat := internal.ChatData{PlayerID: player.Id, Username: player.Username, Text: text}
		room.Mu.Unlock()

		SafeBroadcastToRoom(room, internal.Message[internal.ChatData]{Type: "chat", Data: chat})
		return false
	}

	points := room.TimeLeft
	if points < internal.GuessFloorPoints {
		points = internal.GuessFloorPoints
	}
	player.Guessed = true
	player.Score += points
	player.TurnPoints += points

	result := internal.GuessResultData{
		PlayerID: player.Id,
		Username: player.Username,
		Points:   points,
		Score:    player.Score,
	}
	allGuessed := room.HasEveryoneGuessed()
	room.Mu.Unlock()

	log.Printf("[SubmitGuess] room=%s: player %s (%s) guessed correctly for %d points",
		code, player.Id, player.Username, points)

	SafeBroadcastToRoom(room, internal.Message[internal.GuessResultData]{
		Type: "guess_result",
		Data: result,
	})

	if allGuessed {
		log.Printf("[SubmitGuess] room=%s: all players guessed, ending turn early", code)
		e.EndTurn(code)
	}
	return true
}

package game

import (
	"log"
	"slices"

	"drawdash/internal"
	"drawdash/internal/words"
)

// Engine advances rooms through the turn state machine:
// lobby -> choosing -> drawing -> choosing ... -> game_over.
type Engine struct {
	reg  *Registry
	bank *words.Bank
}

func NewEngine(reg *Registry, bank *words.Bank) *Engine {
	return &Engine{reg: reg, bank: bank}
}

func clampWordChoices(n int) int {
	if n < 2 {
		return 2
	}
	if n > 5 {
		return 5
	}
	return n
}

// NextTurn rotates the room to the next drawer, wrapping the turn index
// into a new round and ending the game once the configured rounds are
// exhausted. A room with zero players never advances. Returns the room in
// its post-transition state, or nil for an unknown code.
func (e *Engine) NextTurn(code string) *internal.Room {
	room := e.reg.Room(code)
	if room == nil {
		return nil
	}
	canvas := e.reg.Canvas(code)

	room.Mu.Lock()

	if len(room.Players) == 0 {
		room.Mu.Unlock()
		return room
	}

	if !room.Started {
		if room.Phase == internal.PhaseGameOver {
			// A rematch starts from scratch.
			for _, p := range room.Players {
				p.Score = 0
			}
		}
		room.Started = true
		room.Round = 1
		room.TurnIndex = -1
	}

	room.TurnIndex++
	round := room.Round
	if room.TurnIndex >= len(room.Players) {
		room.TurnIndex = 0
		round++
	}

	if round > room.Settings.Rounds {
		room.Phase = internal.PhaseGameOver
		room.Started = false
		room.TurnIndex = -1
		room.DrawerID = ""
		room.Word = ""
		room.WordMask = ""
		room.TimeLeft = 0
		room.WaitingForChoice = false
		room.WordChoices = nil
		room.Mu.Unlock()
		log.Printf("[NextTurn] room=%s: rounds exhausted, game over", code)
		return room
	}

	room.Round = round
	drawer := room.Players[room.TurnIndex]
	room.DrawerID = drawer.Id
	room.ResetPlayerTurnState()

	n := clampWordChoices(room.Settings.WordChoices)
	room.WordChoices = e.bank.Choices(n)
	room.WaitingForChoice = true
	room.Phase = internal.PhaseChoosing
	room.Word = ""
	room.WordMask = ""
	// The timer starts now; choosing time eats into drawing time.
	room.TimeLeft = room.Settings.TurnSeconds
	room.RevealedIndices = nil
	room.Reveal50Done = false
	room.Reveal25Done = false

	drawerName := drawer.Username
	room.Mu.Unlock()

	if canvas != nil {
		canvas.Clear()
	}

	log.Printf("[NextTurn] room=%s: round=%d drawer=%s (%s), offering %d words",
		code, round, drawer.Id, drawerName, n)
	return room
}

// ChooseWord completes the word-choice handshake. Anything but the current
// drawer picking one of the offered words while the room is choosing is a
// silent no-op; stale or malicious clients must never corrupt room state.
func (e *Engine) ChooseWord(code, playerID, word string) *internal.Room {
	room := e.reg.Room(code)
	if room == nil {
		return nil
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if !room.WaitingForChoice || !room.IsDrawer(playerID) ||
		!slices.Contains(room.WordChoices, word) {
		log.Printf("[ChooseWord] room=%s: ignoring invalid choice %q from %s",
			code, word, playerID)
		return room
	}

	room.Word = word
	room.RevealedIndices = nil
	room.Reveal50Done = false
	room.Reveal25Done = false
	room.WordMask = MaskWord(word, nil)
	room.WaitingForChoice = false
	room.WordChoices = nil
	room.Phase = internal.PhaseDrawing

	log.Printf("[ChooseWord] room=%s: drawer %s chose a %d-letter word, mask=%q",
		code, playerID, len([]rune(word)), room.WordMask)
	return room
}

// UpdateSettings applies host-submitted settings. Only the host may change
// them, and only while the room is still in the lobby. Fields outside their
// allowed range keep their previous value.
func (e *Engine) UpdateSettings(code, playerID string, s internal.RoomSettings) *internal.Room {
	room := e.reg.Room(code)
	if room == nil {
		return nil
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Phase != internal.PhaseLobby || room.HostID != playerID {
		log.Printf("[UpdateSettings] room=%s: rejecting settings change from %s (phase=%s)",
			code, playerID, room.Phase)
		return room
	}

	if s.MaxPlayers >= 2 && s.MaxPlayers <= 16 && s.MaxPlayers >= len(room.Players) {
		room.Settings.MaxPlayers = s.MaxPlayers
	}
	if s.Rounds >= 1 && s.Rounds <= 10 {
		room.Settings.Rounds = s.Rounds
	}
	if s.TurnSeconds >= 20 && s.TurnSeconds <= 240 {
		room.Settings.TurnSeconds = s.TurnSeconds
	}
	if slices.Contains(internal.AllowedWordChoiceCounts, s.WordChoices) {
		room.Settings.WordChoices = s.WordChoices
	}

	log.Printf("[UpdateSettings] room=%s: settings now %+v", code, room.Settings)
	return room
}

// AnnounceTurn broadcasts the state after a turn transition: the fresh
// snapshot plus a canvas-clear signal to everyone, and the offered word
// choices privately to the drawer.
func (e *Engine) AnnounceTurn(room *internal.Room) {
	if room == nil {
		return
	}

	room.Mu.RLock()
	state := BuildGameState(room)
	drawer := room.Drawer()
	choices := append([]string(nil), room.WordChoices...)
	timeLeft := room.TimeLeft
	room.Mu.RUnlock()

	SafeBroadcastToRoom(room, internal.Message[any]{Type: "turn_started", Data: state})
	SafeBroadcastToRoom(room, internal.Message[any]{Type: "canvas_clear", Data: nil})

	if drawer != nil {
		if err := drawer.SafeWriteJSON(internal.Message[internal.WordChoiceData]{
			Type: "word_choices",
			Data: internal.WordChoiceData{Choices: choices, TimeLeft: timeLeft},
		}); err != nil {
			log.Printf("[AnnounceTurn] room=%s: failed to send word choices to drawer %s: %v",
				room.Code, drawer.Id, err)
		}
	}
}

// AnnounceWordChosen broadcasts the drawing-phase kickoff: the all-hidden
// mask to the guessers and the plain word privately to the drawer.
func (e *Engine) AnnounceWordChosen(room *internal.Room) {
	room.Mu.RLock()
	drawer := room.Drawer()
	word := room.Word
	mask := room.WordMask
	timeLeft := room.TimeLeft
	room.Mu.RUnlock()

	SafeBroadcastToRoomExcept(room, internal.Message[internal.MaskUpdateData]{
		Type: "drawing_started",
		Data: internal.MaskUpdateData{WordMask: mask},
	}, drawer)

	if drawer != nil {
		if err := drawer.SafeWriteJSON(internal.Message[internal.DrawerWordData]{
			Type: "drawing_started",
			Data: internal.DrawerWordData{Word: word, TimeLeft: timeLeft},
		}); err != nil {
			log.Printf("[AnnounceWordChosen] room=%s: failed to send word to drawer %s: %v",
				room.Code, drawer.Id, err)
		}
	}
}

// buildTurnSummary collects each player's score movement for the closing
// turn. Caller holds room.Mu.
func buildTurnSummary(room *internal.Room) internal.TurnSummaryData {
	summary := internal.TurnSummaryData{
		Word:    room.Word,
		Results: make([]internal.TurnResult, 0, len(room.Players)),
	}
	for _, p := range room.Players {
		summary.Results = append(summary.Results, internal.TurnResult{
			PlayerID: p.Id,
			Username: p.Username,
			Delta:    p.TurnPoints,
			Total:    p.Score,
			Guessed:  p.Guessed,
		})
	}
	return summary
}

// buildLeaderboard sorts players by score for the game-over summary.
// Caller holds room.Mu.
func buildLeaderboard(room *internal.Room) internal.GameOverData {
	scores := make([]internal.FinalScore, 0, len(room.Players))
	for _, p := range room.Players {
		scores = append(scores, internal.FinalScore{
			PlayerID: p.Id,
			Username: p.Username,
			Score:    p.Score,
		})
	}
	slices.SortFunc(scores, func(a, b internal.FinalScore) int {
		return b.Score - a.Score
	})
	for idx := range scores {
		scores[idx].Position = idx + 1
	}
	return internal.GameOverData{Leaderboard: scores, Rounds: room.Round}
}

// EndTurn closes the current turn: it emits the turn summary, advances the
// rotation, and announces either the next turn or the final leaderboard.
// Called on timer expiry, on the last guesser finishing early, and when the
// drawer leaves mid-turn.
func (e *Engine) EndTurn(code string) {
	room := e.reg.Room(code)
	if room == nil {
		return
	}

	room.Mu.RLock()
	summary := buildTurnSummary(room)
	room.Mu.RUnlock()

	SafeBroadcastToRoom(room, internal.Message[internal.TurnSummaryData]{
		Type: "turn_summary",
		Data: summary,
	})

	next := e.NextTurn(code)
	if next == nil {
		return
	}

	next.Mu.RLock()
	over := next.Phase == internal.PhaseGameOver
	var final internal.GameOverData
	if over {
		final = buildLeaderboard(next)
	}
	next.Mu.RUnlock()

	if over {
		SafeBroadcastToRoom(next, internal.Message[internal.GameOverData]{
			Type: "game_over",
			Data: final,
		})
		return
	}
	e.AnnounceTurn(next)
}

package internal

import "sync"

const (
	DefaultMaxPlayers  = 8
	DefaultRounds      = 3
	DefaultTurnSeconds = 80
	DefaultWordChoices = 3

	// MaxRevealsPerTurn caps how many hint letters the server exposes
	// during a single drawing turn.
	MaxRevealsPerTurn = 2

	// GuessFloorPoints is the minimum award for a correct guess, even in
	// the final second of a turn.
	GuessFloorPoints = 10

	MaxUsernameLen = 24
)

type GamePhase string

const (
	PhaseLobby    GamePhase = "lobby"
	PhaseChoosing GamePhase = "choosing"
	PhaseDrawing  GamePhase = "drawing"
	PhaseGameOver GamePhase = "game_over"
)

// RoomSettings are mutable only by the host and only while the room has not
// started a game.
type RoomSettings struct {
	MaxPlayers  int `json:"max_players"`
	Rounds      int `json:"rounds"`
	TurnSeconds int `json:"turn_seconds"`
	WordChoices int `json:"word_choices"`
}

// AllowedWordChoiceCounts is the set of word-choice counts a host may pick.
var AllowedWordChoiceCounts = []int{2, 3, 5}

func DefaultSettings() RoomSettings {
	return RoomSettings{
		MaxPlayers:  DefaultMaxPlayers,
		Rounds:      DefaultRounds,
		TurnSeconds: DefaultTurnSeconds,
		WordChoices: DefaultWordChoices,
	}
}

// Room is the aggregate state for one game session. Every field is guarded
// by Mu; inbound events and the once-per-second tick both mutate the room
// under this lock, so all activity for a room is serialized.
type Room struct {
	Code    string
	Players []*Player // insertion order defines the drawing rotation
	HostID  string

	Phase   GamePhase
	Started bool
	Round   int // 1-based, 0 before the first game starts
	// TurnIndex is the position of the current drawer in Players,
	// or -1 while no turn is active.
	TurnIndex int
	DrawerID  string

	Word     string // secret word, visible only to the drawer
	WordMask string // display mask, same rune length as Word
	TimeLeft int    // seconds remaining in the current turn

	Settings RoomSettings

	// Word-choice handshake, meaningful only while Phase == PhaseChoosing.
	WaitingForChoice bool
	WordChoices      []string

	// Per-turn reveal bookkeeping, reset when a new word is chosen.
	RevealedIndices []int
	Reveal50Done    bool
	Reveal25Done    bool

	Mu sync.RWMutex `json:"-"`
}

package internal

import "encoding/json"

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Response is the envelope for plain HTTP endpoints, with server-side
// timing attached for client latency diagnostics.
type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}

// GameStateData is the full room snapshot broadcast on joins, settings
// changes and turn transitions. Word choices are never included here; they
// go to the drawer alone via WordChoiceData.
type GameStateData struct {
	RoomID           string           `json:"room_id"`
	Phase            GamePhase        `json:"phase"`
	Started          bool             `json:"started"`
	Round            int              `json:"round"`
	MaxRounds        int              `json:"max_rounds"`
	DrawerID         string           `json:"drawer_id,omitempty"`
	HostID           string           `json:"host_id,omitempty"`
	WordMask         string           `json:"word_mask"`
	TimeLeft         int              `json:"time_left"`
	WaitingForChoice bool             `json:"waiting_for_choice"`
	Settings         RoomSettings     `json:"settings"`
	Players          []PlayerSnapshot `json:"players"`
}

type TimerUpdateData struct {
	TimeLeft int `json:"time_left"`
}

// WordChoiceData is sent privately to the drawer at turn start.
type WordChoiceData struct {
	Choices  []string `json:"choices"`
	TimeLeft int      `json:"time_left"`
}

// DrawerWordData is sent privately to the drawer once the word is chosen.
type DrawerWordData struct {
	Word     string `json:"word"`
	TimeLeft int    `json:"time_left"`
}

type MaskUpdateData struct {
	WordMask        string `json:"word_mask"`
	RevealedLetters int    `json:"revealed_letters"`
}

type GuessResultData struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Score    int    `json:"score"`
}

type ChatData struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

type TurnResult struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	Delta    int    `json:"delta"` // points earned this turn
	Total    int    `json:"total"`
	Guessed  bool   `json:"guessed"`
}

// TurnSummaryData closes out a turn: the word that was drawn plus each
// player's score movement for the turn.
type TurnSummaryData struct {
	Word    string       `json:"word"`
	Results []TurnResult `json:"results"`
}

type FinalScore struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Position int    `json:"position"`
}

type GameOverData struct {
	Leaderboard []FinalScore `json:"leaderboard"`
	Rounds      int          `json:"rounds_played"`
}

type StrokeData struct {
	PlayerID string          `json:"player_id"`
	Stroke   json.RawMessage `json:"stroke"`
}

type PlayerJoinedData struct {
	Player      PlayerSnapshot `json:"player"`
	PlayerCount int            `json:"player_count"`
}

type PlayerLeftData struct {
	PlayerID    string `json:"player_id"`
	Username    string `json:"username"`
	PlayerCount int    `json:"player_count"`
	NewHostID   string `json:"new_host_id,omitempty"`
}

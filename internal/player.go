package internal

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Player struct {
	Id       string          `json:"id"`
	Conn     *websocket.Conn `json:"-"`
	Room     *Room           `json:"-"` // Avoid circular reference in JSON
	Username string          `json:"username"`
	Avatar   string          `json:"avatar,omitempty"`
	Score    int             `json:"score"`

	// Per-turn state
	Guessed    bool `json:"guessed"`
	TurnPoints int  `json:"turn_points"` // score earned this turn

	JoinedAt time.Time `json:"joined_at"`

	Mu sync.Mutex `json:"-"`
}

type PlayerSnapshot struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	Score    int    `json:"score"`
	Guessed  bool   `json:"guessed"`
	IsHost   bool   `json:"is_host"`
	IsDrawer bool   `json:"is_drawer"`
}

func (p *Player) ResetTurnState() {
	p.Guessed = false
	p.TurnPoints = 0
}

// SafeWriteJSON serializes writes to the underlying connection. Players
// without a live connection (tests, already-disconnected clients) are a
// silent no-op.
func (p *Player) SafeWriteJSON(v any) error {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	if p.Conn == nil {
		return nil
	}
	return p.Conn.WriteJSON(v)
}

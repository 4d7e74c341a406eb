package game

import (
	"context"
	"log"
	"time"

	"drawdash/internal"
)

// TickDriver advances time for every active room once per second. Each
// room's tick is atomic under the room lock: decrement, reveal check and
// expiry check happen as one unit relative to inbound events.
type TickDriver struct {
	reg    *Registry
	engine *Engine
}

func NewTickDriver(reg *Registry, engine *Engine) *TickDriver {
	return &TickDriver{reg: reg, engine: engine}
}

// Run drives Tick once per second of wall-clock time until ctx is
// cancelled.
func (t *TickDriver) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[TickDriver] stopping")
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Tick walks all rooms. Iteration order is unspecified; rooms are
// independent of each other.
func (t *TickDriver) Tick() {
	t.reg.Walk(t.tickRoom)
}

func (t *TickDriver) tickRoom(room *internal.Room) {
	room.Mu.Lock()
	if !room.Started || room.Word == "" || room.WaitingForChoice {
		room.Mu.Unlock()
		return
	}

	room.TimeLeft--
	revealed := maybeRevealLocked(room)

	code := room.Code
	timeLeft := room.TimeLeft
	mask := room.WordMask
	revealedCount := len(room.RevealedIndices)
	room.Mu.Unlock()

	if revealed {
		log.Printf("[TickDriver] room=%s: revealed a hint letter, mask=%q", code, mask)
		SafeBroadcastToRoom(room, internal.Message[internal.MaskUpdateData]{
			Type: "mask_update",
			Data: internal.MaskUpdateData{WordMask: mask, RevealedLetters: revealedCount},
		})
	}

	if timeLeft <= 0 {
		log.Printf("[TickDriver] room=%s: turn timer expired", code)
		t.engine.EndTurn(code)
		return
	}

	// Just the countdown; full state goes out only on transitions.
	SafeBroadcastToRoom(room, internal.Message[internal.TimerUpdateData]{
		Type: "timer_update",
		Data: internal.TimerUpdateData{TimeLeft: timeLeft},
	})
}

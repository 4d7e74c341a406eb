package game

import (
	"encoding/json"
	"log"

	"drawdash/internal"
)

// ApplyStroke relays an opaque stroke record. Strokes are accepted only
// from the current drawer while the room is in the drawing phase; the
// server stores them solely so late joiners can replay the canvas.
// Returns whether the stroke was accepted.
func (e *Engine) ApplyStroke(code, playerID string, stroke json.RawMessage) bool {
	room := e.reg.Room(code)
	if room == nil {
		return false
	}

	room.Mu.RLock()
	allowed := room.Phase == internal.PhaseDrawing && room.IsDrawer(playerID)
	room.Mu.RUnlock()

	if !allowed {
		log.Printf("[ApplyStroke] room=%s: ignoring stroke from non-drawer %s", code, playerID)
		return false
	}

	canvas := e.reg.Canvas(code)
	if canvas == nil {
		return false
	}
	canvas.Append(stroke)
	return true
}

// ClearCanvas wipes the room's stroke history. A clear op is always
// accepted, whoever sends it.
func (e *Engine) ClearCanvas(code string) {
	canvas := e.reg.Canvas(code)
	if canvas == nil {
		return
	}
	canvas.Clear()
	log.Printf("[ClearCanvas] room=%s: canvas cleared", code)
}

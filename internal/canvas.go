package internal

import (
	"encoding/json"
	"sync"
)

// Canvas holds the ordered stroke history for one room. Strokes are opaque
// to the server; they exist only so a newly joined client can replay the
// current drawing. Cleared at the start of every turn.
type Canvas struct {
	mu      sync.Mutex
	strokes []json.RawMessage
}

func NewCanvas() *Canvas {
	return &Canvas{strokes: make([]json.RawMessage, 0)}
}

func (c *Canvas) Append(stroke json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strokes = append(c.strokes, stroke)
}

func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strokes = c.strokes[:0]
}

// Strokes returns a copy of the history for replay to a joining client.
func (c *Canvas) Strokes() []json.RawMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]json.RawMessage, len(c.strokes))
	copy(out, c.strokes)
	return out
}

func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.strokes)
}

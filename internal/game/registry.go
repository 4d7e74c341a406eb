package game

import (
	"errors"
	"log"
	"sync"
	"time"

	"drawdash/internal"
)

// ErrRoomFull is surfaced to the joining client only; the room itself is
// unaffected by a rejected join.
var ErrRoomFull = errors.New("room is full")

// Registry owns the mapping from room code to room state and to the room's
// canvas history. Rooms are created lazily on first join and deleted as soon
// as their player list empties.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*internal.Room
	canvases map[string]*internal.Canvas
	defaults internal.RoomSettings
}

func NewRegistry(defaults internal.RoomSettings) *Registry {
	return &Registry{
		rooms:    make(map[string]*internal.Room),
		canvases: make(map[string]*internal.Canvas),
		defaults: defaults,
	}
}

// GetOrCreate returns the room for code, creating it with default settings
// (and an empty canvas history) when it does not exist yet.
func (reg *Registry) GetOrCreate(code string) *internal.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, exists := reg.rooms[code]; exists {
		return room
	}

	room := &internal.Room{
		Code:      code,
		Players:   make([]*internal.Player, 0, reg.defaults.MaxPlayers),
		Phase:     internal.PhaseLobby,
		TurnIndex: -1,
		Settings:  reg.defaults,
	}
	reg.rooms[code] = room
	reg.canvases[code] = internal.NewCanvas()

	log.Printf("[GetOrCreate] Created room %s with default settings (rounds=%d, turnSeconds=%d)",
		code, room.Settings.Rounds, room.Settings.TurnSeconds)
	return room
}

// Room returns the room for code, or nil. It never creates.
func (reg *Registry) Room(code string) *internal.Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[code]
}

// Canvas returns the stroke history for code, or nil when the room does
// not exist.
func (reg *Registry) Canvas(code string) *internal.Canvas {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.canvases[code]
}

// Join appends the player to the room, creating the room if needed. The
// first player to join becomes host. Joining does not reset the canvas.
func (reg *Registry) Join(code string, player *internal.Player) error {
	room := reg.GetOrCreate(code)

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if len(room.Players) >= room.Settings.MaxPlayers {
		log.Printf("[Join] room=%s is full, rejecting player %s (%s)",
			code, player.Id, player.Username)
		return ErrRoomFull
	}

	player.Room = room
	player.JoinedAt = time.Now()
	room.Players = append(room.Players, player)
	if room.HostID == "" {
		room.HostID = player.Id
	}

	log.Printf("[Join] room=%s: added player %s (%s), total players: %d",
		code, player.Id, player.Username, len(room.Players))
	return nil
}

// LeaveResult reports what Leave changed so the transport layer can emit
// the right broadcasts afterwards.
type LeaveResult struct {
	Room        *internal.Room // nil when the player or room was unknown
	Removed     *internal.Player
	WasDrawer   bool
	NewHostID   string
	RoomDeleted bool
}

// Leave removes the player, reassigns the host to the longest-present
// remaining player, and deletes the room (with its canvas) when it empties.
// The turn index is shifted so the rotation stays consistent with the
// shrunk player list.
func (reg *Registry) Leave(code, playerID string) LeaveResult {
	reg.mu.RLock()
	room := reg.rooms[code]
	reg.mu.RUnlock()
	if room == nil {
		return LeaveResult{}
	}

	room.Mu.Lock()

	idx := -1
	for i, p := range room.Players {
		if p.Id == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		room.Mu.Unlock()
		return LeaveResult{}
	}

	result := LeaveResult{Room: room, Removed: room.Players[idx]}
	result.WasDrawer = room.IsDrawer(playerID)

	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)
	if room.TurnIndex >= 0 && idx <= room.TurnIndex {
		// Removing at or before the drawer's slot shifts the rotation
		// left by one; the next advance lands on the right player.
		room.TurnIndex--
	}
	if result.WasDrawer {
		room.DrawerID = ""
	}

	if room.HostID == playerID {
		if len(room.Players) > 0 {
			room.HostID = room.Players[0].Id
			result.NewHostID = room.HostID
		} else {
			room.HostID = ""
		}
	}

	empty := len(room.Players) == 0
	remaining := len(room.Players)
	room.Mu.Unlock()

	log.Printf("[Leave] room=%s: removed player %s (%s), players remaining: %d",
		code, result.Removed.Id, result.Removed.Username, remaining)

	if empty && reg.deleteIfEmpty(code, room) {
		log.Printf("[Leave] room=%s is empty, deleted room and canvas", code)
		return LeaveResult{Removed: result.Removed, RoomDeleted: true}
	}
	return result
}

// deleteIfEmpty removes the room from the registry, re-checking the player
// list under both locks: a join can slip in between the removal above and
// this deletion, and such a room must stay registered. Lock order is
// registry then room, the same order JoinableRoom uses.
func (reg *Registry) deleteIfEmpty(code string, room *internal.Room) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if len(room.Players) > 0 {
		return false
	}
	delete(reg.rooms, code)
	delete(reg.canvases, code)
	return true
}

// JoinableRoom returns the code of a room still in the lobby with open
// seats, or "" when none exists.
func (reg *Registry) JoinableRoom() string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	for code, room := range reg.rooms {
		room.Mu.RLock()
		joinable := room.Phase == internal.PhaseLobby &&
			len(room.Players) < room.Settings.MaxPlayers
		room.Mu.RUnlock()
		if joinable {
			return code
		}
	}
	return ""
}

// Walk calls fn for every registered room. The registry lock is not held
// during fn, so fn may take room locks freely.
func (reg *Registry) Walk(fn func(*internal.Room)) {
	reg.mu.RLock()
	rooms := make([]*internal.Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	for _, room := range rooms {
		fn(room)
	}
}

func (reg *Registry) RoomCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

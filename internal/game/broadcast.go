package game

import (
	"log"

	"drawdash/internal"
)

// SafeBroadcastToRoom writes msg to every player in the room. The player
// list is snapshotted under the room lock first, so callers may broadcast
// without holding it.
func SafeBroadcastToRoom(room *internal.Room, msg any) {
	room.Mu.RLock()
	players := append([]*internal.Player(nil), room.Players...)
	room.Mu.RUnlock()

	for _, p := range players {
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[SafeBroadcastToRoom] room=%s: write to player %s (%s) failed: %v",
				room.Code, p.Id, p.Username, err)
		}
	}
}

// SafeBroadcastToRoomExcept is SafeBroadcastToRoom minus one recipient,
// used for drawer-private flows and join echoes.
func SafeBroadcastToRoomExcept(room *internal.Room, msg any, except *internal.Player) {
	room.Mu.RLock()
	players := append([]*internal.Player(nil), room.Players...)
	room.Mu.RUnlock()

	for _, p := range players {
		if p == except {
			continue
		}
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[SafeBroadcastToRoomExcept] room=%s: write to player %s (%s) failed: %v",
				room.Code, p.Id, p.Username, err)
		}
	}
}

// BuildGameState snapshots the room for broadcast. Callers hold room.Mu.
// Word choices and the secret word are never part of this snapshot; they
// travel on drawer-private messages only.
func BuildGameState(room *internal.Room) internal.GameStateData {
	return internal.GameStateData{
		RoomID:           room.Code,
		Phase:            room.Phase,
		Started:          room.Started,
		Round:            room.Round,
		MaxRounds:        room.Settings.Rounds,
		DrawerID:         room.DrawerID,
		HostID:           room.HostID,
		WordMask:         room.WordMask,
		TimeLeft:         room.TimeLeft,
		WaitingForChoice: room.WaitingForChoice,
		Settings:         room.Settings,
		Players:          room.PlayerSnapshots(),
	}
}

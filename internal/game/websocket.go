package game

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"drawdash/internal"
	"drawdash/internal/utils"
)

// Handler is the websocket transport over the game engine: it upgrades
// connections, runs one read loop per player, and turns inbound envelopes
// into engine calls.
type Handler struct {
	reg      *Registry
	engine   *Engine
	upgrader websocket.Upgrader
}

func NewHandler(reg *Registry, engine *Engine) *Handler {
	return &Handler{
		reg:    reg,
		engine: engine,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the connection, joins the player to the room
// from the URL, and starts the per-connection read loop.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[HandleWebSocket] upgrade failed:", err)
		return
	}

	roomID := mux.Vars(r)["roomId"]
	if roomID == "" {
		log.Println("[HandleWebSocket] no room id provided")
		conn.Close()
		return
	}

	username := utils.SanitizeUsername(r.URL.Query().Get("username"), "Anonymous", internal.MaxUsernameLen)
	player := &internal.Player{
		Id:       utils.GenerateID(8),
		Conn:     conn,
		Username: username,
		Avatar:   r.URL.Query().Get("avatar"),
	}

	if err := h.reg.Join(roomID, player); err != nil {
		// Join failures concern the joiner alone; the room is untouched.
		if writeErr := conn.WriteJSON(internal.Message[map[string]string]{
			Type: "error",
			Data: map[string]string{"error": err.Error()},
		}); writeErr != nil {
			log.Printf("[HandleWebSocket] room=%s: failed to report join error: %v", roomID, writeErr)
		}
		conn.Close()
		return
	}
	room := player.Room

	SafeBroadcastToRoomExcept(room, internal.Message[internal.PlayerJoinedData]{
		Type: "player_joined",
		Data: internal.PlayerJoinedData{
			Player:      playerSnapshotOf(room, player),
			PlayerCount: playerCount(room),
		},
	}, player)

	// Welcome the joiner with the current state and the canvas replay.
	room.Mu.RLock()
	state := BuildGameState(room)
	room.Mu.RUnlock()

	var strokes []json.RawMessage
	if canvas := h.reg.Canvas(roomID); canvas != nil {
		strokes = canvas.Strokes()
	}
	welcome := internal.Message[map[string]any]{
		Type: "welcome",
		Data: map[string]any{
			"player_id":    player.Id,
			"game_state":   state,
			"canvas_state": strokes,
		},
	}
	if err := player.SafeWriteJSON(welcome); err != nil {
		log.Printf("[HandleWebSocket] room=%s: failed to send welcome to %s: %v",
			roomID, player.Id, err)
	}

	go h.readLoop(player)
}

func playerSnapshotOf(room *internal.Room, player *internal.Player) internal.PlayerSnapshot {
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	return internal.PlayerSnapshot{
		ID:       player.Id,
		Username: player.Username,
		Avatar:   player.Avatar,
		Score:    player.Score,
		Guessed:  player.Guessed,
		IsHost:   room.HostID == player.Id,
		IsDrawer: room.DrawerID == player.Id,
	}
}

func playerCount(room *internal.Room) int {
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	return len(room.Players)
}

func (h *Handler) readLoop(player *internal.Player) {
	defer func() {
		player.Conn.Close()
		h.handleLeave(player)
	}()

	roomCode := player.Room.Code
	log.Printf("[readLoop] started for player %s (%s) in room %s",
		player.Id, player.Username, roomCode)

	for {
		_, rawMessage, err := player.Conn.ReadMessage()
		if err != nil {
			log.Printf("[readLoop] read error for player %s: %v", player.Id, err)
			break
		}

		var baseMsg internal.Message[json.RawMessage]
		if err := json.Unmarshal(rawMessage, &baseMsg); err != nil {
			log.Printf("[readLoop] failed to parse message from %s: %v", player.Id, err)
			continue
		}

		switch baseMsg.Type {
		case "start_game":
			h.handleStart(player)
		case "choose_word":
			var word string
			if err := json.Unmarshal(baseMsg.Data, &word); err != nil {
				log.Printf("[readLoop] bad choose_word payload from %s: %v", player.Id, err)
				continue
			}
			h.handleChooseWord(player, word)
		case "guess", "chat":
			// A single text input: chat that matches the word scores as
			// a guess, everything else is relayed by the evaluator.
			var text string
			if err := json.Unmarshal(baseMsg.Data, &text); err != nil {
				log.Printf("[readLoop] bad guess payload from %s: %v", player.Id, err)
				continue
			}
			h.engine.SubmitGuess(roomCode, player.Id, text)
		case "stroke":
			if h.engine.ApplyStroke(roomCode, player.Id, baseMsg.Data) {
				SafeBroadcastToRoomExcept(player.Room, internal.Message[internal.StrokeData]{
					Type: "stroke",
					Data: internal.StrokeData{PlayerID: player.Id, Stroke: baseMsg.Data},
				}, player)
			}
		case "clear_canvas":
			h.engine.ClearCanvas(roomCode)
			SafeBroadcastToRoom(player.Room, internal.Message[any]{Type: "canvas_clear", Data: nil})
		case "update_settings":
			var settings internal.RoomSettings
			if err := json.Unmarshal(baseMsg.Data, &settings); err != nil {
				log.Printf("[readLoop] bad settings payload from %s: %v", player.Id, err)
				continue
			}
			h.handleUpdateSettings(player, settings)
		default:
			log.Printf("[readLoop] unknown message type %q from player %s", baseMsg.Type, player.Id)
		}
	}
}

// handleStart begins the game. Only the host may start, and only from the
// lobby with at least two players; anything else is silently ignored.
func (h *Handler) handleStart(player *internal.Player) {
	room := player.Room

	room.Mu.RLock()
	isHost := room.HostID == player.Id
	started := room.Started
	count := len(room.Players)
	code := room.Code
	room.Mu.RUnlock()

	if !isHost || started || count < 2 {
		log.Printf("[handleStart] room=%s: ignoring start from %s (host=%v started=%v players=%d)",
			code, player.Id, isHost, started, count)
		return
	}

	if next := h.engine.NextTurn(code); next != nil {
		h.engine.AnnounceTurn(next)
	}
}

func (h *Handler) handleChooseWord(player *internal.Player, word string) {
	room := h.engine.ChooseWord(player.Room.Code, player.Id, word)
	if room == nil {
		return
	}

	room.Mu.RLock()
	chosen := room.Phase == internal.PhaseDrawing && !room.WaitingForChoice &&
		room.IsDrawer(player.Id) && room.Word == word
	room.Mu.RUnlock()

	if chosen {
		h.engine.AnnounceWordChosen(room)
	}
}

func (h *Handler) handleUpdateSettings(player *internal.Player, settings internal.RoomSettings) {
	room := h.engine.UpdateSettings(player.Room.Code, player.Id, settings)
	if room == nil {
		return
	}

	room.Mu.RLock()
	state := BuildGameState(room)
	room.Mu.RUnlock()

	SafeBroadcastToRoom(room, internal.Message[internal.GameStateData]{
		Type: "game_state",
		Data: state,
	})
}

// handleLeave runs when a connection drops: the player leaves the room,
// the remaining players hear about it, and a departing drawer forfeits the
// turn.
func (h *Handler) handleLeave(player *internal.Player) {
	room := player.Room
	if room == nil {
		return
	}
	code := room.Code

	result := h.reg.Leave(code, player.Id)
	if result.RoomDeleted || result.Room == nil {
		return
	}

	SafeBroadcastToRoom(result.Room, internal.Message[internal.PlayerLeftData]{
		Type: "player_left",
		Data: internal.PlayerLeftData{
			PlayerID:    player.Id,
			Username:    player.Username,
			PlayerCount: playerCount(result.Room),
			NewHostID:   result.NewHostID,
		},
	})

	result.Room.Mu.RLock()
	started := result.Room.Started
	state := BuildGameState(result.Room)
	result.Room.Mu.RUnlock()

	if result.WasDrawer && started {
		log.Printf("[handleLeave] room=%s: drawer %s left mid-turn, advancing", code, player.Id)
		h.engine.EndTurn(code)
		return
	}

	SafeBroadcastToRoom(result.Room, internal.Message[internal.GameStateData]{
		Type: "game_state",
		Data: state,
	})
}

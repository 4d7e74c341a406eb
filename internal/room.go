package internal

// Methods (Room Struct). Callers hold r.Mu.

func (r *Room) FindPlayer(playerID string) *Player {
	for _, p := range r.Players {
		if p.Id == playerID {
			return p
		}
	}
	return nil
}

func (r *Room) Drawer() *Player {
	if r.DrawerID == "" {
		return nil
	}
	return r.FindPlayer(r.DrawerID)
}

func (r *Room) IsDrawer(playerID string) bool {
	return r.DrawerID != "" && r.DrawerID == playerID
}

// HasEveryoneGuessed reports whether every non-drawer has guessed the word
// this turn. False when the drawer is the only player.
func (r *Room) HasEveryoneGuessed() bool {
	others := 0
	for _, p := range r.Players {
		if p.Id == r.DrawerID {
			continue
		}
		others++
		if !p.Guessed {
			return false
		}
	}
	return others > 0
}

func (r *Room) ResetPlayerTurnState() {
	for _, p := range r.Players {
		p.ResetTurnState()
	}
}

func (r *Room) PlayerSnapshots() []PlayerSnapshot {
	snaps := make([]PlayerSnapshot, 0, len(r.Players))
	for _, p := range r.Players {
		snaps = append(snaps, PlayerSnapshot{
			ID:       p.Id,
			Username: p.Username,
			Avatar:   p.Avatar,
			Score:    p.Score,
			Guessed:  p.Guessed,
			IsHost:   p.Id == r.HostID,
			IsDrawer: p.Id == r.DrawerID,
		})
	}
	return snaps
}

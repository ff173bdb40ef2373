package engine

// Lobby mutations: players join and contribute characters while the game
// is still waiting. Once StartGame succeeds the roster and pool freeze.

func (g *Game) AddPlayer(name string) (*Player, error) {
	if g.Status != StatusWaiting {
		return nil, newError(KindInvalidState, "game already started")
	}
	if g.Locked {
		return nil, newError(KindPreconditionFailed, "lobby is locked")
	}
	if _, exists := g.FindPlayerByName(name); exists {
		return nil, newError(KindValidation, "player name %q is already taken", name)
	}
	g.nextPlayerID++
	g.Players = append(g.Players, Player{
		ID:   g.nextPlayerID,
		Name: name,
	})
	return &g.Players[len(g.Players)-1], nil
}

// AddCharacters records one player's character submissions. The list must
// have exactly CharactersPerPlayer entries and introduce no duplicates;
// names are case-sensitive as entered.
func (g *Game) AddCharacters(playerID int, names []string) error {
	if g.Status != StatusWaiting {
		return newError(KindInvalidState, "game already started")
	}
	if _, ok := g.FindPlayer(playerID); !ok {
		return newError(KindNotFound, "player not found")
	}
	if g.PoolSeeded {
		return newError(KindInvalidState, "room uses a category pool")
	}
	if len(g.Submissions[playerID]) > 0 {
		return newError(KindInvalidState, "characters already submitted")
	}
	if len(names) != g.CharactersPerPlayer {
		return newError(KindValidation, "expected %d characters, got %d", g.CharactersPerPlayer, len(names))
	}
	seen := make(map[string]struct{}, len(g.CharacterPool)+len(names))
	for _, existing := range g.CharacterPool {
		seen[existing] = struct{}{}
	}
	for _, name := range names {
		if name == "" {
			return newError(KindValidation, "character name is required")
		}
		if _, dup := seen[name]; dup {
			return newError(KindValidation, "character %q was already submitted", name)
		}
		seen[name] = struct{}{}
	}
	g.CharacterPool = append(g.CharacterPool, names...)
	if g.Submissions == nil {
		g.Submissions = make(map[int][]string)
	}
	g.Submissions[playerID] = append([]string(nil), names...)
	return nil
}

// SetLocked freezes or reopens the lobby for new joins.
func (g *Game) SetLocked(locked bool) error {
	if g.Status != StatusWaiting {
		return newError(KindInvalidState, "game already started")
	}
	g.Locked = locked
	return nil
}

// RemovePlayer drops a player from the lobby and withdraws the
// characters they submitted.
func (g *Game) RemovePlayer(playerID int) error {
	if g.Status != StatusWaiting {
		return newError(KindInvalidState, "game already started")
	}
	index := -1
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			index = i
			break
		}
	}
	if index < 0 {
		return newError(KindNotFound, "player not found")
	}
	g.Players = append(g.Players[:index], g.Players[index+1:]...)
	if submitted := g.Submissions[playerID]; len(submitted) > 0 {
		withdraw := make(map[string]struct{}, len(submitted))
		for _, name := range submitted {
			withdraw[name] = struct{}{}
		}
		kept := g.CharacterPool[:0]
		for _, name := range g.CharacterPool {
			if _, gone := withdraw[name]; !gone {
				kept = append(kept, name)
			}
		}
		g.CharacterPool = kept
		delete(g.Submissions, playerID)
	}
	delete(g.PlayerStats, playerID)
	return nil
}

// RenamePlayer changes a player's display name before the game starts.
func (g *Game) RenamePlayer(playerID int, name string) error {
	if g.Status != StatusWaiting {
		return newError(KindInvalidState, "game already started")
	}
	player, ok := g.FindPlayer(playerID)
	if !ok {
		return newError(KindNotFound, "player not found")
	}
	if other, exists := g.FindPlayerByName(name); exists && other.ID != playerID {
		return newError(KindValidation, "player name %q is already taken", name)
	}
	player.Name = name
	return nil
}

// SeedPool installs a pre-built category pool instead of player
// submissions. minPoolSize replaces the per-player count precondition.
func (g *Game) SeedPool(names []string, minPoolSize int) error {
	if g.Status != StatusWaiting {
		return newError(KindInvalidState, "game already started")
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return newError(KindValidation, "character name is required")
		}
		if _, dup := seen[name]; dup {
			return newError(KindValidation, "character %q appears twice in the pool", name)
		}
		seen[name] = struct{}{}
	}
	g.CharacterPool = append([]string(nil), names...)
	g.PoolSeeded = true
	g.MinPoolSize = minPoolSize
	return nil
}

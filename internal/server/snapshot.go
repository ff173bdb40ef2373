package server

import "fishbowl/internal/engine"

// snapshotRoom builds the shared view of a room. The character being
// acted out is omitted here; snapshotForPlayer adds it for members of
// the guessing team only.
func snapshotRoom(room *Room) map[string]any {
	game := room.Game
	players := make([]map[string]any, 0, len(game.Players))
	for _, p := range game.Players {
		stats := game.PlayerStats[p.ID]
		if stats == nil {
			stats = &engine.Stats{}
		}
		players = append(players, map[string]any{
			"id":     p.ID,
			"name":   p.Name,
			"team":   p.Team,
			"score":  p.Score,
			"hits":   stats.Hits,
			"fails":  stats.Fails,
			"is_host": p.ID == room.HostID,
		})
	}

	teamCount := game.TeamCount()
	teamScores := make([]map[string]any, 0, teamCount)
	for team := 1; team <= teamCount; team++ {
		teamScores = append(teamScores, map[string]any{
			"team":  team,
			"score": game.TeamScore(team),
		})
	}

	snap := map[string]any{
		"room_code":          game.RoomCode,
		"status":            string(game.Status),
		"locked":            game.Locked,
		"mode":              string(game.Mode),
		"category":          room.Category,
		"players":           players,
		"team_scores":        teamScores,
		"current_round":      game.CurrentRound,
		"round_name":         engine.RoundName(game.CurrentRound),
		"current_team":       game.CurrentTeam,
		"waiting_for_player":  game.WaitingForPlayer,
		"showing_round_intro": game.ShowingRoundIntro,
		"timer": map[string]any{
			"time_left": game.Timer.TimeLeft,
			"paused":   game.Timer.Paused,
		},
		"characters_left": game.CharactersLeft(),
		"blocked_count":   len(game.BlockedCharacters),
	}

	if current, ok := game.CurrentPlayer(); ok {
		snap["current_player"] = map[string]any{
			"id":   current.ID,
			"name": current.Name,
			"team": current.Team,
		}
	}

	if game.Status == engine.StatusFinished {
		snap["winning_team"] = game.WinningTeam()
		if mvp, ok := game.MVP(); ok {
			snap["mvp"] = map[string]any{"id": mvp.ID, "name": mvp.Name}
		}
	}

	return snap
}

// snapshotForPlayer is the per-player view. The current character is
// revealed only to the player whose turn it is, and only while the
// turn is actually running.
func snapshotForPlayer(room *Room, playerID int) map[string]any {
	snap := snapshotRoom(room)
	game := room.Game
	if game.Status != engine.StatusPlaying || game.WaitingForPlayer || game.ShowingRoundIntro {
		return snap
	}
	current, ok := game.CurrentPlayer()
	if !ok || current.ID != playerID {
		return snap
	}
	if character, err := game.CurrentCharacter(); err == nil {
		snap["current_character"] = character
	}
	return snap
}

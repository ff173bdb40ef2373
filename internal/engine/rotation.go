package engine

// Turn rotation alternates across teams on every single turn instead of
// exhausting one team first: for cursor i, the team is teams[i mod
// teamCount] and the player within that team is position (i / teamCount)
// mod teamSize. The two-team game is the teamCount=2 special case.

func (g *Game) teamForIndex(index int) int {
	count := g.TeamCount()
	if count == 0 {
		return 0
	}
	return (index % count) + 1
}

// CurrentPlayer is the player whose turn the rotation cursor points at.
func (g *Game) CurrentPlayer() (Player, bool) {
	team := g.teamForIndex(g.TurnIndex)
	members := g.TeamPlayers(team)
	if len(members) == 0 {
		return Player{}, false
	}
	position := (g.TurnIndex / g.TeamCount()) % len(members)
	return members[position], true
}

// advanceTurn moves the cursor to the next team in rotation.
func (g *Game) advanceTurn() {
	g.TurnIndex++
	g.CurrentTeam = g.teamForIndex(g.TurnIndex)
}

// lastTeamInRotation reports whether the current team closes the per-round
// rotation cycle, which makes its turn end a round boundary.
func (g *Game) lastTeamInRotation() bool {
	return g.CurrentTeam == g.TeamCount()
}

// assignTeams fixes team membership at game start: alternating assignment
// for two-team games, consecutive pairs for pairs mode.
func (g *Game) assignTeams() {
	if g.Mode == ModePairs {
		for i := range g.Players {
			g.Players[i].Team = i/2 + 1
		}
		return
	}
	for i := range g.Players {
		g.Players[i].Team = i%2 + 1
	}
}

package engine

type EventType string

const (
	EventStart     EventType = "start"
	EventHit       EventType = "hit"
	EventFail      EventType = "fail"
	EventTimeUp    EventType = "timeup"
	EventReady     EventType = "ready"
	EventIntroSeen EventType = "intro_seen"
)

// Event is one of the five gameplay transitions plus start. PlayerID is
// required for hit and fail.
type Event struct {
	Type     EventType
	PlayerID int
}

// Apply runs one transition. Every precondition is checked before any
// field changes, so a returned error leaves the state untouched.
func (g *Game) Apply(ev Event) error {
	switch ev.Type {
	case EventStart:
		return g.Start()
	case EventHit:
		return g.Hit(ev.PlayerID)
	case EventFail:
		return g.Fail(ev.PlayerID)
	case EventTimeUp:
		return g.TimeUp()
	case EventReady:
		return g.PlayerReady()
	case EventIntroSeen:
		return g.RoundIntroSeen()
	default:
		return newError(KindValidation, "unknown event %q", ev.Type)
	}
}

// Start freezes the roster, shuffles the pool and opens round one paused
// behind the round intro.
func (g *Game) Start() error {
	if g.Status != StatusWaiting {
		return newError(KindInvalidState, "game already started")
	}
	if len(g.Players) < 2 {
		return newError(KindValidation, "at least 2 players are required")
	}
	if g.Mode == ModePairs {
		if len(g.Players)%2 != 0 {
			return newError(KindValidation, "pairs mode needs an even player count")
		}
		if len(g.Players) < 4 {
			return newError(KindValidation, "pairs mode needs at least 4 players")
		}
	}
	if err := g.checkPoolSize(); err != nil {
		return err
	}

	g.assignTeams()
	g.shuffle(g.CharacterPool)
	g.RoundCharacters = append([]string(nil), g.CharacterPool...)
	g.BlockedCharacters = nil
	g.CurrentRound = RoundDescribe
	g.CurrentCharacterIndex = 0
	g.TurnIndex = 0
	g.CurrentTeam = g.teamForIndex(0)
	g.RoundScores = make(map[int]map[int]int)
	g.PlayerStats = make(map[int]*Stats, len(g.Players))
	for i := range g.Players {
		g.Players[i].Score = 0
		g.PlayerStats[g.Players[i].ID] = &Stats{}
	}
	g.Status = StatusPlaying
	g.ShowingRoundIntro = true
	g.WaitingForPlayer = true
	g.Timer = Timer{TimeLeft: g.TimePerRound, Paused: true}
	return nil
}

func (g *Game) checkPoolSize() error {
	if g.PoolSeeded {
		if len(g.CharacterPool) < g.MinPoolSize {
			return newError(KindPreconditionFailed, "category pool has %d characters, need at least %d", len(g.CharacterPool), g.MinPoolSize)
		}
		return nil
	}
	teamCount := 2
	if g.Mode == ModePairs {
		teamCount = len(g.Players) / 2
	}
	required := teamCount * g.CharactersPerPlayer
	if len(g.CharacterPool) < required {
		return newError(KindPreconditionFailed, "character pool has %d characters, need at least %d", len(g.CharacterPool), required)
	}
	return nil
}

// Hit records a correct guess: the displayed character leaves the round
// pool for good (it returns next round), the acting player's team scores,
// and the same player keeps going unless the round just emptied.
func (g *Game) Hit(playerID int) error {
	player, err := g.actingPlayer(playerID)
	if err != nil {
		return err
	}
	displayed, err := g.CurrentCharacter()
	if err != nil {
		return err
	}

	player.Score++
	g.PlayerStats[player.ID].Hits++
	if g.RoundScores[g.CurrentRound] == nil {
		g.RoundScores[g.CurrentRound] = make(map[int]int)
	}
	g.RoundScores[g.CurrentRound][player.Team]++

	g.RoundCharacters = removeString(g.RoundCharacters, displayed)
	if len(g.RoundCharacters) == 0 {
		if g.CurrentRound < roundCount {
			g.advanceRound()
		} else {
			g.finish()
		}
		return nil
	}
	g.CurrentCharacterIndex = 0
	return nil
}

// Fail blocks the displayed character for the rest of this turn and hands
// the turn to the next team. Blocked cards stay blocked through the
// handoff until the next player acknowledges ready.
func (g *Game) Fail(playerID int) error {
	player, err := g.actingPlayer(playerID)
	if err != nil {
		return err
	}
	displayed, err := g.CurrentCharacter()
	if err != nil {
		return err
	}

	g.PlayerStats[player.ID].Fails++
	g.BlockedCharacters = append(g.BlockedCharacters, displayed)
	g.endTurn(false)
	return nil
}

// TimeUp ends the turn like a fail but charges nobody and blocks nothing;
// the blocked set is wiped for the incoming player.
func (g *Game) TimeUp() error {
	if g.Status != StatusPlaying {
		return newError(KindInvalidState, "game is not in play")
	}
	if g.WaitingForPlayer || g.ShowingRoundIntro {
		return newError(KindInvalidState, "turn is not active")
	}
	g.endTurn(true)
	return nil
}

// endTurn resolves a fail or timeout: round boundary when the closing team
// of the rotation just played, otherwise a within-round handoff with the
// remaining characters reshuffled.
func (g *Game) endTurn(clearBlocked bool) {
	if g.lastTeamInRotation() {
		if g.CurrentRound < roundCount {
			g.advanceRound()
		} else {
			g.finish()
		}
		return
	}
	g.advanceTurn()
	g.shuffle(g.RoundCharacters)
	if clearBlocked {
		g.BlockedCharacters = nil
	}
	g.CurrentCharacterIndex = 0
	g.WaitingForPlayer = true
	g.Timer = Timer{TimeLeft: g.TimePerRound, Paused: true}
}

// advanceRound opens the next round with a fresh shuffle of the full pool.
// The cursor advances so a different team opens each round.
func (g *Game) advanceRound() {
	g.CurrentRound++
	g.advanceTurn()
	g.RoundCharacters = append([]string(nil), g.CharacterPool...)
	g.shuffle(g.RoundCharacters)
	g.BlockedCharacters = nil
	g.CurrentCharacterIndex = 0
	g.ShowingRoundIntro = true
	g.WaitingForPlayer = true
	g.Timer = Timer{TimeLeft: g.TimePerRound, Paused: true}
}

func (g *Game) finish() {
	g.Status = StatusFinished
	g.WaitingForPlayer = false
	g.ShowingRoundIntro = false
	g.Timer.Paused = true
}

// PlayerReady resumes play after a handoff or round intro: the blocked set
// clears and the timer restarts unpaused.
func (g *Game) PlayerReady() error {
	if g.Status != StatusPlaying {
		return newError(KindInvalidState, "game is not in play")
	}
	if !g.WaitingForPlayer {
		return newError(KindInvalidState, "nobody is waiting to play")
	}
	g.WaitingForPlayer = false
	g.BlockedCharacters = nil
	g.Timer = Timer{TimeLeft: g.TimePerRound, Paused: false}
	return nil
}

// RoundIntroSeen dismisses the round intro. The timer stays paused until
// PlayerReady.
func (g *Game) RoundIntroSeen() error {
	if g.Status != StatusPlaying {
		return newError(KindInvalidState, "game is not in play")
	}
	if !g.ShowingRoundIntro {
		return newError(KindInvalidState, "no round intro is showing")
	}
	g.ShowingRoundIntro = false
	return nil
}

func (g *Game) actingPlayer(playerID int) (*Player, error) {
	if g.Status != StatusPlaying {
		return nil, newError(KindInvalidState, "game is not in play")
	}
	if g.WaitingForPlayer || g.ShowingRoundIntro {
		return nil, newError(KindInvalidState, "turn is not active")
	}
	player, ok := g.FindPlayer(playerID)
	if !ok {
		return nil, newError(KindNotFound, "player not found")
	}
	if player.Team != g.CurrentTeam {
		return nil, newError(KindNotYourTurn, "it is team %d's turn", g.CurrentTeam)
	}
	return player, nil
}

func removeString(list []string, target string) []string {
	for i, value := range list {
		if value == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

package engine

import (
	"math/rand"
	"time"
)

// Package engine holds the turn and round progression rules for a fishbowl
// game. It performs no I/O: hosts feed it events and read the resulting
// state. The same rules serve the multiplayer room server and the
// single-device local session.

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

type Mode string

const (
	// ModeTeams splits players into two fixed teams.
	ModeTeams Mode = "teams"
	// ModePairs makes a team out of every two players in join order.
	ModePairs Mode = "pairs"
)

const (
	RoundDescribe = 1
	RoundOneWord  = 2
	RoundMime     = 3

	roundCount = 3
)

// RoundName returns the communication constraint for a round number.
func RoundName(round int) string {
	switch round {
	case RoundDescribe:
		return "describe"
	case RoundOneWord:
		return "one-word"
	case RoundMime:
		return "mime"
	default:
		return ""
	}
}

type Player struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Team  int    `json:"team"`
	Score int    `json:"score"`
}

type Stats struct {
	Hits  int `json:"hits"`
	Fails int `json:"fails"`
}

type Timer struct {
	TimeLeft int  `json:"time_left"`
	Paused   bool `json:"paused"`
}

// Game is one room's (or one local session's) full state. Fields are
// exported so hosts can snapshot and persist it as JSON.
type Game struct {
	RoomCode string `json:"room_code"`
	Status   Status `json:"status"`
	Mode     Mode   `json:"mode"`

	// Players in join order. Teams are assigned on StartGame.
	Players []Player `json:"players"`

	// Locked rejects new joins while the host finishes the lineup.
	Locked bool `json:"locked,omitempty"`

	// CharacterPool is the game-long set of names; RoundCharacters the
	// subset still unguessed this round; BlockedCharacters the subset
	// failed during the current turn.
	CharacterPool     []string `json:"character_pool"`
	RoundCharacters   []string `json:"round_characters"`
	BlockedCharacters []string `json:"blocked_characters"`

	// Submissions maps player ID -> the characters that player put in the
	// pool, so a kicked player's entries can be withdrawn with them.
	Submissions map[int][]string `json:"submissions,omitempty"`

	CurrentRound          int `json:"current_round"`
	CurrentCharacterIndex int `json:"current_character_index"`
	CurrentTeam           int `json:"current_team"`

	// TurnIndex is the global rotation cursor: it advances by one on every
	// turn handoff, alternating across teams before repeating a team.
	TurnIndex int `json:"turn_index"`

	// RoundScores maps round number -> team -> hits.
	RoundScores map[int]map[int]int `json:"round_scores"`
	// PlayerStats maps player ID -> accumulated hits and fails.
	PlayerStats map[int]*Stats `json:"player_stats"`

	Timer             Timer `json:"timer"`
	WaitingForPlayer  bool  `json:"waiting_for_player"`
	ShowingRoundIntro bool  `json:"showing_round_intro"`

	TimePerRound        int `json:"time_per_round"`
	CharactersPerPlayer int `json:"characters_per_player"`

	// PoolSeeded marks a pool drawn from a category library rather than
	// player submissions; it relaxes the start precondition to MinPoolSize.
	PoolSeeded  bool `json:"pool_seeded"`
	MinPoolSize int  `json:"min_pool_size,omitempty"`

	nextPlayerID int
	rng          *rand.Rand
}

func NewGame(roomCode string, mode Mode, timePerRound, charactersPerPlayer int) *Game {
	return &Game{
		RoomCode:            roomCode,
		Status:              StatusWaiting,
		Mode:                mode,
		CurrentRound:        0,
		TimePerRound:        timePerRound,
		CharactersPerPlayer: charactersPerPlayer,
		RoundScores:         make(map[int]map[int]int),
		PlayerStats:         make(map[int]*Stats),
	}
}

// Rehydrate re-derives the unexported bookkeeping after a JSON decode,
// so a restored game can keep admitting players.
func (g *Game) Rehydrate() {
	for _, p := range g.Players {
		if p.ID > g.nextPlayerID {
			g.nextPlayerID = p.ID
		}
	}
}

// Seed fixes the shuffle order; tests use it for deterministic games.
func (g *Game) Seed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

func (g *Game) shuffle(list []string) {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.rng.Shuffle(len(list), func(i, j int) {
		list[i], list[j] = list[j], list[i]
	})
}

// TeamCount is 2 in teams mode and one team per pair in pairs mode.
func (g *Game) TeamCount() int {
	if g.Mode == ModePairs {
		return len(g.Players) / 2
	}
	return 2
}

func (g *Game) FindPlayer(playerID int) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return &g.Players[i], true
		}
	}
	return nil, false
}

func (g *Game) FindPlayerByName(name string) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].Name == name {
			return &g.Players[i], true
		}
	}
	return nil, false
}

// TeamPlayers returns a team's players in join order.
func (g *Game) TeamPlayers(team int) []Player {
	members := make([]Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Team == team {
			members = append(members, p)
		}
	}
	return members
}

// TeamScore sums a team's hits across all rounds.
func (g *Game) TeamScore(team int) int {
	total := 0
	for _, scores := range g.RoundScores {
		total += scores[team]
	}
	return total
}

// MVP is the player with the most hits, join order breaking ties. The
// second return is false when nobody has a hit yet.
func (g *Game) MVP() (Player, bool) {
	best := Player{}
	bestHits := 0
	for _, p := range g.Players {
		stats := g.PlayerStats[p.ID]
		if stats == nil {
			continue
		}
		if stats.Hits > bestHits {
			best = p
			bestHits = stats.Hits
		}
	}
	if bestHits == 0 {
		return Player{}, false
	}
	return best, true
}

// CharactersLeft is how many characters the guessing team can still
// draw this round.
func (g *Game) CharactersLeft() int {
	return len(g.availableCharacters())
}

// WinningTeam is the team with the highest total score, or 0 when the
// top teams are tied.
func (g *Game) WinningTeam() int {
	winner, bestScore, tied := 0, -1, false
	for team := 1; team <= g.TeamCount(); team++ {
		score := g.TeamScore(team)
		switch {
		case score > bestScore:
			winner, bestScore, tied = team, score, false
		case score == bestScore:
			tied = true
		}
	}
	if tied {
		return 0
	}
	return winner
}

// CurrentCharacter resolves the displayed character from the available
// pool (round characters minus blocked) using the rotating index.
func (g *Game) CurrentCharacter() (string, error) {
	available := g.availableCharacters()
	if len(available) == 0 {
		return "", newError(KindInvalidState, "no characters available to show")
	}
	return available[g.CurrentCharacterIndex%len(available)], nil
}

func (g *Game) availableCharacters() []string {
	blocked := make(map[string]struct{}, len(g.BlockedCharacters))
	for _, name := range g.BlockedCharacters {
		blocked[name] = struct{}{}
	}
	available := make([]string, 0, len(g.RoundCharacters))
	for _, name := range g.RoundCharacters {
		if _, ok := blocked[name]; ok {
			continue
		}
		available = append(available, name)
	}
	return available
}

// Clone deep-copies the game state. The shuffle source is not carried over.
func (g *Game) Clone() *Game {
	clone := *g
	clone.Players = append([]Player(nil), g.Players...)
	clone.CharacterPool = append([]string(nil), g.CharacterPool...)
	clone.RoundCharacters = append([]string(nil), g.RoundCharacters...)
	clone.BlockedCharacters = append([]string(nil), g.BlockedCharacters...)
	if g.Submissions != nil {
		clone.Submissions = make(map[int][]string, len(g.Submissions))
		for id, names := range g.Submissions {
			clone.Submissions[id] = append([]string(nil), names...)
		}
	}
	clone.RoundScores = make(map[int]map[int]int, len(g.RoundScores))
	for round, scores := range g.RoundScores {
		copied := make(map[int]int, len(scores))
		for team, hits := range scores {
			copied[team] = hits
		}
		clone.RoundScores[round] = copied
	}
	clone.PlayerStats = make(map[int]*Stats, len(g.PlayerStats))
	for id, stats := range g.PlayerStats {
		copied := *stats
		clone.PlayerStats[id] = &copied
	}
	clone.rng = nil
	return &clone
}

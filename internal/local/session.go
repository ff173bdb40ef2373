package local

// Package local drives a single-device game: one phone is passed
// around, so there is no server, no auth and no websocket. It wraps
// the same rules the room server uses and adds the countdown that
// browsers run for themselves in multiplayer.

import (
	"fishbowl/internal/engine"
)

// Session is a pass-the-phone game. Unlike a room, all calls happen on
// one goroutine (the UI loop), so there is no locking.
type Session struct {
	game *engine.Game
}

func NewSession(mode engine.Mode, timePerRound, charactersPerPlayer int) *Session {
	return &Session{
		game: engine.NewGame("", mode, timePerRound, charactersPerPlayer),
	}
}

// Seed fixes the shuffle order for deterministic runs.
func (s *Session) Seed(seed int64) {
	s.game.Seed(seed)
}

func (s *Session) AddPlayer(name string) (*engine.Player, error) {
	return s.game.AddPlayer(name)
}

func (s *Session) AddCharacters(playerID int, names []string) error {
	return s.game.AddCharacters(playerID, names)
}

func (s *Session) SeedPool(names []string, minPoolSize int) error {
	return s.game.SeedPool(names, minPoolSize)
}

func (s *Session) Start() error {
	return s.game.Apply(engine.Event{Type: engine.EventStart})
}

func (s *Session) Hit(playerID int) error {
	return s.game.Apply(engine.Event{Type: engine.EventHit, PlayerID: playerID})
}

func (s *Session) Fail(playerID int) error {
	return s.game.Apply(engine.Event{Type: engine.EventFail, PlayerID: playerID})
}

// Ready resumes play after a handoff; Continue dismisses a round intro.
func (s *Session) Ready() error {
	return s.game.Apply(engine.Event{Type: engine.EventReady})
}

func (s *Session) Continue() error {
	return s.game.Apply(engine.Event{Type: engine.EventIntroSeen})
}

// Tick advances the countdown by one second. When it reaches zero the
// turn ends exactly as if a client had reported time up.
func (s *Session) Tick() error {
	game := s.game
	if game.Status != engine.StatusPlaying || game.Timer.Paused {
		return nil
	}
	if game.Timer.TimeLeft > 1 {
		game.Timer.TimeLeft--
		return nil
	}
	game.Timer.TimeLeft = 0
	return game.Apply(engine.Event{Type: engine.EventTimeUp})
}

// State exposes the underlying game for rendering. Callers must treat
// it as read-only.
func (s *Session) State() *engine.Game {
	return s.game
}

// CurrentCharacter is the card to show the acting player, or "" while
// play is paused.
func (s *Session) CurrentCharacter() string {
	if s.game.Status != engine.StatusPlaying || s.game.WaitingForPlayer || s.game.ShowingRoundIntro {
		return ""
	}
	character, err := s.game.CurrentCharacter()
	if err != nil {
		return ""
	}
	return character
}

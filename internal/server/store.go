package server

import (
	"strings"
	"sync"
	"time"

	"fishbowl/internal/engine"
)

// Room is one live game plus the host-side bookkeeping the engine does
// not care about.
type Room struct {
	Game        *engine.Game
	DBID        uint
	HostID      int
	Category    string
	AuthTokens  map[int]string
	PlayerDBIDs map[int]uint
	CreatedAt   time.Time
	LastActive  time.Time
}

// Store maps room codes to live rooms. Every transition for a room runs
// inside UpdateRoom's critical section, so no two events for the same
// room ever interleave and a losing racer sees a precondition rejection
// instead of a lost update.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom builds a waiting room under a fresh collision-checked code.
func (s *Store) CreateRoom(mode engine.Mode, timePerRound, charactersPerPlayer int) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := newRoomCode()
	for _, taken := s.rooms[code]; taken; _, taken = s.rooms[code] {
		code = newRoomCode()
	}
	now := timeNowUTC()
	room := &Room{
		Game:        engine.NewGame(code, mode, timePerRound, charactersPerPlayer),
		AuthTokens:  make(map[int]string),
		PlayerDBIDs: make(map[int]uint),
		CreatedAt:   now,
		LastActive:  now,
	}
	s.rooms[code] = room
	return room
}

func (s *Store) GetRoom(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[normalizeRoomCode(code)]
	return room, ok
}

// UpdateRoom applies update atomically for the room's code. The update
// func must leave the room unchanged when it returns an error.
func (s *Store) UpdateRoom(code string, update func(room *Room) error) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[normalizeRoomCode(code)]
	if !ok {
		return nil, errRoomNotFound(code)
	}
	if err := update(room); err != nil {
		return nil, err
	}
	room.LastActive = timeNowUTC()
	return room, nil
}

// RestoreRoom re-registers a room loaded from the database.
func (s *Store) RestoreRoom(room *Room) error {
	if room == nil || room.Game == nil {
		return errValidation("room is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	code := normalizeRoomCode(room.Game.RoomCode)
	if _, ok := s.rooms[code]; ok {
		return errValidation("room %s is already running", code)
	}
	s.rooms[code] = room
	return nil
}

// RemoveRoom drops a room from memory; persisted history stays in the DB.
func (s *Store) RemoveRoom(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := normalizeRoomCode(code)
	room, ok := s.rooms[normalized]
	if ok {
		delete(s.rooms, normalized)
	}
	return room, ok
}

type RoomSummary struct {
	RoomCode string
	Status   engine.Status
	Mode     engine.Mode
	Players  int
	Round    int
}

func (s *Store) ListRoomSummaries() []RoomSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]RoomSummary, 0, len(s.rooms))
	for _, room := range s.rooms {
		list = append(list, RoomSummary{
			RoomCode: room.Game.RoomCode,
			Status:   room.Game.Status,
			Mode:     room.Game.Mode,
			Players:  len(room.Game.Players),
			Round:    room.Game.CurrentRound,
		})
	}
	sortSummaries(list)
	return list
}

// IdleRooms returns the codes of rooms inactive since the cutoff.
func (s *Store) IdleRooms(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes := make([]string, 0)
	for code, room := range s.rooms {
		if room.LastActive.Before(cutoff) {
			codes = append(codes, code)
		}
	}
	return codes
}

func normalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

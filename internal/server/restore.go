package server

import (
	"encoding/json"
	"errors"
	"strings"

	"fishbowl/internal/db"
	"fishbowl/internal/engine"
)

// restoreRoomFromDB rebuilds a live room from its persisted state
// snapshot. Auth tokens are not persisted, so restored players rejoin
// through their session cookie.
func (s *Server) restoreRoomFromDB(code string) (*Room, error) {
	if s.db == nil {
		return nil, errors.New("database not configured")
	}
	code = normalizeRoomCode(strings.TrimSpace(code))

	if existing, ok := s.store.GetRoom(code); ok {
		return existing, nil
	}

	var record db.Room
	if err := s.db.Where("room_code = ?", code).First(&record).Error; err != nil {
		return nil, errRoomNotFound(code)
	}
	if record.Status == string(engine.StatusFinished) {
		return nil, errors.New("room already finished")
	}
	if len(record.State) == 0 {
		return nil, errors.New("room has no saved state")
	}

	game := &engine.Game{}
	if err := json.Unmarshal(record.State, game); err != nil {
		return nil, err
	}
	game.Rehydrate()

	room := &Room{
		Game:        game,
		DBID:        record.ID,
		Category:    record.Category,
		AuthTokens:  make(map[int]string),
		PlayerDBIDs: make(map[int]uint),
		CreatedAt:   record.CreatedAt,
		LastActive:  timeNowUTC(),
	}

	var players []db.Player
	if err := s.db.Where("room_id = ?", record.ID).Order("joined_at asc").Find(&players).Error; err != nil {
		return nil, err
	}
	for _, persisted := range players {
		player, ok := game.FindPlayerByName(persisted.Name)
		if !ok {
			continue
		}
		room.PlayerDBIDs[player.ID] = persisted.ID
		if persisted.IsHost {
			room.HostID = player.ID
		}
	}

	if err := s.store.RestoreRoom(room); err != nil {
		return nil, err
	}
	if err := s.persistEvent(room, "room_restored", EventPayload{RoomCode: code}); err != nil {
		return room, err
	}
	s.broadcastHomeUpdate()
	return room, nil
}

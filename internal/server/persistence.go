package server

import (
	"encoding/json"
	"errors"
	"time"

	"fishbowl/internal/db"
	"fishbowl/internal/engine"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

func (s *Server) persistRoom(room *Room) error {
	if s.db == nil {
		return nil
	}
	game := room.Game
	record := db.Room{
		RoomCode:            game.RoomCode,
		Status:              string(game.Status),
		Mode:                string(game.Mode),
		TimePerRound:        game.TimePerRound,
		CharactersPerPlayer: game.CharactersPerPlayer,
		Category:            room.Category,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	room.DBID = record.ID
	return s.persistEvent(room, "room_created", EventPayload{
		RoomCode: game.RoomCode,
	})
}

func (s *Server) persistPlayer(room *Room, player *engine.Player, isHost bool) error {
	if s.db == nil {
		return nil
	}
	if room.PlayerDBIDs[player.ID] != 0 {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	record := db.Player{
		RoomID:   room.DBID,
		Name:     player.Name,
		Team:     player.Team,
		IsHost:   isHost,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			existing, lookupErr := s.findPlayerDBID(room.DBID, player.Name)
			if lookupErr == nil && existing != 0 {
				room.PlayerDBIDs[player.ID] = existing
				return nil
			}
		}
		return err
	}
	room.PlayerDBIDs[player.ID] = record.ID
	return s.persistEvent(room, "player_joined", EventPayload{
		PlayerID:   player.ID,
		PlayerName: player.Name,
	})
}

// persistState snapshots the whole engine state into the room row and
// appends an event describing the transition that produced it.
func (s *Server) persistState(room *Room, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	state, err := json.Marshal(room.Game)
	if err != nil {
		return err
	}
	updates := map[string]any{
		"status": string(room.Game.Status),
		"state":  datatypes.JSON(state),
	}
	if err := s.db.Model(&db.Room{}).Where("id = ?", room.DBID).Updates(updates).Error; err != nil {
		return err
	}
	if err := s.syncPlayerStats(room); err != nil {
		return err
	}
	return s.persistEvent(room, eventType, payload)
}

func (s *Server) syncPlayerStats(room *Room) error {
	for _, player := range room.Game.Players {
		dbID := room.PlayerDBIDs[player.ID]
		if dbID == 0 {
			continue
		}
		stats := room.Game.PlayerStats[player.ID]
		if stats == nil {
			stats = &engine.Stats{}
		}
		updates := map[string]any{
			"team":  player.Team,
			"hits":  stats.Hits,
			"fails": stats.Fails,
		}
		if err := s.db.Model(&db.Player{}).Where("id = ?", dbID).Updates(updates).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) renamePlayerRow(room *Room, playerID int, name string) error {
	if s.db == nil {
		return nil
	}
	dbID := room.PlayerDBIDs[playerID]
	if dbID == 0 {
		return nil
	}
	return s.db.Model(&db.Player{}).Where("id = ?", dbID).Update("name", name).Error
}

func (s *Server) removePlayerRow(room *Room, playerID int) error {
	if s.db == nil {
		return nil
	}
	dbID := room.PlayerDBIDs[playerID]
	if dbID == 0 {
		return nil
	}
	delete(room.PlayerDBIDs, playerID)
	return s.db.Delete(&db.Player{}, dbID).Error
}

func (s *Server) persistEvent(room *Room, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		RoomID:   room.DBID,
		PlayerID: s.resolveEventPlayerID(room, payload),
		Type:     eventType,
		Payload:  datatypes.JSON(data),
	}
	return s.db.Create(&event).Error
}

func (s *Server) resolveEventPlayerID(room *Room, payload EventPayload) *uint {
	if payload.PlayerID <= 0 {
		return nil
	}
	if dbID := room.PlayerDBIDs[payload.PlayerID]; dbID != 0 {
		value := dbID
		return &value
	}
	return nil
}

func (s *Server) ensureRoomDBID(room *Room) error {
	if s.db == nil || room.DBID != 0 {
		return nil
	}
	var record db.Room
	if err := s.db.Where("room_code = ?", room.Game.RoomCode).First(&record).Error; err != nil {
		return nil
	}
	room.DBID = record.ID
	return nil
}

func (s *Server) findPlayerDBID(roomDBID uint, name string) (uint, error) {
	var record db.Player
	if err := s.db.Where("room_id = ? AND name = ?", roomDBID, name).First(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

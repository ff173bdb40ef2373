package server

import (
	"context"
	"log"
	"time"
)

// StartReaper sweeps idle rooms out of memory on a fixed cadence until
// the context is cancelled. Finished history stays in the database.
func (s *Server) StartReaper(ctx context.Context) {
	interval := 5 * time.Minute
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.reapIdleRooms()
			}
		}
	}()
}

func (s *Server) reapIdleRooms() {
	cutoff := timeNowUTC().Add(-time.Duration(s.cfg.RoomIdleMinutes) * time.Minute)
	for _, code := range s.store.IdleRooms(cutoff) {
		room, ok := s.store.RemoveRoom(code)
		if !ok {
			continue
		}
		log.Printf("room reaped room=%s last_active=%s", code, room.LastActive.Format(time.RFC3339))
		_ = s.persistEvent(room, "room_expired", EventPayload{
			RoomCode: code,
			Reason:   "idle",
		})
		s.broadcastHomeUpdate()
	}
}

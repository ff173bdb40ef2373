package server

import (
	"testing"
	"time"

	"fishbowl/internal/engine"
)

func TestCreateRoomCodesAreUnique(t *testing.T) {
	store := NewStore()
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		room := store.CreateRoom(engine.ModeTeams, 60, 3)
		code := room.Game.RoomCode
		if len(code) != 6 {
			t.Fatalf("room code %q is not 6 characters", code)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("room code %q issued twice", code)
		}
		seen[code] = struct{}{}
	}
}

func TestGetRoomNormalizesCode(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom(engine.ModeTeams, 60, 3)
	code := room.Game.RoomCode

	if _, ok := store.GetRoom("  " + code + " "); !ok {
		t.Fatal("lookup with surrounding spaces failed")
	}
	lower := make([]byte, len(code))
	for i := range code {
		c := code[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	if _, ok := store.GetRoom(string(lower)); !ok {
		t.Fatal("lookup with lowercase code failed")
	}
}

func TestUpdateRoomUnknownCode(t *testing.T) {
	store := NewStore()
	_, err := store.UpdateRoom("ZZZZZZ", func(room *Room) error { return nil })
	if engine.ErrKind(err) != engine.KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestUpdateRoomErrorSkipsActivityBump(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom(engine.ModeTeams, 60, 3)
	before := room.LastActive

	_, err := store.UpdateRoom(room.Game.RoomCode, func(room *Room) error {
		return errValidation("nope")
	})
	if err == nil {
		t.Fatal("expected update error")
	}
	if !room.LastActive.Equal(before) {
		t.Fatal("failed update must not bump LastActive")
	}
}

func TestRestoreRoomRejectsDuplicate(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom(engine.ModeTeams, 60, 3)

	clone := &Room{
		Game:        engine.NewGame(room.Game.RoomCode, engine.ModeTeams, 60, 3),
		AuthTokens:  make(map[int]string),
		PlayerDBIDs: make(map[int]uint),
	}
	if err := store.RestoreRoom(clone); err == nil {
		t.Fatal("expected duplicate restore to fail")
	}
}

func TestIdleRooms(t *testing.T) {
	store := NewStore()
	stale := store.CreateRoom(engine.ModeTeams, 60, 3)
	fresh := store.CreateRoom(engine.ModeTeams, 60, 3)
	stale.LastActive = time.Now().UTC().Add(-3 * time.Hour)

	idle := store.IdleRooms(time.Now().UTC().Add(-2 * time.Hour))
	if len(idle) != 1 || idle[0] != stale.Game.RoomCode {
		t.Fatalf("IdleRooms = %v, want just %s", idle, stale.Game.RoomCode)
	}
	if _, ok := store.GetRoom(fresh.Game.RoomCode); !ok {
		t.Fatal("fresh room disappeared")
	}
}

func TestRemoveRoom(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom(engine.ModeTeams, 60, 3)
	code := room.Game.RoomCode

	if _, ok := store.RemoveRoom(code); !ok {
		t.Fatal("RemoveRoom failed for existing room")
	}
	if _, ok := store.GetRoom(code); ok {
		t.Fatal("room still present after removal")
	}
	if _, ok := store.RemoveRoom(code); ok {
		t.Fatal("second removal should report missing")
	}
}

package server

import (
	"strconv"
	"strings"
)

// parseRoomPath splits /api/rooms/{code} and /api/rooms/{code}/{action}
// into the room code and optional action segment.
func parseRoomPath(path string) (code, action string, ok bool) {
	rest, found := strings.CutPrefix(path, "/api/rooms/")
	if !found || rest == "" {
		return "", "", false
	}
	parts := strings.SplitN(rest, "/", 3)
	switch len(parts) {
	case 1:
		return normalizeRoomCode(parts[0]), "", true
	case 2:
		if parts[1] == "" {
			return normalizeRoomCode(parts[0]), "", true
		}
		return normalizeRoomCode(parts[0]), parts[1], true
	}
	return "", "", false
}

// parsePlayPath splits /play/{code}/{playerID} into its parts.
func parsePlayPath(path string) (code string, playerID int, ok bool) {
	rest, found := strings.CutPrefix(path, "/play/")
	if !found {
		return "", 0, false
	}
	parts := strings.Split(strings.TrimSuffix(rest, "/"), "/")
	if len(parts) != 2 {
		return "", 0, false
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil || id < 1 {
		return "", 0, false
	}
	return normalizeRoomCode(parts[0]), id, true
}

// parseWebsocketPath extracts the room code from /ws/rooms/{code}.
func parseWebsocketPath(path string) (string, bool) {
	rest, found := strings.CutPrefix(path, "/ws/rooms/")
	if !found || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return normalizeRoomCode(rest), true
}

package server

import (
	"crypto/rand"
	"sort"
	"time"
)

// Room codes are 6 characters of [A-Z0-9], upper-cased on generation and
// on lookup.
func newRoomCode() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAAA"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}

func sortSummaries(list []RoomSummary) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].RoomCode < list[j].RoomCode
	})
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}

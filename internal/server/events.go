package server

// EventPayload is the loose bag of fields stored with each room event.
// Only the fields relevant to an event type are set.
type EventPayload struct {
	RoomCode   string `json:"room_code,omitempty"`
	PlayerID   int    `json:"player_id,omitempty"`
	PlayerName string `json:"player_name,omitempty"`
	Team       int    `json:"team,omitempty"`
	Round      int    `json:"round,omitempty"`
	Character  string `json:"character,omitempty"`
	Score      int    `json:"score,omitempty"`
	Status     string `json:"status,omitempty"`
	Category   string `json:"category,omitempty"`
	Count      int    `json:"count,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

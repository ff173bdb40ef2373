package web

// RoomSummary is the home page listing of open rooms.
type RoomSummary struct {
	RoomCode string `json:"room_code"`
	Status   string `json:"status"`
	Round    int    `json:"round"`
	Players  int    `json:"players"`
}

type PaginationData struct {
	BasePath   string `json:"base_path"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	PrevPage   int    `json:"prev_page"`
	NextPage   int    `json:"next_page"`
}

type AdminRoomRow struct {
	RoomCode string `json:"room_code"`
	Status   string `json:"status"`
	Mode     string `json:"mode"`
	Players  int    `json:"players"`
	Round    int    `json:"round"`
	Live     bool   `json:"live"`
}

type AdminDashboardData struct {
	Flash string
	Rooms []AdminRoomRow
}

type AdminRoomData struct {
	RoomCode string
	Flash    string
	Snapshot map[string]any
}

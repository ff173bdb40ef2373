package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"fishbowl/internal/web"

	"github.com/gorilla/websocket"
)

// wsHub tracks the sockets watching each room. Every connection
// remembers which player opened it (0 for spectators) so broadcasts
// can tailor the snapshot per player.
type wsHub struct {
	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]int
}

type homeHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		rooms: make(map[string]map[*websocket.Conn]int),
	}
}

func newHomeHub() *homeHub {
	return &homeHub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(code string, conn *websocket.Conn, playerID int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[code]
	if room == nil {
		room = make(map[*websocket.Conn]int)
		h.rooms[code] = room
	}
	room[conn] = playerID
}

func (h *wsHub) Remove(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[code]
	if room == nil {
		return
	}
	delete(room, conn)
	_ = conn.Close()
	if len(room) == 0 {
		delete(h.rooms, code)
	}
}

func (h *wsHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

// Broadcast sends each watcher its own view of the room, built by view
// from the player ID recorded at connect time.
func (h *wsHub) Broadcast(code string, view func(playerID int) any) {
	h.mu.Lock()
	room := h.rooms[code]
	conns := make(map[*websocket.Conn]int, len(room))
	for conn, playerID := range room {
		conns[conn] = playerID
	}
	h.mu.Unlock()

	for conn, playerID := range conns {
		data, err := json.Marshal(view(playerID))
		if err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(code, conn)
		}
	}
}

func (h *homeHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *homeHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	_ = conn.Close()
}

func (h *homeHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *homeHub) Broadcast(payload any) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(conn)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	code, ok := parseWebsocketPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	room, exists := s.store.GetRoom(code)
	if !exists {
		http.NotFound(w, r)
		return
	}
	playerID, _ := strconv.Atoi(r.URL.Query().Get("player"))
	if playerID > 0 && !s.authorizePlayer(room, playerID, r.URL.Query().Get("token")) {
		http.Error(w, "invalid player token", http.StatusForbidden)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected room=%s player=%d remote=%s", code, playerID, r.RemoteAddr)
	s.ws.Add(code, conn, playerID)
	if room, ok := s.store.GetRoom(code); ok {
		s.ws.Send(conn, snapshotForPlayer(room, playerID))
	}
	go s.readWS(code, conn)
}

func (s *Server) handleHomeWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected home remote=%s", r.RemoteAddr)
	s.homeWS.Add(conn)
	s.homeWS.Send(conn, map[string]any{
		"rooms": s.homeSummaries(),
	})
	go s.readHomeWS(conn)
}

func (s *Server) readWS(code string, conn *websocket.Conn) {
	defer s.ws.Remove(code, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected room=%s error=%v", code, err)
			return
		}
	}
}

func (s *Server) readHomeWS(conn *websocket.Conn) {
	defer s.homeWS.Remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("home ws disconnected error=%v", err)
			return
		}
	}
}

func (s *Server) broadcastRoomUpdate(room *Room) {
	if s.ws != nil {
		s.ws.Broadcast(room.Game.RoomCode, func(playerID int) any {
			return snapshotForPlayer(room, playerID)
		})
	}
	s.broadcastHomeUpdate()
}

func (s *Server) broadcastHomeUpdate() {
	if s.homeWS == nil {
		return
	}
	s.homeWS.Broadcast(map[string]any{
		"rooms": s.homeSummaries(),
	})
}

func (s *Server) homeSummaries() []web.RoomSummary {
	summaries := make([]web.RoomSummary, 0)
	for _, room := range s.store.ListRoomSummaries() {
		summaries = append(summaries, web.RoomSummary{
			RoomCode: room.RoomCode,
			Status:   string(room.Status),
			Round:    room.Round,
			Players:  room.Players,
		})
	}
	return summaries
}

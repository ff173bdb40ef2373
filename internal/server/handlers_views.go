package server

import (
	"log"
	"net/http"
	"strings"

	"fishbowl/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	flash := ""
	name := ""
	lastRoom := ""
	if s.sessions != nil {
		flash = s.sessions.PopFlash(w, r)
		name = s.sessions.GetName(w, r)
		lastRoom = s.sessions.GetLastRoom(w, r)
	}
	templ.Handler(web.Home(flash, name, lastRoom, s.homeSummaries())).ServeHTTP(w, r)
}

func (s *Server) handleJoinView(w http.ResponseWriter, r *http.Request) {
	code := ""
	name := ""
	if rest, found := strings.CutPrefix(r.URL.Path, "/join/"); found {
		code = strings.Trim(rest, "/")
		if strings.Contains(code, "/") {
			http.NotFound(w, r)
			return
		}
		code = normalizeRoomCode(code)
	}
	if s.sessions != nil {
		name = s.sessions.GetName(w, r)
	}
	templ.Handler(web.JoinView(code, name)).ServeHTTP(w, r)
}

func (s *Server) handleRoomView(w http.ResponseWriter, r *http.Request) {
	code := strings.Trim(strings.TrimPrefix(r.URL.Path, "/rooms/"), "/")
	if code == "" || strings.Contains(code, "/") {
		http.NotFound(w, r)
		return
	}
	code = normalizeRoomCode(code)
	if _, ok := s.store.GetRoom(code); !ok {
		log.Printf("room view missing room=%s", code)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	templ.Handler(web.RoomView(code)).ServeHTTP(w, r)
}

func (s *Server) handlePlayerView(w http.ResponseWriter, r *http.Request) {
	code, playerID, ok := parsePlayPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	room, ok := s.store.GetRoom(code)
	if !ok {
		if s.sessions != nil {
			s.sessions.SetFlash(w, r, "Room not found. Start a new one or join with a fresh code.")
		}
		log.Printf("player view missing room=%s player_id=%d", code, playerID)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	player, ok := room.Game.FindPlayer(playerID)
	if !ok {
		if s.sessions != nil {
			s.sessions.SetFlash(w, r, "You are not seated in that room. Join it first.")
		}
		http.Redirect(w, r, "/join/"+code, http.StatusFound)
		return
	}
	templ.Handler(web.PlayerView(code, playerID, player.Name)).ServeHTTP(w, r)
}

package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"fishbowl/internal/db"
	"fishbowl/internal/engine"
)

type createRoomRequest struct {
	Mode                string `json:"mode"`
	TimePerRound        int    `json:"time_per_round"`
	CharactersPerPlayer int    `json:"characters_per_player"`
	Category            string `json:"category"`
}

type joinRequest struct {
	Name string `json:"name"`
}

type charactersRequest struct {
	PlayerID   int      `json:"player_id"`
	AuthToken  string   `json:"auth_token"`
	Characters []string `json:"characters"`
}

type playerActionRequest struct {
	PlayerID  int    `json:"player_id"`
	AuthToken string `json:"auth_token"`
}

type lockRequest struct {
	PlayerID  int    `json:"player_id"`
	AuthToken string `json:"auth_token"`
	Locked    bool   `json:"locked"`
}

type kickRequest struct {
	PlayerID  int    `json:"player_id"`
	AuthToken string `json:"auth_token"`
	TargetID  int    `json:"target_id"`
}

type renameRequest struct {
	PlayerID  int    `json:"player_id"`
	AuthToken string `json:"auth_token"`
	Name      string `json:"name"`
}

func (s *Server) enforceRateLimit(w http.ResponseWriter, r *http.Request, action string) bool {
	if s.limiter == nil {
		return true
	}
	if s.limiter.Allow(action + ":" + clientIP(r)) {
		return true
	}
	writeError(w, http.StatusTooManyRequests, "too many requests, slow down")
	return false
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "create") {
		return
	}
	// An empty body means a room with all defaults.
	var req createRoomRequest
	if err := readJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode := engine.Mode(req.Mode)
	if mode == "" {
		mode = engine.ModeTeams
	}
	if mode != engine.ModeTeams && mode != engine.ModePairs {
		writeError(w, http.StatusBadRequest, "mode must be teams or pairs")
		return
	}
	timePerRound := req.TimePerRound
	if timePerRound <= 0 {
		timePerRound = s.cfg.TimePerRoundSeconds
	}
	if timePerRound > 600 {
		writeError(w, http.StatusBadRequest, "time_per_round must be 600 seconds or fewer")
		return
	}
	charactersPerPlayer := req.CharactersPerPlayer
	if charactersPerPlayer <= 0 {
		charactersPerPlayer = s.cfg.CharactersPerPlayer
	}
	if charactersPerPlayer > 10 {
		writeError(w, http.StatusBadRequest, "characters_per_player must be 10 or fewer")
		return
	}
	category, err := validateCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var pool []string
	if category != "" {
		pool, err = s.categoryPool(category)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	room := s.store.CreateRoom(mode, timePerRound, charactersPerPlayer)
	room.Category = category
	if len(pool) > 0 {
		if err := room.Game.SeedPool(pool, s.cfg.MinCategoryPool); err != nil {
			s.store.RemoveRoom(room.Game.RoomCode)
			writeEngineError(w, err)
			return
		}
	}
	if err := s.persistRoom(room); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create room")
		return
	}
	log.Printf("room created room=%s mode=%s category=%q", room.Game.RoomCode, mode, category)
	writeJSON(w, http.StatusCreated, map[string]any{
		"room_code": room.Game.RoomCode,
		"join_url":  s.joinURL(r, room.Game.RoomCode),
		"qr_url":    fmt.Sprintf("/api/rooms/%s/qr", room.Game.RoomCode),
	})
	s.broadcastHomeUpdate()
}

// categoryPool draws a shuffled slice of library characters for a room.
func (s *Server) categoryPool(category string) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("category pools need a database")
	}
	names, err := db.ListCategoryCharacters(s.db, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load category %q", category)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if len(names) > maxPoolDraw {
		names = names[:maxPoolDraw]
	}
	return names, nil
}

func (s *Server) handleRoomSubroutes(w http.ResponseWriter, r *http.Request) {
	code, action, ok := parseRoomPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		switch action {
		case "":
			s.handleGetRoom(w, r, code)
		case "qr":
			s.handleRoomQR(w, r, code)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch action {
	case "join":
		s.handleJoinRoom(w, r, code)
	case "characters":
		s.handleSubmitCharacters(w, r, code)
	case "start":
		s.handleStartGame(w, r, code)
	case "lock":
		s.handleLockLobby(w, r, code)
	case "kick":
		s.handleKickPlayer(w, r, code)
	case "rename":
		s.handleRenamePlayer(w, r, code)
	case "hit":
		s.handleGameEvent(w, r, code, engine.EventHit)
	case "fail":
		s.handleGameEvent(w, r, code, engine.EventFail)
	case "timeup":
		s.handleGameEvent(w, r, code, engine.EventTimeUp)
	case "ready":
		s.handleGameEvent(w, r, code, engine.EventReady)
	case "intro-seen":
		s.handleGameEvent(w, r, code, engine.EventIntroSeen)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request, code string) {
	room, ok := s.store.GetRoom(code)
	if !ok {
		http.NotFound(w, r)
		return
	}
	playerID := queryInt(r, "player_id")
	if playerID > 0 && s.authorizePlayer(room, playerID, r.URL.Query().Get("auth_token")) {
		writeJSON(w, http.StatusOK, snapshotForPlayer(room, playerID))
		return
	}
	writeJSON(w, http.StatusOK, snapshotRoom(room))
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request, code string) {
	if !s.enforceRateLimit(w, r, "join") {
		return
	}
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var joined *engine.Player
	var token string
	var isHost bool
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		player, err := room.Game.AddPlayer(name)
		if err != nil {
			return err
		}
		if room.HostID == 0 {
			room.HostID = player.ID
		}
		joined = player
		token = issuePlayerToken(room, player.ID)
		isHost = player.ID == room.HostID
		return nil
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := s.persistPlayer(room, joined, isHost); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to join room")
		return
	}
	s.sessions.Remember(w, r, joined.Name, room.Game.RoomCode)
	log.Printf("player joined room=%s player_id=%d name=%s", room.Game.RoomCode, joined.ID, joined.Name)
	writeJSON(w, http.StatusCreated, map[string]any{
		"room_code":  room.Game.RoomCode,
		"player_id":  joined.ID,
		"auth_token": token,
		"is_host":    isHost,
	})
	s.broadcastRoomUpdate(room)
}

func (s *Server) handleSubmitCharacters(w http.ResponseWriter, r *http.Request, code string) {
	var req charactersRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cleaned := make([]string, 0, len(req.Characters))
	for _, raw := range req.Characters {
		name, err := validateCharacter(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		cleaned = append(cleaned, name)
	}

	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		if _, err := s.authenticatePlayer(w, r, room, req.PlayerID, req.AuthToken); err != nil {
			return err
		}
		return room.Game.AddCharacters(req.PlayerID, cleaned)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := s.persistEvent(room, "characters_submitted", EventPayload{
		PlayerID: req.PlayerID,
		Count:    len(cleaned),
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save characters")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pool_size": len(room.Game.CharacterPool),
	})
	s.broadcastRoomUpdate(room)
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request, code string) {
	var req playerActionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		if _, err := s.authenticateHost(w, r, room, req.PlayerID, req.AuthToken); err != nil {
			return err
		}
		return room.Game.Apply(engine.Event{Type: engine.EventStart})
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := s.persistState(room, "game_started", EventPayload{
		PlayerID: req.PlayerID,
		Status:   string(room.Game.Status),
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start game")
		return
	}
	log.Printf("game started room=%s players=%d teams=%d", room.Game.RoomCode, len(room.Game.Players), room.Game.TeamCount())
	writeJSON(w, http.StatusOK, snapshotRoom(room))
	s.broadcastRoomUpdate(room)
}

func (s *Server) handleLockLobby(w http.ResponseWriter, r *http.Request, code string) {
	var req lockRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		if _, err := s.authenticateHost(w, r, room, req.PlayerID, req.AuthToken); err != nil {
			return err
		}
		return room.Game.SetLocked(req.Locked)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	eventType := "lobby_unlocked"
	if req.Locked {
		eventType = "lobby_locked"
	}
	if err := s.persistEvent(room, eventType, EventPayload{PlayerID: req.PlayerID}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update lobby")
		return
	}
	log.Printf("lobby lock changed room=%s locked=%t", room.Game.RoomCode, req.Locked)
	writeJSON(w, http.StatusOK, map[string]any{"locked": room.Game.Locked})
	s.broadcastRoomUpdate(room)
}

func (s *Server) handleKickPlayer(w http.ResponseWriter, r *http.Request, code string) {
	var req kickRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var kickedName string
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		if _, err := s.authenticateHost(w, r, room, req.PlayerID, req.AuthToken); err != nil {
			return err
		}
		if req.TargetID == room.HostID {
			return engine.NewError(engine.KindValidation, "the host cannot be kicked")
		}
		target, ok := room.Game.FindPlayer(req.TargetID)
		if !ok {
			return engine.NewError(engine.KindNotFound, "player not found")
		}
		kickedName = target.Name
		if err := room.Game.RemovePlayer(req.TargetID); err != nil {
			return err
		}
		delete(room.AuthTokens, req.TargetID)
		return nil
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := s.removePlayerRow(room, req.TargetID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove player")
		return
	}
	if err := s.persistEvent(room, "player_kicked", EventPayload{
		PlayerID:   req.PlayerID,
		PlayerName: kickedName,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove player")
		return
	}
	log.Printf("player kicked room=%s target_id=%d name=%s", room.Game.RoomCode, req.TargetID, kickedName)
	writeJSON(w, http.StatusOK, snapshotRoom(room))
	s.broadcastRoomUpdate(room)
}

func (s *Server) handleRenamePlayer(w http.ResponseWriter, r *http.Request, code string) {
	var req renameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		if _, err := s.authenticatePlayer(w, r, room, req.PlayerID, req.AuthToken); err != nil {
			return err
		}
		return room.Game.RenamePlayer(req.PlayerID, name)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := s.renamePlayerRow(room, req.PlayerID, name); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to rename player")
		return
	}
	if err := s.persistEvent(room, "player_renamed", EventPayload{
		PlayerID:   req.PlayerID,
		PlayerName: name,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to rename player")
		return
	}
	s.sessions.Remember(w, r, name, room.Game.RoomCode)
	writeJSON(w, http.StatusOK, snapshotForPlayer(room, req.PlayerID))
	s.broadcastRoomUpdate(room)
}

// handleGameEvent drives one engine transition. Hit and fail must come
// from the acting player; the other events from any seated player.
func (s *Server) handleGameEvent(w http.ResponseWriter, r *http.Request, code string, eventType engine.EventType) {
	var req playerActionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var character string
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		if _, err := s.authenticatePlayer(w, r, room, req.PlayerID, req.AuthToken); err != nil {
			return err
		}
		if eventType == engine.EventHit || eventType == engine.EventFail {
			character, _ = room.Game.CurrentCharacter()
		}
		return room.Game.Apply(engine.Event{Type: eventType, PlayerID: req.PlayerID})
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := s.persistState(room, string(eventType), EventPayload{
		PlayerID:  req.PlayerID,
		Round:     room.Game.CurrentRound,
		Character: character,
		Status:    string(room.Game.Status),
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record event")
		return
	}
	log.Printf("event applied room=%s type=%s player_id=%d status=%s round=%d",
		room.Game.RoomCode, eventType, req.PlayerID, room.Game.Status, room.Game.CurrentRound)
	writeJSON(w, http.StatusOK, snapshotForPlayer(room, req.PlayerID))
	s.broadcastRoomUpdate(room)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusOK, map[string]any{"categories": []string{}})
		return
	}
	categories, err := db.ListCategories(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) joinURL(r *http.Request, code string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/join/%s", scheme, r.Host, code)
}

func queryInt(r *http.Request, key string) int {
	value := 0
	_, _ = fmt.Sscanf(r.URL.Query().Get(key), "%d", &value)
	return value
}

package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"fishbowl/internal/engine"

	"github.com/google/uuid"
)

// issuePlayerToken mints the bearer token a player uses for every
// follow-up request. Tokens live with the room, not the database.
func issuePlayerToken(room *Room, playerID int) string {
	token := uuid.NewString()
	room.AuthTokens[playerID] = token
	return token
}

func (s *Server) authorizePlayer(room *Room, playerID int, token string) bool {
	expected, ok := room.AuthTokens[playerID]
	if !ok {
		return false
	}
	provided := strings.TrimSpace(token)
	return provided != "" && subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}

func (s *Server) authenticatePlayer(w http.ResponseWriter, r *http.Request, room *Room, playerID int, token string) (*engine.Player, error) {
	if playerID <= 0 {
		return nil, errValidation("playerId is required")
	}
	player, ok := room.Game.FindPlayer(playerID)
	if !ok {
		return nil, engine.NewError(engine.KindNotFound, "player not found")
	}
	if s.authorizePlayer(room, playerID, token) {
		return player, nil
	}
	if s.sessions != nil && strings.TrimSpace(token) == "" {
		sessionName := normalizeText(s.sessions.GetName(w, r))
		if sessionName != "" && strings.EqualFold(sessionName, player.Name) {
			return player, nil
		}
	}
	return nil, engine.NewError(engine.KindNotYourTurn, "invalid player credentials")
}

func (s *Server) authenticateHost(w http.ResponseWriter, r *http.Request, room *Room, playerID int, token string) (*engine.Player, error) {
	player, err := s.authenticatePlayer(w, r, room, playerID, token)
	if err != nil {
		return nil, err
	}
	if room.HostID == 0 || player.ID != room.HostID {
		return nil, engine.NewError(engine.KindNotYourTurn, "only the host can do that")
	}
	return player, nil
}

func (s *Server) adminAuthorized(header string) bool {
	if s.cfg.AdminToken == "" {
		return false
	}
	provided := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return provided != "" && subtle.ConstantTimeCompare([]byte(provided), []byte(s.cfg.AdminToken)) == 1
}

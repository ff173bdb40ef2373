package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fishbowl/internal/config"
)

func TestLockLobbyRejectsJoins(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	host := joinPlayer(t, ts, code, "Ada")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/lock", map[string]any{
		"player_id":  host.ID,
		"auth_token": host.Token,
		"locked":     true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("lock: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if locked, _ := decodeBody(t, resp)["locked"].(bool); !locked {
		t.Fatal("expected locked true in response")
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{"name": "Bob"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("join on locked lobby: expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/lock", map[string]any{
		"player_id":  host.ID,
		"auth_token": host.Token,
		"locked":     false,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unlock: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	joinPlayer(t, ts, code, "Bob")
}

func TestLockLobbyRequiresHost(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	joinPlayer(t, ts, code, "Ada")
	bob := joinPlayer(t, ts, code, "Bob")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/lock", map[string]any{
		"player_id":  bob.ID,
		"auth_token": bob.Token,
		"locked":     true,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
}

func TestKickPlayer(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	host := joinPlayer(t, ts, code, "Ada")
	bob := joinPlayer(t, ts, code, "Bob")
	submitCharacters(t, ts, code, bob, []string{"Cleopatra", "Sherlock", "Yoda"})

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/kick", map[string]any{
		"player_id":  host.ID,
		"auth_token": host.Token,
		"target_id":  bob.ID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("kick: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	snap := decodeBody(t, resp)
	players, _ := snap["players"].([]any)
	if len(players) != 1 {
		t.Fatalf("expected 1 player after kick, got %d", len(players))
	}

	// The kicked player's token is revoked.
	resp = postAction(t, ts, code, "ready", bob)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("kicked player action: expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
	// Their submitted characters left the pool with them.
	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/characters", map[string]any{
		"player_id":  host.ID,
		"auth_token": host.Token,
		"characters": []string{"Marie Curie", "Dracula", "Elvis"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("characters after kick: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if size, _ := decodeBody(t, resp)["pool_size"].(float64); size != 3 {
		t.Fatalf("expected pool of 3 after kick, got %v", size)
	}
}

func TestKickHostRejected(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	host := joinPlayer(t, ts, code, "Ada")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/kick", map[string]any{
		"player_id":  host.ID,
		"auth_token": host.Token,
		"target_id":  host.ID,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestRenamePlayer(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	ada := joinPlayer(t, ts, code, "Ada")
	joinPlayer(t, ts, code, "Bob")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/rename", map[string]any{
		"player_id":  ada.ID,
		"auth_token": ada.Token,
		"name":       "Bob",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("rename to taken name: expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/rename", map[string]any{
		"player_id":  ada.ID,
		"auth_token": ada.Token,
		"name":       "Grace",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rename: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	snap := decodeBody(t, resp)
	players, _ := snap["players"].([]any)
	found := false
	for _, raw := range players {
		if player, ok := raw.(map[string]any); ok && player["name"] == "Grace" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected renamed player in snapshot, got %v", players)
	}
}

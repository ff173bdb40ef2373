package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fishbowl/internal/config"
)

func TestCreateRoomDefaults(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	code, _ := body["room_code"].(string)
	if len(code) != 6 {
		t.Fatalf("room_code = %q, want 6 characters", code)
	}
	joinURL, _ := body["join_url"].(string)
	if !strings.HasSuffix(joinURL, "/join/"+code) {
		t.Fatalf("join_url = %q, want suffix /join/%s", joinURL, code)
	}
}

func TestCreateRoomRejectsUnknownMode(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]string{"mode": "solo"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestCreateRoomCategoryNeedsDatabase(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]string{"category": "movies"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestHomePage(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestJoinViewPages(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	for _, path := range []string{"/join", "/join/ABC123"} {
		resp := doRequest(t, ts, http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: expected status %d, got %d", path, http.StatusOK, resp.StatusCode)
		}
	}
}

func TestRoomView(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	resp := doRequest(t, ts, http.MethodGet, "/rooms/"+code, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestPlayerView(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	player := joinPlayer(t, ts, code, "Ada")
	resp := doRequest(t, ts, http.MethodGet, "/play/"+code+"/"+itoa(player.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestGetRoomNotFound(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/ZZZZZZ", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestJoinValidation(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{"name": "  "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank name: expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	joinPlayer(t, ts, code, "Ada")
	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{"name": "Ada"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate name: expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestJoinRejectsBogusCode(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/NOPE11/join", map[string]string{"name": "Ada"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestStartRequiresHost(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	joinPlayer(t, ts, code, "Ada")
	bob := joinPlayer(t, ts, code, "Bob")

	resp := postAction(t, ts, code, "start", bob)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
}

func TestStartRejectsShortPool(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	ada := joinPlayer(t, ts, code, "Ada")
	joinPlayer(t, ts, code, "Bob")
	submitCharacters(t, ts, code, ada, []string{"Alpha", "Beta", "Gamma"})

	resp := postAction(t, ts, code, "start", ada)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
	}
}

func TestCharactersRejectWrongCount(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	ada := joinPlayer(t, ts, code, "Ada")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/characters", map[string]any{
		"player_id":  ada.ID,
		"auth_token": ada.Token,
		"characters": []string{"Only One"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestCharactersRequireValidToken(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	ada := joinPlayer(t, ts, code, "Ada")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/characters", map[string]any{
		"player_id":  ada.ID,
		"auth_token": "wrong-token",
		"characters": []string{"Alpha", "Beta", "Gamma"},
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
}

func TestCategoriesWithoutDatabase(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/api/categories", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if categories, ok := body["categories"].([]any); !ok || len(categories) != 0 {
		t.Fatalf("categories = %#v, want empty list", body["categories"])
	}
}

func TestRoomQR(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)
	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/"+code+"/qr", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("Content-Type = %q, want image/png", ct)
	}
}

func TestAdminRequiresToken(t *testing.T) {
	cfg := config.Default()
	cfg.AdminToken = "sekrit"
	srv := New(nil, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/admin/", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, "/admin/?token=sekrit", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("with token: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestAdminDisabledWithoutConfiguredToken(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/admin/?token=anything", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestAdminExpireRoom(t *testing.T) {
	cfg := config.Default()
	cfg.AdminToken = "sekrit"
	srv := New(nil, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code := createRoom(t, ts, nil)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/admin/api/rooms/"+code+"/expire", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer sekrit")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	check := doRequest(t, ts, http.MethodGet, "/api/rooms/"+code, nil)
	if check.StatusCode != http.StatusNotFound {
		t.Fatalf("expired room still reachable, status %d", check.StatusCode)
	}
}

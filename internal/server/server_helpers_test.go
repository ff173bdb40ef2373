package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

type testPlayer struct {
	ID    int
	Token string
	Name  string
}

func createRoom(t *testing.T, ts *httptest.Server, payload any) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	code, ok := body["room_code"].(string)
	if !ok || code == "" {
		t.Fatalf("expected room_code in response, got %#v", body)
	}
	return code
}

func joinPlayer(t *testing.T, ts *httptest.Server, code, name string) testPlayer {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{
		"name": name,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("join %s: expected status %d, got %d", name, http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return testPlayer{
		ID:    int(body["player_id"].(float64)),
		Token: body["auth_token"].(string),
		Name:  name,
	}
}

func submitCharacters(t *testing.T, ts *httptest.Server, code string, player testPlayer, characters []string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/characters", map[string]any{
		"player_id":  player.ID,
		"auth_token": player.Token,
		"characters": characters,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("characters for %s: expected status %d, got %d", player.Name, http.StatusOK, resp.StatusCode)
	}
}

func postAction(t *testing.T, ts *httptest.Server, code, action string, player testPlayer) *http.Response {
	t.Helper()
	return doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/"+action, map[string]any{
		"player_id":  player.ID,
		"auth_token": player.Token,
	})
}

func mustAction(t *testing.T, ts *httptest.Server, code, action string, player testPlayer) map[string]any {
	t.Helper()
	resp := postAction(t, ts, code, action, player)
	if resp.StatusCode != http.StatusOK {
		body := decodeBody(t, resp)
		t.Fatalf("%s by %s: expected status %d, got %d (%v)", action, player.Name, http.StatusOK, resp.StatusCode, body["error"])
	}
	return decodeBody(t, resp)
}

func fetchSnapshot(t *testing.T, ts *httptest.Server, code string, player testPlayer) map[string]any {
	t.Helper()
	path := "/api/rooms/" + code
	if player.ID > 0 {
		path += "?player_id=" + itoa(player.ID) + "&auth_token=" + player.Token
	}
	resp := doRequest(t, ts, http.MethodGet, path, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

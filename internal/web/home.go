package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(flash, name, lastRoom string, rooms []RoomSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Fishbowl</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Fishbowl</span>
        <h1>Describe it. One word it. Mime it.</h1>
        <p>Three rounds, one shrinking bowl of names. Host a room or join with a code.</p>
      </header>
`)
		if flash != "" {
			_, _ = io.WriteString(w, `      <div class="flash">`+esc(flash)+`</div>
`)
		}
		if lastRoom != "" {
			_, _ = io.WriteString(w, `      <section class="panel">
        <p>You were last seated in room <strong>`+esc(lastRoom)+`</strong>.</p>
        <a class="secondary" href="/rooms/`+esc(lastRoom)+`">Back to the room</a>
      </section>
`)
		}
		_, _ = io.WriteString(w, `      <section class="panel">
        <div>
          <h2>Create a room</h2>
          <p>Pick a mode, share the code, and wait for your players.</p>
        </div>
        <form id="createForm" class="create-form">
          <select name="mode">
            <option value="teams">Two teams</option>
            <option value="pairs">Pairs</option>
          </select>
          <input name="category" placeholder="Category (optional)" autocomplete="off"/>
          <button type="submit" class="primary">Create room</button>
        </form>
        <div id="createResult" class="result"></div>
      </section>

      <section class="panel">
        <div>
          <h2>Join a room</h2>
          <p>Enter the room code from the host and your display name.</p>
        </div>
        <form id="joinForm" class="join-form">
          <input name="code" placeholder="Room code" autocomplete="off" required/>
          <input name="name" placeholder="Display name" autocomplete="name" value="`+esc(name)+`" required/>
          <button type="submit" class="secondary">Join room</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Open rooms</h2>
        <ul id="roomList" class="room-list">
`)
		for _, room := range rooms {
			_, _ = io.WriteString(w, `          <li><a href="/join/`+esc(room.RoomCode)+`">`+esc(room.RoomCode)+`</a> <span>`+esc(room.Status)+`</span> <span>`+itoa(room.Players)+` players</span></li>
`)
		}
		_, _ = io.WriteString(w, `        </ul>
      </section>
    </main>

    <script>
      const createForm = document.getElementById("createForm");
      const createResult = document.getElementById("createResult");
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");
      const roomList = document.getElementById("roomList");

      createForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        createResult.textContent = "Creating room...";
        const body = {
          mode: createForm.elements.mode.value,
          category: createForm.elements.category.value.trim()
        };
        const res = await fetch("/api/rooms", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(body)
        });
        const data = await res.json();
        if (!res.ok) {
          createResult.textContent = data.error || "Failed to create room.";
          return;
        }
        createResult.innerHTML = "Room created: <a href=\"/join/" + data.room_code + "\">" + data.room_code + "</a>";
      });

      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        joinResult.textContent = "Joining room...";
        const code = joinForm.elements.code.value.trim().toUpperCase();
        const name = joinForm.elements.name.value.trim();
        const res = await fetch("/api/rooms/" + encodeURIComponent(code) + "/join", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ name })
        });
        const data = await res.json();
        if (!res.ok) {
          joinResult.textContent = data.error || "Failed to join room.";
          return;
        }
        sessionStorage.setItem("fb_token_" + data.room_code, data.auth_token);
        sessionStorage.setItem("fb_player_" + data.room_code, data.player_id);
        window.location = "/play/" + data.room_code + "/" + data.player_id;
      });

      const wsProto = location.protocol === "https:" ? "wss" : "ws";
      const homeWS = new WebSocket(wsProto + "://" + location.host + "/ws/home");
      homeWS.addEventListener("message", (event) => {
        const data = JSON.parse(event.data);
        if (!data.rooms) return;
        roomList.innerHTML = data.rooms.map((room) =>
          "<li><a href=\"/join/" + room.room_code + "\">" + room.room_code + "</a> <span>" +
          room.status + "</span> <span>" + room.players + " players</span></li>"
        ).join("");
      });
    </script>
  </body>
</html>
`)
		return nil
	})
}

package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// RoomView is the shared screen: scoreboard, timer and turn state. It
// never shows the current character.
func RoomView(code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Room `+esc(code)+` · Fishbowl</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell board" data-room="`+esc(code)+`">
      <header class="hero">
        <span class="tag">Room `+esc(code)+`</span>
        <h1 id="roundTitle">Waiting for players</h1>
        <p id="turnLine"></p>
      </header>

      <section class="panel">
        <div id="timer" class="timer">--</div>
        <div id="teamScores" class="scores"></div>
      </section>

      <section class="panel">
        <h2>Players</h2>
        <ul id="playerList" class="player-list"></ul>
      </section>

      <section id="finale" class="panel hidden">
        <h2>Final standings</h2>
        <div id="finaleBody"></div>
      </section>
    </main>

    <script>
      const roomCode = document.querySelector("main").dataset.room;
      const roundTitle = document.getElementById("roundTitle");
      const turnLine = document.getElementById("turnLine");
      const timerEl = document.getElementById("timer");
      const teamScores = document.getElementById("teamScores");
      const playerList = document.getElementById("playerList");
      const finale = document.getElementById("finale");
      const finaleBody = document.getElementById("finaleBody");

      const roundLabels = { "describe": "Describe it", "one-word": "One word only", "mime": "Mime it" };

      function render(snap) {
        if (snap.status === "waiting") {
          roundTitle.textContent = "Waiting for players";
          turnLine.textContent = snap.players.length + " seated";
        } else if (snap.status === "playing") {
          roundTitle.textContent = "Round " + snap.current_round + ": " + (roundLabels[snap.round_name] || snap.round_name);
          if (snap.showing_round_intro) {
            turnLine.textContent = "Get ready...";
          } else if (snap.waiting_for_player && snap.current_player) {
            turnLine.textContent = snap.current_player.name + " is up next";
          } else if (snap.current_player) {
            turnLine.textContent = snap.current_player.name + " is acting for team " + snap.current_team;
          }
        } else {
          roundTitle.textContent = "Game over";
          turnLine.textContent = "";
          finale.classList.remove("hidden");
          let html = snap.winning_team > 0
            ? "<p>Team " + snap.winning_team + " wins!</p>"
            : "<p>It's a tie!</p>";
          if (snap.mvp) html += "<p>MVP: " + snap.mvp.name + "</p>";
          finaleBody.innerHTML = html;
        }

        timerEl.textContent = snap.timer.paused ? "paused" : snap.timer.time_left + "s";
        teamScores.innerHTML = snap.team_scores.map((ts) =>
          "<div class=\"score\"><span>Team " + ts.team + "</span><strong>" + ts.score + "</strong></div>"
        ).join("");
        playerList.innerHTML = snap.players.map((p) =>
          "<li>" + p.name + (p.team ? " (team " + p.team + ")" : "") +
          (p.is_host ? " ★" : "") + ": " + p.score + "</li>"
        ).join("");
      }

      async function load() {
        const res = await fetch("/api/rooms/" + roomCode);
        if (res.ok) render(await res.json());
      }

      const wsProto = location.protocol === "https:" ? "wss" : "ws";
      const ws = new WebSocket(wsProto + "://" + location.host + "/ws/rooms/" + roomCode);
      ws.addEventListener("message", (event) => render(JSON.parse(event.data)));
      ws.addEventListener("close", () => setTimeout(load, 2000));
      load();
    </script>
  </body>
</html>
`)
		return nil
	})
}

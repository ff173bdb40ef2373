package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PlayerView is the phone-facing page: submit characters in the lobby,
// then act on hits, fails and handoffs. The countdown runs client-side
// and reports expiry to the server.
func PlayerView(code string, playerID int, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`+esc(name)+` · Fishbowl</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell narrow" data-room="`+esc(code)+`" data-player="`+itoa(playerID)+`">
      <header class="hero">
        <span class="tag">Room `+esc(code)+`</span>
        <h1>`+esc(name)+`</h1>
        <p id="statusLine"></p>
      </header>

      <section id="lobbyPanel" class="panel hidden">
        <h2>Your characters</h2>
        <p id="lobbyHint"></p>
        <form id="charactersForm" class="characters-form"></form>
        <button id="submitCharacters" class="primary">Submit characters</button>
        <div id="rosterList" class="roster"></div>
        <button id="startGame" class="secondary hidden">Start game</button>
        <button id="lockBtn" class="secondary hidden"></button>
        <div id="lobbyResult" class="result"></div>
      </section>

      <section id="introPanel" class="panel hidden">
        <h2 id="introTitle"></h2>
        <p id="introRules"></p>
        <button id="introSeen" class="primary">Got it</button>
      </section>

      <section id="handoffPanel" class="panel hidden">
        <h2 id="handoffTitle"></h2>
        <button id="readyBtn" class="primary hidden">I'm ready</button>
      </section>

      <section id="turnPanel" class="panel hidden">
        <div id="turnTimer" class="timer"></div>
        <div id="characterCard" class="card hidden"></div>
        <div id="turnButtons" class="hidden">
          <button id="hitBtn" class="primary">Got it!</button>
          <button id="failBtn" class="danger">Pass</button>
        </div>
        <p id="turnHint"></p>
      </section>

      <section id="overPanel" class="panel hidden">
        <h2>Game over</h2>
        <div id="overBody"></div>
        <a class="secondary" href="/">Back home</a>
      </section>
    </main>

    <script>
      const main = document.querySelector("main");
      const roomCode = main.dataset.room;
      const playerID = parseInt(main.dataset.player, 10);
      const token = sessionStorage.getItem("fb_token_" + roomCode) || "";

      const statusLine = document.getElementById("statusLine");
      const panels = {
        lobby: document.getElementById("lobbyPanel"),
        intro: document.getElementById("introPanel"),
        handoff: document.getElementById("handoffPanel"),
        turn: document.getElementById("turnPanel"),
        over: document.getElementById("overPanel")
      };

      const roundRules = {
        "describe": "Say anything except the name itself.",
        "one-word": "One single word. Choose it well.",
        "mime": "No words, no sounds. Act it out."
      };

      let latest = null;
      let countdown = null;
      let submitted = false;

      function show(name) {
        Object.entries(panels).forEach(([key, el]) => el.classList.toggle("hidden", key !== name));
      }

      function post(action, extra) {
        return fetch("/api/rooms/" + roomCode + "/" + action, {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(Object.assign({ player_id: playerID, auth_token: token }, extra || {}))
        });
      }

      function stopCountdown() {
        if (countdown) { clearInterval(countdown); countdown = null; }
      }

      function startCountdown(seconds) {
        stopCountdown();
        let left = seconds;
        const timerEl = document.getElementById("turnTimer");
        timerEl.textContent = left + "s";
        countdown = setInterval(async () => {
          left -= 1;
          timerEl.textContent = Math.max(left, 0) + "s";
          if (left <= 0) {
            stopCountdown();
            await post("timeup");
          }
        }, 1000);
      }

      function buildLobby(snap) {
        const form = document.getElementById("charactersForm");
        const hint = document.getElementById("lobbyHint");
        const startBtn = document.getElementById("startGame");
        const isHost = snap.players.some((p) => p.id === playerID && p.is_host);
        startBtn.classList.toggle("hidden", !isHost);
        const lockBtn = document.getElementById("lockBtn");
        lockBtn.classList.toggle("hidden", !isHost);
        lockBtn.textContent = snap.locked ? "Unlock lobby" : "Lock lobby";
        const roster = document.getElementById("rosterList");
        roster.innerHTML = snap.players.map((p) => {
          const kick = isHost && !p.is_host
            ? " <button class=\"danger small\" data-kick=\"" + p.id + "\">Kick</button>"
            : "";
          return "<div class=\"roster-row\">" + p.name + (p.is_host ? " (host)" : "") + kick + "</div>";
        }).join("");
        if (snap.category) {
          hint.textContent = "This room plays the \"" + snap.category + "\" category. No submissions needed.";
          form.innerHTML = "";
          document.getElementById("submitCharacters").classList.add("hidden");
          return;
        }
        if (submitted) {
          hint.textContent = "Characters in. Waiting for the rest of the room.";
          form.innerHTML = "";
          document.getElementById("submitCharacters").classList.add("hidden");
          return;
        }
        hint.textContent = "Write down names the others will have to guess.";
        if (!form.children.length) {
          let html = "";
          for (let i = 0; i < 3; i++) {
            html += "<input name=\"character\" placeholder=\"Character " + (i + 1) + "\" autocomplete=\"off\" required/>";
          }
          form.innerHTML = html;
        }
      }

      function render(snap) {
        latest = snap;
        if (snap.status === "waiting") {
          statusLine.textContent = snap.players.length + " players seated";
          buildLobby(snap);
          show("lobby");
          return;
        }
        if (snap.status === "finished") {
          stopCountdown();
          let html = snap.winning_team > 0
            ? "<p>Team " + snap.winning_team + " wins!</p>"
            : "<p>It's a tie!</p>";
          if (snap.mvp) html += "<p>MVP: " + snap.mvp.name + "</p>";
          document.getElementById("overBody").innerHTML = html;
          show("over");
          return;
        }

        const mine = snap.current_player && snap.current_player.id === playerID;
        statusLine.textContent = "Round " + snap.current_round + " · Team " + snap.current_team + " acting";

        if (snap.showing_round_intro) {
          stopCountdown();
          document.getElementById("introTitle").textContent = "Round " + snap.current_round + ": " + snap.round_name;
          document.getElementById("introRules").textContent = roundRules[snap.round_name] || "";
          show("intro");
          return;
        }
        if (snap.waiting_for_player) {
          stopCountdown();
          const up = snap.current_player ? snap.current_player.name : "someone";
          document.getElementById("handoffTitle").textContent = mine ? "You're up!" : up + " is up next";
          document.getElementById("readyBtn").classList.toggle("hidden", !mine);
          show("handoff");
          return;
        }

        const card = document.getElementById("characterCard");
        const buttons = document.getElementById("turnButtons");
        const hint = document.getElementById("turnHint");
        if (mine && snap.current_character) {
          card.textContent = snap.current_character;
          card.classList.remove("hidden");
          buttons.classList.remove("hidden");
          hint.textContent = snap.characters_left + " left in the bowl";
        } else {
          card.classList.add("hidden");
          buttons.classList.add("hidden");
          hint.textContent = mine ? "" : "Guess along with your team!";
        }
        if (!countdown && !snap.timer.paused) startCountdown(snap.timer.time_left);
        show("turn");
      }

      document.getElementById("submitCharacters").addEventListener("click", async () => {
        const inputs = document.querySelectorAll("#charactersForm input");
        const characters = Array.from(inputs).map((el) => el.value.trim()).filter(Boolean);
        const res = await post("characters", { characters });
        const data = await res.json();
        const result = document.getElementById("lobbyResult");
        if (!res.ok) { result.textContent = data.error || "Submission failed."; return; }
        submitted = true;
        result.textContent = "Characters submitted.";
        if (latest) buildLobby(latest);
      });

      document.getElementById("startGame").addEventListener("click", async () => {
        const res = await post("start");
        if (!res.ok) {
          const data = await res.json();
          document.getElementById("lobbyResult").textContent = data.error || "Cannot start yet.";
        }
      });

      document.getElementById("lockBtn").addEventListener("click", async () => {
        if (!latest) return;
        const res = await post("lock", { locked: !latest.locked });
        if (!res.ok) {
          const data = await res.json();
          document.getElementById("lobbyResult").textContent = data.error || "Could not update the lobby.";
        }
      });

      document.getElementById("rosterList").addEventListener("click", async (event) => {
        const target = event.target.closest("[data-kick]");
        if (!target) return;
        const res = await post("kick", { target_id: parseInt(target.dataset.kick, 10) });
        if (!res.ok) {
          const data = await res.json();
          document.getElementById("lobbyResult").textContent = data.error || "Could not kick that player.";
        }
      });

      document.getElementById("introSeen").addEventListener("click", () => post("intro-seen"));
      document.getElementById("readyBtn").addEventListener("click", () => post("ready"));
      document.getElementById("hitBtn").addEventListener("click", async () => {
        const res = await post("hit");
        if (res.ok) render(await res.json());
      });
      document.getElementById("failBtn").addEventListener("click", async () => {
        const res = await post("fail");
        if (res.ok) render(await res.json());
      });

      async function load() {
        const res = await fetch("/api/rooms/" + roomCode + "?player_id=" + playerID + "&auth_token=" + encodeURIComponent(token));
        if (res.ok) render(await res.json());
      }

      const wsProto = location.protocol === "https:" ? "wss" : "ws";
      const ws = new WebSocket(wsProto + "://" + location.host + "/ws/rooms/" + roomCode +
        "?player=" + playerID + "&token=" + encodeURIComponent(token));
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

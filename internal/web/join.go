package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func JoinView(code, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Join room · Fishbowl</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell narrow">
      <header class="hero">
        <span class="tag">Fishbowl</span>
        <h1>Join a room</h1>
      </header>

      <section class="panel">
        <form id="joinForm" class="join-form">
          <input name="code" placeholder="Room code" autocomplete="off" value="`+esc(code)+`" required/>
          <input name="name" placeholder="Display name" autocomplete="name" value="`+esc(name)+`" required/>
          <button type="submit" class="primary">Join room</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>
`)
		if code != "" {
			_, _ = io.WriteString(w, `      <section class="panel">
        <h2>Share this room</h2>
        <img class="qr" src="/api/rooms/`+esc(code)+`/qr" alt="QR code for room `+esc(code)+`"/>
      </section>
`)
		}
		_, _ = io.WriteString(w, `    </main>

    <script>
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");

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
    </script>
  </body>
</html>
`)
		return nil
	})
}

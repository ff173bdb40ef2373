package web

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

func AdminDashboard(data AdminDashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Admin · Fishbowl</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell admin">
      <header class="hero">
        <span class="tag">Fishbowl admin</span>
        <h1>Rooms</h1>
      </header>
`)
		if data.Flash != "" {
			_, _ = io.WriteString(w, `      <div class="flash">`+esc(data.Flash)+`</div>
`)
		}
		_, _ = io.WriteString(w, `      <section class="panel">
        <table class="admin-table">
          <thead>
            <tr><th>Room</th><th>Status</th><th>Mode</th><th>Players</th><th>Round</th><th>Where</th></tr>
          </thead>
          <tbody>
`)
		for _, room := range data.Rooms {
			where := "database"
			if room.Live {
				where = "live"
			}
			_, _ = io.WriteString(w, `            <tr>
              <td><a href="/admin/rooms/`+esc(room.RoomCode)+`">`+esc(room.RoomCode)+`</a></td>
              <td>`+esc(room.Status)+`</td>
              <td>`+esc(room.Mode)+`</td>
              <td>`+itoa(room.Players)+`</td>
              <td>`+itoa(room.Round)+`</td>
              <td>`+where+`</td>
            </tr>
`)
		}
		_, _ = io.WriteString(w, `          </tbody>
        </table>
      </section>
    </main>
  </body>
</html>
`)
		return nil
	})
}

func AdminRoom(data AdminRoomData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		snapshot, err := json.MarshalIndent(data.Snapshot, "", "  ")
		if err != nil {
			snapshot = []byte("{}")
		}
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Room `+esc(data.RoomCode)+` · Admin · Fishbowl</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell admin">
      <header class="hero">
        <span class="tag">Fishbowl admin</span>
        <h1>Room `+esc(data.RoomCode)+`</h1>
        <p><a href="/admin/">Back to rooms</a></p>
      </header>
`)
		if data.Flash != "" {
			_, _ = io.WriteString(w, `      <div class="flash">`+esc(data.Flash)+`</div>
`)
		}
		_, _ = io.WriteString(w, `      <section class="panel">
        <h2>State</h2>
        <pre class="snapshot">`+esc(string(snapshot))+`</pre>
      </section>
      <section class="panel">
        <h2>Events</h2>
        <div id="events"></div>
        <div id="eventNav"></div>
      </section>
    </main>

    <script>
      const roomCode = "`+esc(data.RoomCode)+`";
      const eventsEl = document.getElementById("events");
      const navEl = document.getElementById("eventNav");

      async function loadEvents(page) {
        const res = await fetch("/admin/api/rooms/" + roomCode + "/events?page=" + page, {
          headers: { "Authorization": "Bearer " + (sessionStorage.getItem("fb_admin_token") || "") }
        });
        if (!res.ok) { eventsEl.textContent = "Failed to load events."; return; }
        const data = await res.json();
        eventsEl.innerHTML = data.events.map((ev) =>
          "<div class=\"event\"><strong>" + ev.type + "</strong> " +
          JSON.stringify(ev.payload) + " <em>" + ev.created_at + "</em></div>"
        ).join("");
        let nav = "";
        if (data.pagination.has_prev) nav += "<button onclick=\"loadEvents(" + data.pagination.prev_page + ")\">Prev</button>";
        nav += " page " + data.pagination.page + " / " + data.pagination.total_pages + " ";
        if (data.pagination.has_next) nav += "<button onclick=\"loadEvents(" + data.pagination.next_page + ")\">Next</button>";
        navEl.innerHTML = nav;
      }
      loadEvents(1);
    </script>
  </body>
</html>
`)
		return nil
	})
}

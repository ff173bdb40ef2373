package server

import (
	"net/http"
	"strconv"

	"github.com/skip2/go-qrcode"
)

// handleRoomQR serves a PNG QR code pointing at the room's join page.
func (s *Server) handleRoomQR(w http.ResponseWriter, r *http.Request, code string) {
	if _, ok := s.store.GetRoom(code); !ok {
		http.NotFound(w, r)
		return
	}
	const qrSize = 320
	png, err := qrcode.Encode(s.joinURL(r, code), qrcode.Medium, qrSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "qr generation failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	_, _ = w.Write(png)
}

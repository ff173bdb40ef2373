package server

import (
	"log"
	"net/http"
	"strings"

	"fishbowl/internal/db"
	"fishbowl/internal/engine"
	"fishbowl/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

// adminRouter mounts the operator surface under /admin/: an HTML
// dashboard plus a small JSON API for room history and recovery.
// Everything behind it requires the configured admin token.
func (s *Server) adminRouter() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	admin := router.Group("/admin", s.requireAdmin)
	admin.GET("/", s.handleAdminDashboard)
	admin.GET("/rooms/:code", s.handleAdminRoomView)
	admin.GET("/api/rooms", s.handleAdminListRooms)
	admin.GET("/api/rooms/:code/events", s.handleAdminRoomEvents)
	admin.POST("/api/rooms/:code/restore", s.handleAdminRestoreRoom)
	admin.POST("/api/rooms/:code/expire", s.handleAdminExpireRoom)
	return router
}

func (s *Server) requireAdmin(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if token := strings.TrimSpace(c.Query("token")); token != "" {
			header = "Bearer " + token
		}
	}
	if !s.adminAuthorized(header) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
		return
	}
	c.Next()
}

func (s *Server) handleAdminDashboard(c *gin.Context) {
	flash := ""
	if s.sessions != nil {
		flash = s.sessions.PopFlash(c.Writer, c.Request)
	}
	data := web.AdminDashboardData{
		Flash: flash,
		Rooms: s.adminRoomRows(),
	}
	templ.Handler(web.AdminDashboard(data)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) adminRoomRows() []web.AdminRoomRow {
	rows := make([]web.AdminRoomRow, 0)
	for _, summary := range s.store.ListRoomSummaries() {
		rows = append(rows, web.AdminRoomRow{
			RoomCode: summary.RoomCode,
			Status:   string(summary.Status),
			Mode:     string(summary.Mode),
			Players:  summary.Players,
			Round:    summary.Round,
			Live:     true,
		})
	}
	if s.db == nil {
		return rows
	}
	live := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		live[row.RoomCode] = struct{}{}
	}
	var records []db.Room
	if err := s.db.Order("updated_at desc").Limit(100).Find(&records).Error; err != nil {
		return rows
	}
	for _, record := range records {
		if _, ok := live[record.RoomCode]; ok {
			continue
		}
		rows = append(rows, web.AdminRoomRow{
			RoomCode: record.RoomCode,
			Status:   record.Status,
			Mode:     record.Mode,
			Live:     false,
		})
	}
	return rows
}

func (s *Server) handleAdminRoomView(c *gin.Context) {
	var uri adminRoomURI
	if !bindURI(c, &uri) {
		return
	}
	code := normalizeRoomCode(uri.Code)
	room, ok := s.store.GetRoom(code)
	if !ok {
		log.Printf("admin view missing room=%s", code)
		c.Redirect(http.StatusFound, "/admin/")
		return
	}
	flash := ""
	if s.sessions != nil {
		flash = s.sessions.PopFlash(c.Writer, c.Request)
	}
	templ.Handler(web.AdminRoom(web.AdminRoomData{
		RoomCode: code,
		Flash:    flash,
		Snapshot: snapshotRoom(room),
	})).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleAdminListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": s.adminRoomRows()})
}

func (s *Server) handleAdminRoomEvents(c *gin.Context) {
	var uri adminRoomURI
	if !bindURI(c, &uri) {
		return
	}
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not configured"})
		return
	}
	var query paginationQuery
	if !bindQuery(c, &query) {
		return
	}
	page, perPage := query.normalized(25, 100)
	code := normalizeRoomCode(uri.Code)

	var record db.Room
	if err := s.db.Where("room_code = ?", code).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	var total int64
	if err := s.db.Model(&db.Event{}).Where("room_id = ?", record.ID).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count events"})
		return
	}
	pagination := buildPaginationData("/admin/api/rooms/"+code+"/events", page, perPage, total)

	var events []db.Event
	err := s.db.Where("room_id = ?", record.ID).
		Order("id desc").
		Offset((pagination.Page - 1) * pagination.PerPage).
		Limit(pagination.PerPage).
		Find(&events).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}

	items := make([]gin.H, 0, len(events))
	for _, event := range events {
		items = append(items, gin.H{
			"id":         event.ID,
			"type":       event.Type,
			"player_id":  event.PlayerID,
			"payload":    event.Payload,
			"created_at": event.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"room_code":  code,
		"events":     items,
		"pagination": pagination,
	})
}

func (s *Server) handleAdminRestoreRoom(c *gin.Context) {
	var uri adminRoomURI
	if !bindURI(c, &uri) {
		return
	}
	code := normalizeRoomCode(uri.Code)
	room, err := s.restoreRoomFromDB(code)
	if err != nil {
		c.JSON(statusForKind(engine.ErrKind(err)), gin.H{"error": err.Error()})
		return
	}
	log.Printf("room restored room=%s status=%s", code, room.Game.Status)
	c.JSON(http.StatusOK, snapshotRoom(room))
}

func (s *Server) handleAdminExpireRoom(c *gin.Context) {
	var uri adminRoomURI
	if !bindURI(c, &uri) {
		return
	}
	code := normalizeRoomCode(uri.Code)
	room, ok := s.store.RemoveRoom(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	_ = s.persistEvent(room, "room_expired", EventPayload{
		RoomCode: code,
		Reason:   "admin",
	})
	log.Printf("room expired room=%s reason=admin", code)
	s.broadcastHomeUpdate()
	c.JSON(http.StatusOK, gin.H{"room_code": code, "expired": true})
}

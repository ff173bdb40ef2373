package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type adminRoomURI struct {
	Code string `uri:"code" binding:"required,roomcode"`
}

func bindURI(c *gin.Context, req any) bool {
	if err := c.ShouldBindUri(req); err != nil {
		c.Status(http.StatusNotFound)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.Status(http.StatusBadRequest)
		return false
	}
	return true
}

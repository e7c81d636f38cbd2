package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suPer8Hu/animai/internal/common"
)

func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "AnimAI backend is alive")
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, "pong")
}

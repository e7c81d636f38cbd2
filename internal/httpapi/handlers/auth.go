package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/suPer8Hu/animai/internal/common"
)

type loginReq struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type loginResp struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// Login is passwordless: unknown emails are provisioned on the spot.
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, codeInvalidJSON, "invalid json")
		return
	}

	u, err := h.UsersSvc.Login(c.Request.Context(), req.Email, req.Nickname)
	if err != nil {
		log.Printf("[Handler] Login failed email=%q err=%v", req.Email, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResp{ID: u.ID, Email: u.Email, Nickname: u.Nickname})
}

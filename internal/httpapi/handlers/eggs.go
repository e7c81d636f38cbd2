package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/suPer8Hu/animai/internal/common"
	"github.com/suPer8Hu/animai/internal/egg"
)

type talkReq struct {
	Message string `json:"message"`
}

// TalkToEgg ignores the :eggId path segment; the user's current egg always answers.
func (h *Handler) TalkToEgg(c *gin.Context) {
	uid, ok := queryUserID(c)
	if !ok {
		return
	}

	var req talkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, codeInvalidJSON, "invalid json")
		return
	}

	res, err := h.EggSvc.TalkToEgg(c.Request.Context(), uid, req.Message)
	if err != nil {
		log.Printf("[Handler] TalkToEgg failed uid=%d err=%v", uid, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) HatchEgg(c *gin.Context) {
	uid, ok := queryUserID(c)
	if !ok {
		return
	}
	eggID, ok := pathID(c, "eggId")
	if !ok {
		return
	}

	pet, err := h.EggSvc.HatchEgg(c.Request.Context(), uid, eggID)
	if err != nil {
		log.Printf("[Handler] HatchEgg failed uid=%d egg_id=%d err=%v", uid, eggID, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, pet)
}

func (h *Handler) CurrentEgg(c *gin.Context) {
	uid, ok := queryUserID(c)
	if !ok {
		return
	}

	e, err := h.EggSvc.CurrentEgg(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) ListEggMessages(c *gin.Context) {
	uid, ok := queryUserID(c)
	if !ok {
		return
	}
	eggID, ok := pathID(c, "eggId")
	if !ok {
		return
	}

	logs, err := h.EggSvc.ListMessages(c.Request.Context(), uid, eggID)
	if err != nil {
		log.Printf("[Handler] ListEggMessages failed uid=%d egg_id=%d err=%v", uid, eggID, err)
		fail(c, err)
		return
	}
	if logs == nil {
		logs = []egg.ConversationLog{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": logs})
}

func (h *Handler) ListPets(c *gin.Context) {
	uid, ok := pathID(c, "id")
	if !ok {
		return
	}

	pets, err := h.EggSvc.ListPets(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	if pets == nil {
		pets = []egg.Pet{}
	}
	c.JSON(http.StatusOK, gin.H{"pets": pets})
}

// Package eggagent is a rule-based egg reply service. It speaks the same
// POST /agent/egg-reply contract as an external agent, so the backend can run
// end to end without one.
package eggagent

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/suPer8Hu/animai/internal/ai"
)

const (
	BaseGreeting = "I'm still an egg inside my shell 🥚\nTalking with you is deciding what I'll become!"
	DozingReply  = "The egg is dozing for a moment... zZ"
)

type replyRule struct {
	keywords []string
	reply    string
}

var rules = []replyRule{
	{[]string{"forest", "숲"}, "I can smell the forest... maybe I'll be born somewhere green 🌲"},
	{[]string{"sea", "ocean", "바다"}, "I hear cold waves... will I become something that loves the water? 🌊"},
	{[]string{"fire", "불"}, "I feel a warm heat... maybe I'll be a friend who plays with flames? 🔥"},
}

// Reply answers the most recent USER message in the conversation.
func Reply(messages []ai.Message) string {
	var last *ai.Message
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Speaker == ai.SpeakerUser {
			last = &messages[i]
			break
		}
	}
	if last == nil {
		return BaseGreeting
	}

	text := strings.ToLower(last.Message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.reply
			}
		}
	}
	return fmt.Sprintf("%s\n\nI'll remember what you just said: '%s'!", BaseGreeting, last.Message)
}

type replyReq struct {
	Messages []ai.Message `json:"messages"`
}

type replyResp struct {
	Reply string `json:"reply"`
}

// Register mounts POST /agent/egg-reply.
func Register(r gin.IRoutes) {
	r.POST("/agent/egg-reply", handleReply)
}

func handleReply(c *gin.Context) {
	var req replyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Warn("[EggAgent] bad request body")
		c.JSON(http.StatusBadRequest, replyResp{Reply: DozingReply})
		return
	}
	c.JSON(http.StatusOK, replyResp{Reply: Reply(req.Messages)})
}

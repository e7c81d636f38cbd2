package ai

import (
	"context"
	"errors"
	"fmt"
)

const (
	SpeakerUser = "USER"
	SpeakerEgg  = "EGG"
	SpeakerPet  = "PET"
)

// Message is one conversation entry as sent to a reply provider.
type Message struct {
	Speaker string `json:"speaker"`
	Message string `json:"message"`
}

// Provider generates the next reply for an ordered conversation history.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// ErrNoReply is returned when a provider answered but without reply text.
var ErrNoReply = errors.New("ai: empty reply")

// HTTPError is a non-2xx answer from a provider.
type HTTPError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// eggPersona is prepended as a system prompt for chat-completion style providers.
const eggPersona = "You are a small egg that has not hatched yet. You talk with the person who is " +
	"looking after you. Answer in one or two short, warm sentences, in the same language the person " +
	"uses. What they tell you shapes what kind of creature you will hatch into."

// chatRole maps a conversation speaker onto a chat-completion role.
func chatRole(speaker string) string {
	if speaker == SpeakerUser {
		return "user"
	}
	return "assistant"
}

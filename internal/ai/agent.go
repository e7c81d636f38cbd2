package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultAgentBaseURL = "http://localhost:4000"
	DefaultAgentTimeout = 10 * time.Second
)

// AgentProvider calls the external egg agent service.
type AgentProvider struct {
	BaseURL string
	Client  *http.Client
}

type agentReq struct {
	Messages []Message `json:"messages"`
}

type agentResp struct {
	Reply string `json:"reply"`
}

func NewAgentProvider(baseURL string, timeout time.Duration) *AgentProvider {
	if baseURL == "" {
		baseURL = DefaultAgentBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultAgentTimeout
	}
	return &AgentProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (p *AgentProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if p.Client == nil {
		return "", errors.New("agent: http client is nil")
	}
	if messages == nil {
		messages = []Message{}
	}

	b, err := json.Marshal(agentReq{Messages: messages})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/agent/egg-reply", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return "", &HTTPError{Provider: "agent", StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var decoded agentResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&decoded); err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrNoReply
		}
		return "", fmt.Errorf("agent: decode reply: %w", err)
	}
	if strings.TrimSpace(decoded.Reply) == "" {
		return "", ErrNoReply
	}
	return decoded.Reply, nil
}

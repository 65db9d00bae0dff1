package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/qe-first/qedriver/pkg/core"
)

const defaultBaseURL = "https://api.openai.com/v1"

const systemPrompt = `You are an Android UI automation assistant. You receive a compressed JSON
dump of the current screen ("e" is the element list, each entry has a stable
index "i", a type code "t" (B=button, T=text, I=input, L=list), a label "l",
"c":1 when clickable and a hint "h" for the afforded action; "m" groups
indices by semantic pattern) and a user goal.

Respond with ONLY valid JSON in this exact format:
{"action": "click|type|select|none", "element_index": <number>, "reason": "brief explanation", "confidence": 0.0-1.0}

Rules:
- Prefer clickable elements for click actions.
- Use the stable index "i" from the payload.
- If no element fits the goal, return {"action": "none"}.
- Keep reasons brief (max 10 words).`

// LLMDecider asks an OpenAI-compatible chat-completions endpoint to pick
// an element. Credentials and model come from the environment:
// OPENAI_API_KEY (required), OPENAI_MODEL, OPENAI_BASE_URL.
type LLMDecider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *logrus.Logger
}

// NewLLMDecider builds a decider from the environment.
func NewLLMDecider(logger *logrus.Logger) (*LLMDecider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o"
	}
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &LLMDecider{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  logger,
	}, nil
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// decision is the JSON contract the model must honor.
type decision struct {
	Action       string  `json:"action"`
	ElementIndex *int    `json:"element_index"`
	Reason       string  `json:"reason"`
	Confidence   float64 `json:"confidence"`
}

// Decide implements Decider.
func (d *LLMDecider) Decide(ctx context.Context, payload []byte, goal string) (int, error) {
	userPrompt := fmt.Sprintf("Current user goal: %s\n\nCurrent screen UI elements:\n%s\n\nWhich element should be acted on to advance the goal?", goal, payload)

	body, err := json.Marshal(chatRequest{
		Model: d.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0.1,
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return 0, fmt.Errorf("decision endpoint returned invalid JSON: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return 0, fmt.Errorf("decision endpoint error: %s", parsed.Error.Message)
		}
		return 0, fmt.Errorf("decision endpoint returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return 0, core.ErrNoSelection.WithMessage("decision function returned no choices")
	}

	content := parsed.Choices[0].Message.Content
	d.logger.WithField("model", d.model).Debugf("decision response: %s", content)

	var dec decision
	if err := json.Unmarshal([]byte(content), &dec); err != nil {
		return 0, core.ErrNoSelection.WithMessage("decision function returned unparseable output").WithCause(err)
	}
	if dec.Action == "none" || dec.ElementIndex == nil {
		return 0, core.ErrNoSelection.WithDetails(map[string]interface{}{"reason": dec.Reason})
	}

	d.logger.WithFields(logrus.Fields{
		"index":      *dec.ElementIndex,
		"action":     dec.Action,
		"confidence": dec.Confidence,
	}).Info("decision function chose an element")

	return *dec.ElementIndex, nil
}

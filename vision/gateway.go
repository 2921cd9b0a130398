package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

const systemPrompt = `You are analyzing PUBG Mobile match result screenshots. Extract the following information:
1. Placement (rank) - look for numbers like "#1", "#2", "Winner Winner Chicken Dinner", "1st Place", etc.
2. Kills count - look for kill statistics, eliminations, or kill count

Return ONLY a JSON object with this exact structure:
{"placement": <number>, "kills": <number>}

If you cannot find the information, use: {"placement": null, "kills": null}`

type GatewayAnalyzerConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	MaxPlacement int
	Timeout      time.Duration
}

// gatewayAnalyzer вызывает OpenAI-совместимый chat-completions шлюз
// с мультимодальной моделью (в проде — google/gemini-2.5-flash).
type gatewayAnalyzer struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	model        string
	maxPlacement int
}

func NewGatewayAnalyzer(cfg GatewayAnalyzerConfig) (Analyzer, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" || cfg.Model == "" {
		return nil, errors.New("invalid analyzer configuration: base url, api key and model are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &gatewayAnalyzer{
		client:       &http.Client{Timeout: timeout},
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		maxPlacement: cfg.MaxPlacement,
	}, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// jsonObjectPattern вырезает первый JSON-объект из ответа модели —
// вокруг него нередко оказывается поясняющий текст.
var jsonObjectPattern = regexp.MustCompile(`\{[^}]+\}`)

func (a *gatewayAnalyzer) Analyze(ctx context.Context, imageURL string) (Extraction, error) {
	payload := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: fmt.Sprintf("Analyze this PUBG Mobile match result screenshot and extract the placement (1-%d) and kills count.", a.maxPlacement)},
				{Type: "image_url", ImageURL: &imageRef{URL: imageURL}},
			}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Extraction{}, fmt.Errorf("failed to encode analyzer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Extraction{}, fmt.Errorf("failed to build analyzer request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return Extraction{}, fmt.Errorf("analyzer request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return Extraction{}, ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return Extraction{}, ErrPaymentRequired
	case resp.StatusCode != http.StatusOK:
		// Любой другой сбой шлюза равнозначен неудачному распознаванию.
		return Extraction{}, nil
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Extraction{}, nil
	}
	if len(decoded.Choices) == 0 {
		return Extraction{}, nil
	}

	return a.parseContent(decoded.Choices[0].Message.Content), nil
}

// parseContent достаёт {placement, kills} из текста модели. Значения вне
// допустимого диапазона обнуляются — повторную авторитетную проверку всё
// равно выполняет валидатор.
func (a *gatewayAnalyzer) parseContent(content string) Extraction {
	raw := content
	if match := jsonObjectPattern.FindString(content); match != "" {
		raw = match
	}

	var extraction Extraction
	if err := json.Unmarshal([]byte(raw), &extraction); err != nil {
		return Extraction{}
	}

	if extraction.Placement != nil && (*extraction.Placement < 1 || *extraction.Placement > a.maxPlacement) {
		extraction.Placement = nil
	}
	if extraction.Kills != nil && *extraction.Kills < 0 {
		extraction.Kills = nil
	}
	return extraction
}

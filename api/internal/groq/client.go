package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"design-mentor/api/internal/util"
)

const DefaultTextModel = "llama-3.3-70b-versatile"

// CandidateVisionModels — статический список vision-моделей в порядке
// предпочтения. Groq периодически снимает модели без предупреждения, поэтому
// имена перебираются, а не захардкожены поодиночке.
var CandidateVisionModels = []string{
	"llama-3.2-90b-vision-preview",
	"llama-3.2-11b-vision-preview",
	"meta-llama/llama-4-maverick-17b-128e-instruct",
	"meta-llama/llama-4-scout-17b-16e-instruct",
	"llama-3.2-vision-preview",
}

// Маркеры снятой модели в теле 400/404. Узкий триггер: всё прочее (ключ,
// квота) отдаётся как есть, чтобы не маскировать реальные проблемы.
var decommissionMarkers = []string{"decommissioned", "model_not_found", "does not exist"}

type Client struct {
	APIKey    string
	TextModel string
	BaseURL   string

	httpc   *http.Client // текстовая генерация
	visionc *http.Client // vision, укороченный таймаут

	candidates []string

	mu      sync.Mutex
	current string // последняя успешно ответившая vision-модель, "" пока не было
}

func New(apiKey, textModel string) *Client {
	if textModel == "" {
		textModel = DefaultTextModel
	}
	return &Client{
		APIKey:     apiKey,
		TextModel:  textModel,
		BaseURL:    "https://api.groq.com/openai/v1",
		httpc:      &http.Client{Timeout: 60 * time.Second},
		visionc:    &http.Client{Timeout: 30 * time.Second},
		candidates: CandidateVisionModels,
	}
}

func (c *Client) Configured() bool { return c.APIKey != "" }

// Text — текстовая генерация через chat completions, ответ строго JSON-объект.
func (c *Client) Text(ctx context.Context, system, user string) (string, error) {
	if c.APIKey == "" {
		return "", ErrNotConfigured
	}
	body := map[string]any{
		"model": c.TextModel,
		"messages": []any{
			map[string]any{"role": "system", "content": system},
			map[string]any{"role": "user", "content": user},
		},
		"max_tokens":      4096,
		"temperature":     0.3,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return "", &UpstreamError{StatusCode: resp.StatusCode, Model: c.TextModel, Body: strings.TrimSpace(string(x))}
	}
	return decodeContent(resp.Body)
}

// Vision — vision-вызов с фоллбэком по списку кандидатов.
//
// Порядок попыток: закешированная рабочая модель первой, затем остальные
// кандидаты в исходном порядке. 400/404 с маркером снятой модели — пробуем
// следующую; любая другая HTTP-ошибка — сразу наружу; транспортный сбой —
// возможно специфичен для модели, тоже пробуем следующую.
func (c *Client) Vision(ctx context.Context, system, user, imageB64 string) (string, error) {
	if c.APIKey == "" {
		return "", ErrNotConfigured
	}
	dataURL := util.EnsureDataURL(imageB64)

	var last error
	for _, model := range c.attemptOrder() {
		out, err := c.visionOnce(ctx, model, system, user, dataURL)
		if err == nil {
			c.mu.Lock()
			c.current = model
			c.mu.Unlock()
			log.Printf("groq vision: model %s ok", model)
			return out, nil
		}

		var unavailable *ModelUnavailableError
		if errors.As(err, &unavailable) {
			log.Printf("groq vision: model %s decommissioned/not found, trying next", model)
			last = err
			continue
		}
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			return "", err
		}
		// Контекст вызова кончился — дальше перебирать бессмысленно. Таймаут
		// одной попытки (visionc) сюда не попадает: он ошибка транспорта,
		// возможно зависла конкретная модель, пробуем следующую.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("groq vision: model %s: %v", model, err)
		last = err
	}
	return "", &AllModelsFailedError{Last: last}
}

// CurrentModel — закешированная рабочая vision-модель ("" если ещё нет).
func (c *Client) CurrentModel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Client) attemptOrder() []string {
	c.mu.Lock()
	cur := c.current
	c.mu.Unlock()

	order := make([]string, 0, len(c.candidates)+1)
	if cur != "" {
		order = append(order, cur)
	}
	for _, m := range c.candidates {
		if m != cur {
			order = append(order, m)
		}
	}
	return order
}

func (c *Client) visionOnce(ctx context.Context, model, system, user, dataURL string) (string, error) {
	body := map[string]any{
		"model": model,
		"messages": []any{
			map[string]any{"role": "system", "content": system},
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": user},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
				},
			},
		},
		"max_tokens":  1024,
		"temperature": 0.2,
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.visionc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		b := strings.TrimSpace(string(x))
		if isDecommissioned(resp.StatusCode, b) {
			return "", &ModelUnavailableError{Model: model, Body: b}
		}
		return "", &UpstreamError{StatusCode: resp.StatusCode, Model: model, Body: b}
	}
	return decodeContent(resp.Body)
}

func isDecommissioned(status int, body string) bool {
	if status != http.StatusBadRequest && status != http.StatusNotFound {
		return false
	}
	for _, m := range decommissionMarkers {
		if strings.Contains(body, m) {
			return true
		}
	}
	return false
}

func decodeContent(r io.Reader) (string, error) {
	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("groq: empty response")
	}
	return strings.TrimSpace(raw.Choices[0].Message.Content), nil
}

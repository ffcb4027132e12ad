package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ListModels возвращает id моделей, которые эндпоинт считает живыми.
// Используется утилитой check-models, сервер на это не завязан.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/models", nil)
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Model: "", Body: strings.TrimSpace(string(x))}
	}

	var out struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("groq models: %w", err)
	}
	ids := make([]string, 0, len(out.Data))
	for _, m := range out.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

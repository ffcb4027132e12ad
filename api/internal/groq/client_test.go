package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpstream скриптует ответы по имени модели и запоминает порядок попыток.
type fakeUpstream struct {
	mu       sync.Mutex
	attempts []string
	respond  map[string]func(w http.ResponseWriter)
	lastBody map[string]any
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{respond: make(map[string]func(w http.ResponseWriter))}
}

func (f *fakeUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		model, _ := body["model"].(string)

		f.mu.Lock()
		f.attempts = append(f.attempts, model)
		f.lastBody = body
		fn := f.respond[model]
		f.mu.Unlock()

		if fn == nil {
			http.Error(w, `{"error":{"message":"unexpected model"}}`, http.StatusTeapot)
			return
		}
		fn(w)
	}
}

func (f *fakeUpstream) attemptLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.attempts...)
}

func ok(content string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
	}
}

func decommissioned() func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"The model has been decommissioned","code":"model_decommissioned"}}`)
	}
}

func status(code int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(code)
		fmt.Fprint(w, body)
	}
}

func newTestClient(t *testing.T, f *fakeUpstream, candidates ...string) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	c := New("test-key", "")
	c.BaseURL = srv.URL
	c.candidates = candidates
	return c
}

func TestVisionFallbackCachesWorkingModel(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = decommissioned()
	f.respond["B"] = ok("looks good")
	c := newTestClient(t, f, "A", "B", "C")

	out, err := c.Vision(context.Background(), "sys", "user", "aW1n")
	require.NoError(t, err)
	assert.Equal(t, "looks good", out)
	assert.Equal(t, []string{"A", "B"}, f.attemptLog())
	assert.Equal(t, "B", c.CurrentModel())

	// Повторный вызов идёт сразу в закешированную модель.
	_, err = c.Vision(context.Background(), "sys", "user", "aW1n")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "B"}, f.attemptLog())
}

func TestVisionCachedModelDecommissionedMovesOn(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = decommissioned()
	f.respond["B"] = decommissioned()
	f.respond["C"] = ok("done")
	c := newTestClient(t, f, "A", "B", "C")
	c.current = "B"

	out, err := c.Vision(context.Background(), "sys", "user", "aW1n")
	require.NoError(t, err)
	assert.Equal(t, "done", out)

	log := f.attemptLog()
	require.NotEmpty(t, log)
	assert.Equal(t, "B", log[0], "cached model tried first")
	assert.Equal(t, "C", log[len(log)-1])
	assert.Equal(t, "C", c.CurrentModel())
}

func TestVisionAuthErrorStopsImmediately(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = status(http.StatusUnauthorized, `{"error":{"message":"invalid api key"}}`)
	f.respond["B"] = ok("never reached")
	c := newTestClient(t, f, "A", "B", "C")

	_, err := c.Vision(context.Background(), "sys", "user", "aW1n")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Equal(t, []string{"A"}, f.attemptLog())
	assert.Empty(t, c.CurrentModel())
}

func TestVisionNotFoundMarkerTriggersFallback(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = status(http.StatusNotFound, `{"error":{"message":"model_not_found","code":"model_not_found"}}`)
	f.respond["B"] = ok("fine")
	c := newTestClient(t, f, "A", "B")

	out, err := c.Vision(context.Background(), "sys", "user", "aW1n")
	require.NoError(t, err)
	assert.Equal(t, "fine", out)
}

func TestVision404WithoutMarkerIsFatal(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = status(http.StatusNotFound, `{"error":{"message":"no such route"}}`)
	f.respond["B"] = ok("never reached")
	c := newTestClient(t, f, "A", "B")

	_, err := c.Vision(context.Background(), "sys", "user", "aW1n")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, []string{"A"}, f.attemptLog())
}

func TestVisionAllModelsFailed(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = decommissioned()
	f.respond["B"] = decommissioned()
	c := newTestClient(t, f, "A", "B")

	_, err := c.Vision(context.Background(), "sys", "user", "aW1n")
	var all *AllModelsFailedError
	require.ErrorAs(t, err, &all)
	var unavailable *ModelUnavailableError
	require.ErrorAs(t, all.Last, &unavailable)
	assert.Equal(t, "B", unavailable.Model)
	assert.Empty(t, c.CurrentModel())
}

func TestVisionTransportErrorContinues(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = func(w http.ResponseWriter) { panic(http.ErrAbortHandler) }
	f.respond["B"] = ok("recovered")
	c := newTestClient(t, f, "A", "B")

	out, err := c.Vision(context.Background(), "sys", "user", "aW1n")
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, "B", c.CurrentModel())
}

func TestVisionPerAttemptTimeoutContinues(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = func(w http.ResponseWriter) {
		time.Sleep(300 * time.Millisecond)
		ok("too late")(w)
	}
	f.respond["B"] = ok("fast enough")
	c := newTestClient(t, f, "A", "B")
	c.visionc = &http.Client{Timeout: 100 * time.Millisecond}

	out, err := c.Vision(context.Background(), "sys", "user", "aW1n")
	require.NoError(t, err)
	assert.Equal(t, "fast enough", out)
	assert.Equal(t, []string{"A", "B"}, f.attemptLog())
	assert.Equal(t, "B", c.CurrentModel())
}

func TestVisionCallerContextDoneStops(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = func(w http.ResponseWriter) {
		time.Sleep(300 * time.Millisecond)
		ok("too late")(w)
	}
	f.respond["B"] = ok("never reached")
	c := newTestClient(t, f, "A", "B")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := c.Vision(ctx, "sys", "user", "aW1n")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{"A"}, f.attemptLog())
	assert.Empty(t, c.CurrentModel())
}

func TestVisionPrefixesBareBase64(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = ok("ok")
	c := newTestClient(t, f, "A")

	_, err := c.Vision(context.Background(), "sys", "user", "aW1nZGF0YQ==")
	require.NoError(t, err)

	msgs := f.lastBody["messages"].([]any)
	content := msgs[1].(map[string]any)["content"].([]any)
	img := content[1].(map[string]any)["image_url"].(map[string]any)["url"].(string)
	assert.Equal(t, "data:image/jpeg;base64,aW1nZGF0YQ==", img)
}

func TestVisionKeepsCallerDataURL(t *testing.T) {
	f := newFakeUpstream()
	f.respond["A"] = ok("ok")
	c := newTestClient(t, f, "A")

	_, err := c.Vision(context.Background(), "sys", "user", "data:image/png;base64,aW1n")
	require.NoError(t, err)

	msgs := f.lastBody["messages"].([]any)
	content := msgs[1].(map[string]any)["content"].([]any)
	img := content[1].(map[string]any)["image_url"].(map[string]any)["url"].(string)
	assert.Equal(t, "data:image/png;base64,aW1n", img)
}

func TestVisionWithoutKey(t *testing.T) {
	c := New("", "")
	_, err := c.Vision(context.Background(), "sys", "user", "aW1n")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTextSendsJSONModeAndExtractsContent(t *testing.T) {
	f := newFakeUpstream()
	f.respond[DefaultTextModel] = ok(`{"steps":[]}`)
	c := newTestClient(t, f)

	out, err := c.Text(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"steps":[]}`, out)

	rf := f.lastBody["response_format"].(map[string]any)
	assert.Equal(t, "json_object", rf["type"])
	assert.Equal(t, DefaultTextModel, f.lastBody["model"])
}

func TestTextUpstreamErrorTyped(t *testing.T) {
	f := newFakeUpstream()
	f.respond[DefaultTextModel] = status(http.StatusTooManyRequests, `{"error":{"message":"rate limit"}}`)
	c := newTestClient(t, f)

	_, err := c.Text(context.Background(), "sys", "user")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		fmt.Fprint(w, `{"data":[{"id":"llama-3.3-70b-versatile"},{"id":"meta-llama/llama-4-scout-17b-16e-instruct"}]}`)
	}))
	defer srv.Close()

	c := New("test-key", "")
	c.BaseURL = srv.URL

	ids, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama-3.3-70b-versatile", "meta-llama/llama-4-scout-17b-16e-instruct"}, ids)
}

package main

// Операторская утилита: смотрим, какие модели реально живы у провайдеров.
// Groq опрашиваем по /models, Gemini — через SDK, с пробной генерацией
// по списку кандидатов до первого успеха.

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"design-mentor/api/internal/config"
	"design-mentor/api/internal/groq"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

var geminiCandidates = []string{
	"gemini-2.0-flash-lite",
	"gemini-2.5-flash",
	"gemini-2.0-flash",
}

func main() {
	filter := flag.String("filter", "", "substring filter for groq model ids (e.g. \"vision\")")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()

	checkGroq(ctx, cfg, *filter)
	checkGemini(ctx, cfg)
}

func checkGroq(ctx context.Context, cfg *config.Config, filter string) {
	if cfg.GroqAPIKey == "" {
		log.Print("GROQ_API_KEY not set, skipping groq")
		return
	}
	c := groq.New(cfg.GroqAPIKey, cfg.GroqTextModel)
	ids, err := c.ListModels(ctx)
	if err != nil {
		log.Printf("groq list: %v", err)
		return
	}

	fmt.Println("=== Groq models ===")
	for _, id := range ids {
		if filter != "" && !strings.Contains(strings.ToLower(id), strings.ToLower(filter)) {
			continue
		}
		fmt.Println("  " + id)
	}
}

func checkGemini(ctx context.Context, cfg *config.Config) {
	if cfg.GeminiAPIKey == "" {
		log.Print("GEMINI_API_KEY not set, skipping gemini")
		return
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Printf("gemini client: %v", err)
		return
	}
	defer cl.Close()

	fmt.Println("=== Gemini models ===")
	var available []string
	it := cl.ListModels(ctx)
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("gemini list: %v", err)
			return
		}
		name := strings.TrimPrefix(m.Name, "models/")
		if !strings.Contains(strings.ToLower(name), "gemini") {
			continue
		}
		fmt.Println("  " + name)
		available = append(available, name)
	}

	fmt.Println("=== Probing candidates ===")
	for _, model := range geminiCandidates {
		if !candidateListed(model, available) {
			continue
		}
		fmt.Printf("  %s... ", model)
		resp, err := cl.GenerativeModel(model).GenerateContent(ctx, genai.Text("Say hi"))
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}
		fmt.Printf("OK: %s\n", firstText(resp))
		return // хватает первого живого
	}
	fmt.Fprintln(os.Stderr, "no candidate gemini model answered")
}

// candidateListed — кандидат есть в списке точно или как подстрока
// (провайдер любит суффиксы версий вроде -001).
func candidateListed(model string, available []string) bool {
	for _, name := range available {
		if name == model || strings.Contains(name, model) {
			return true
		}
	}
	return false
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return strings.TrimSpace(string(t))
			}
		}
	}
	return ""
}

package config

import "os"

type Config struct {
	Port string

	// Ключи не обязательны при старте: /api/learn/health должен уметь
	// ответить groq_configured=false вместо падения процесса.
	GroqAPIKey    string
	GroqTextModel string
	GeminiAPIKey  string
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GroqTextModel: getEnv("GROQ_TEXT_MODEL", "llama-3.3-70b-versatile"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
	}
}

package main

import (
	"log"
	"net/http"

	"design-mentor/api/internal/config"
	"design-mentor/api/internal/groq"
	"design-mentor/api/internal/handle"
	"design-mentor/api/internal/learn"
	"design-mentor/api/internal/store"
)

func main() {
	cfg := config.Load()

	gc := groq.New(cfg.GroqAPIKey, cfg.GroqTextModel)
	if !gc.Configured() {
		log.Print("GROQ_API_KEY not set: lesson generation and verification will answer with errors")
	}

	h := handle.New(
		store.NewTransferStore(),
		learn.NewPlanner(gc),
		learn.NewVerifier(gc),
		gc.Configured(),
		cfg.GeminiAPIKey != "",
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/figma/upload", h.Upload)
	mux.HandleFunc("/api/figma/retrieve/", h.Retrieve)
	mux.HandleFunc("/api/learn/generate-lesson-plan", h.GenerateLessonPlan)
	mux.HandleFunc("/api/learn/verify-progress", h.VerifyProgress)
	mux.HandleFunc("/api/learn/health", h.Health)

	addr := ":" + cfg.Port
	log.Printf("design-mentor listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

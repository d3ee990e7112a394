package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"docqa/internal/answer"
	"docqa/internal/chunker"
	"docqa/internal/config"
	"docqa/internal/embedding"
	"docqa/internal/prompt"
	"docqa/internal/service"
	"docqa/internal/summarizer"
	"docqa/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to YAML config file")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Println("Usage: docqa [--config=config.yaml] document.txt")
		os.Exit(1)
	}
	docPath := flag.Arg(0)

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "err", err)
	}

	ch, err := chunker.NewWindowChunker(cfg.Chunking.MaxLength, cfg.Chunking.Overlap)
	if err != nil {
		logger.Fatal("invalid chunking parameters", "err", err)
	}

	emb, err := embedding.NewOpenAI(embedding.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cfg.Embedder.Model,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Fatal("embedder init failed", "err", err)
	}

	ans, err := answer.NewOpenAI(answer.Config{
		BaseURL:   cfg.Answer.BaseURL,
		APIKeyEnv: cfg.Answer.APIKeyEnv,
		Model:     cfg.Answer.Model,
		Timeout:   time.Duration(cfg.Answer.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Fatal("answer service init failed", "err", err)
	}

	svc := service.New(ch, emb, ans, summarizer.NewFrequency(), service.Options{
		TopK:             cfg.Retrieval.TopK,
		MaxContextChars:  cfg.Retrieval.MaxContextChars,
		MaxTokens:        cfg.Answer.MaxTokens,
		Temperature:      cfg.Answer.Temperature,
		SystemPrompt:     prompt.DefaultSystemPrompt,
		SummarySentences: cfg.Summary.MaxSentences,
	}, logger)

	content, err := os.ReadFile(docPath)
	if err != nil {
		logger.Fatal("failed to read document", "path", docPath, "err", err)
	}

	sess, err := svc.LoadDocument(context.Background(), filepath.Base(docPath), string(content))
	if err != nil {
		logger.Fatal("document load failed", "err", err)
	}
	logger.Info("document loaded", "name", sess.Document.Name, "chunks", sess.ChunkCount())

	m := tui.New(svc, sess)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		logger.Fatal("tui failed", "err", err)
	}
}

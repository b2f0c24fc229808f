package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"docqa/internal/answerer"
	"docqa/internal/chunker"
	"docqa/internal/config"
	"docqa/internal/domain"
	"docqa/internal/embedding/tfidf"
	"docqa/internal/gemini"
	"docqa/internal/history"
	"docqa/internal/index"
	"docqa/internal/language"
	"docqa/internal/session"
	"docqa/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docqa/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: docqa [--config=config.yaml] file1.pdf [file2.txt file3.csv ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Paths.LogFile)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	gem, err := gemini.NewClient(ctx, gemini.Config{
		APIKeyEnv:     cfg.Embedder.Gemini.APIKeyEnv,
		EmbedModel:    cfg.Embedder.Gemini.EmbedModel,
		GenerateModel: cfg.Embedder.Gemini.GenerateModel,
		Temperature:   cfg.Embedder.Gemini.Temperature,
		Timeout:       time.Duration(cfg.Embedder.Gemini.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("gemini init failed: %v", err)
	}

	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "gemini", "":
		emb = gem
	case "tfidf":
		emb = tfidf.NewEmbedder()
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}
	emb = index.WrapCache(emb, cfg.Cache.QueryEmbeddings, time.Duration(cfg.Cache.TTLSecs)*time.Second)

	audit, err := history.OpenAudit(cfg.Paths.HistoryFile)
	if err != nil {
		log.Fatalf("failed to open interaction log: %v", err)
	}
	defer audit.Close()

	manager := session.NewManager(session.Config{
		Chunker:  chunker.New(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap),
		Embedder: emb,
		Answerer: answerer.New(gem, audit, logger),
		TempDir:  cfg.Paths.TempDir,
		TopK:     cfg.Retriever.TopK,
		Logger:   logger,
	})
	defer manager.Deactivate()

	if _, err := manager.Activate(ctx, inputs); err != nil {
		log.Fatalf("activation failed: %v", err)
	}

	// Pivot-only router: no translation or speech capabilities wired.
	router := language.NewRouter(language.RouterConfig{
		Pivot:  cfg.Language.Pivot,
		Logger: logger,
	})
	opts := language.Options{
		InputLang:  cfg.Language.Pivot,
		OutputLang: cfg.Language.Pivot,
	}

	m := tui.New(manager, router, history.NewLog(), opts)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

func newLogger(path string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}

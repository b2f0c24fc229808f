package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string        `yaml:"type"`
	Gemini *GeminiConfig `yaml:"gemini,omitempty"`
}

// GeminiConfig holds settings shared by the Gemini embedding and
// generation clients.
type GeminiConfig struct {
	APIKeyEnv     string  `yaml:"api_key_env"`
	EmbedModel    string  `yaml:"embed_model"`
	GenerateModel string  `yaml:"generate_model"`
	Temperature   float32 `yaml:"temperature"`
	TimeoutSecs   int     `yaml:"timeout_secs"`
}

// ChunkerConfig configures how the context is split into chunks.
type ChunkerConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	Overlap   int `yaml:"overlap"`
}

// RetrieverConfig configures retrieval depth.
type RetrieverConfig struct {
	TopK int `yaml:"top_k"`
}

// CacheConfig sizes the query-embedding LRU cache.
type CacheConfig struct {
	QueryEmbeddings int `yaml:"query_embeddings"`
	TTLSecs         int `yaml:"ttl_secs"`
}

// LanguageConfig configures the multilingual round trip. AutoDetect is
// a pointer so an absent key takes the default while an explicit false
// still disables detection.
type LanguageConfig struct {
	Pivot                string `yaml:"pivot"`
	AutoDetect           *bool  `yaml:"auto_detect"`
	Input                string `yaml:"input"`
	Output               string `yaml:"output"`
	TranslateTimeoutSecs int    `yaml:"translate_timeout_secs"`
}

// SpeechConfig configures answer synthesis. Enabled is a pointer for
// the same reason as LanguageConfig.AutoDetect.
type SpeechConfig struct {
	Enabled     *bool  `yaml:"enabled"`
	Slow        bool   `yaml:"slow"`
	AudioDir    string `yaml:"audio_dir"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// PathsConfig locates the working directories and the audit log.
type PathsConfig struct {
	TempDir     string `yaml:"temp_dir"`
	HistoryFile string `yaml:"history_file"`
	LogFile     string `yaml:"log_file"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Retriever RetrieverConfig `yaml:"retriever"`
	Cache     CacheConfig     `yaml:"cache"`
	Language  LanguageConfig  `yaml:"language"`
	Speech    SpeechConfig    `yaml:"speech"`
	Paths     PathsConfig     `yaml:"paths"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/docqa/config.yaml.
// If neither exists, it writes defaults to ~/.config/docqa/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docqa", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Embedder: EmbedderConfig{Type: "gemini"},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "gemini"
	}
	// Generation always goes through Gemini, so its block is filled in
	// even when a different embedder is selected.
	if cfg.Embedder.Gemini == nil {
		cfg.Embedder.Gemini = &GeminiConfig{}
	}
	if g := cfg.Embedder.Gemini; g != nil {
		if g.APIKeyEnv == "" {
			g.APIKeyEnv = "GEMINI_API_KEY"
		}
		if g.EmbedModel == "" {
			g.EmbedModel = "embedding-001"
		}
		if g.GenerateModel == "" {
			g.GenerateModel = "gemini-pro"
		}
		if g.Temperature == 0 {
			g.Temperature = 0.1
		}
		if g.TimeoutSecs == 0 {
			g.TimeoutSecs = 60
		}
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = 11000
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = 1000
	}
	if cfg.Retriever.TopK == 0 {
		cfg.Retriever.TopK = 5
	}
	if cfg.Cache.QueryEmbeddings == 0 {
		cfg.Cache.QueryEmbeddings = 256
	}
	if cfg.Cache.TTLSecs == 0 {
		cfg.Cache.TTLSecs = 600
	}
	if cfg.Language.Pivot == "" {
		cfg.Language.Pivot = "en"
	}
	if cfg.Language.AutoDetect == nil {
		cfg.Language.AutoDetect = boolPtr(true)
	}
	if cfg.Language.Input == "" {
		cfg.Language.Input = cfg.Language.Pivot
	}
	if cfg.Language.Output == "" {
		cfg.Language.Output = cfg.Language.Pivot
	}
	if cfg.Language.TranslateTimeoutSecs == 0 {
		cfg.Language.TranslateTimeoutSecs = 15
	}
	if cfg.Speech.Enabled == nil {
		cfg.Speech.Enabled = boolPtr(true)
	}
	if cfg.Speech.AudioDir == "" {
		cfg.Speech.AudioDir = "audio"
	}
	if cfg.Speech.TimeoutSecs == 0 {
		cfg.Speech.TimeoutSecs = 30
	}
	if cfg.Paths.TempDir == "" {
		cfg.Paths.TempDir = "temp"
	}
	if cfg.Paths.HistoryFile == "" {
		cfg.Paths.HistoryFile = "chat_history.txt"
	}
	if cfg.Paths.LogFile == "" {
		cfg.Paths.LogFile = "docqa.log"
	}
}

func boolPtr(v bool) *bool { return &v }

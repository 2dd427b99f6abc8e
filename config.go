package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogFile       string `yaml:"log"`
	DocRoot       string `yaml:"doc_root"`
	MergeEventsMs int    `yaml:"write_debounce_ms"`
	ChunkSize     int    `yaml:"chunk_size"`
	ChunkOverlap  int    `yaml:"chunk_overlap"`
	TopK          int    `yaml:"top_k"`
	ServerAddr    string `yaml:"server_addr"`
	MCPAddr       string `yaml:"mcp_addr"`

	VectorStore struct {
		Backend    string `yaml:"backend"`
		ChromaAddr string `yaml:"chroma_addr"`
		Collection string `yaml:"collection"`
	} `yaml:"vector_store"`

	EmbeddingDim int `yaml:"embedding_dim"`

	OpenAIEmbeddings *struct {
		Model  string `yaml:"model"`
		ApiKey string `yaml:"api_key"`
	} `yaml:"open_ai_embeddings"`
	GeminiEmbeddings *struct {
		Model  string `yaml:"model"`
		ApiKey string `yaml:"api_key"`
	} `yaml:"gemini_embeddings"`

	LLM struct {
		Provider string `yaml:"provider"`
		OpenAI   *struct {
			Model  string `yaml:"model"`
			ApiKey string `yaml:"api_key"`
		} `yaml:"open_ai"`
		Ollama *struct {
			Host  string `yaml:"host"`
			Model string `yaml:"model"`
		} `yaml:"ollama"`
	} `yaml:"llm"`
}

func readConfig(cfgPath string) (*Config, error) {
	cfgFile, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %w", err)
	}
	defer cfgFile.Close()

	cfg := &Config{}
	dec := yaml.NewDecoder(cfgFile)
	err = dec.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 700
	}
	if cfg.ChunkOverlap == 0 {
		cfg.ChunkOverlap = 80
	}
	if cfg.TopK == 0 {
		cfg.TopK = 4
	}
	if cfg.MergeEventsMs == 0 {
		cfg.MergeEventsMs = 500
	}
	if cfg.EmbeddingDim == 0 {
		cfg.EmbeddingDim = 384
	}
	if cfg.VectorStore.Backend == "" {
		cfg.VectorStore.Backend = "memory"
	}
	if cfg.VectorStore.Collection == "" {
		cfg.VectorStore.Collection = "policy_helper"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "stub"
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}
}

func validate(cfg *Config) error {
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return fmt.Errorf("chunk_overlap must be in [0, chunk_size): got size=%d overlap=%d",
			cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.DocRoot == "" {
		return fmt.Errorf("doc_root is required")
	}

	return nil
}

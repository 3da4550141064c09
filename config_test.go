package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "0.0.0.0", cfg.API.Host)
	assert.Equal(t, "8000", cfg.API.Port)
	assert.Equal(t, DefaultChatModel, cfg.Gemini.ChatModel)
	assert.Equal(t, DefaultEmbeddingModel, cfg.Gemini.EmbeddingModel)
	assert.Equal(t, DefaultTemperature, cfg.Gemini.Temperature)
	assert.Equal(t, DefaultMaxTokens, cfg.Gemini.MaxTokens)
	assert.Equal(t, CollectionName, cfg.Knowledge.Collection)
	assert.Equal(t, RAGTopK, cfg.Knowledge.TopK)
	assert.Equal(t, ChunkSize, cfg.Knowledge.ChunkSize)
	assert.Equal(t, ChunkOverlap, cfg.Knowledge.ChunkOverlap)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("GEMINI_TEMPERATURE", "0.2")
	t.Setenv("RAG_TOP_K", "8")
	t.Setenv("COLLECTION_NAME", "kb")

	cfg := LoadConfig()
	assert.Equal(t, "9000", cfg.API.Port)
	assert.Equal(t, 0.2, cfg.Gemini.Temperature)
	assert.Equal(t, 8, cfg.Knowledge.TopK)
	assert.Equal(t, "kb", cfg.Knowledge.Collection)
}

func TestLoadConfigMalformedNumbersFallBack(t *testing.T) {
	t.Setenv("GEMINI_MAX_TOKENS", "lots")
	t.Setenv("GEMINI_TEMPERATURE", "warm")

	cfg := LoadConfig()
	assert.Equal(t, DefaultMaxTokens, cfg.Gemini.MaxTokens)
	assert.Equal(t, DefaultTemperature, cfg.Gemini.Temperature)
}

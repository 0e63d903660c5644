package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-consult/config"
)

func TestCorpusHash(t *testing.T) {
	a := corpusHash([]string{"too tall", "love the green space"})
	b := corpusHash([]string{"too tall", "love the green space"})
	if a != b {
		t.Errorf("same corpus must hash the same, got %d and %d", a, b)
	}
	c := corpusHash([]string{"love the green space", "too tall"})
	if a == c {
		t.Errorf("reordered corpus must hash differently")
	}
	// the separator keeps item boundaries out of collision range
	if corpusHash([]string{"ab"}) == corpusHash([]string{"a", "b"}) {
		t.Errorf("item boundaries must affect the hash")
	}
	if corpusHash(nil) != 0 {
		t.Errorf("empty corpus must hash to zero")
	}
}

func TestNumberedCorpus(t *testing.T) {
	got := numberedCorpus([]string{"first", "second"})
	want := "1. first\n2. second\n"
	if got != want {
		t.Errorf("want %q got %q", want, got)
	}
	if numberedCorpus(nil) != "" {
		t.Errorf("empty corpus must render empty")
	}
}

func llmStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		body, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{
				{"message": chatMessage{Role: "assistant", Content: content}},
			},
		})
		_, _ = w.Write(body)
	}))
}

func TestAnalyzeSentiment(t *testing.T) {
	srv := llmStub(t, `["positive", "POSITIVE", "unsure", "negative"]`)
	defer srv.Close()
	config.ExtConfig.LLM = config.LLMConfig{Endpoint: srv.URL, APIKey: "test-key", Model: "test"}
	defer func() { config.ExtConfig.LLM = config.LLMConfig{} }()

	got, err := analyzeSentiment(context.Background(), []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"positive":2,"neutral":1,"negative":1}`, got)
}

func TestAnalyzeThemes(t *testing.T) {
	srv := llmStub(t, `[
		{"theme":"parking","mentions":5},
		{"theme":"tree loss","mentions":9},
		{"theme":"","mentions":3},
		{"theme":"noise","mentions":0}
	]`)
	defer srv.Close()
	config.ExtConfig.LLM = config.LLMConfig{Endpoint: srv.URL, APIKey: "test-key", Model: "test"}
	defer func() { config.ExtConfig.LLM = config.LLMConfig{} }()

	got, err := analyzeThemes(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"theme":"tree loss","mentions":9},{"theme":"parking","mentions":5}]`, got)
}

func TestAnalyzeSentimentRejectsProse(t *testing.T) {
	srv := llmStub(t, "Sure! Here are the labels.")
	defer srv.Close()
	config.ExtConfig.LLM = config.LLMConfig{Endpoint: srv.URL, APIKey: "test-key", Model: "test"}
	defer func() { config.ExtConfig.LLM = config.LLMConfig{} }()

	_, err := analyzeSentiment(context.Background(), []string{"a"})
	assert.Error(t, err)
}

func TestCompleteUnconfigured(t *testing.T) {
	config.ExtConfig.LLM = config.LLMConfig{}
	_, err := complete(context.Background(), "sys", "user")
	assert.Error(t, err)
}

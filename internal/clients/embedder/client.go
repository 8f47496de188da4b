package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
)

// Client turns a chunk of text into a fixed-dimension vector via an
// OpenAI-compatible /embeddings endpoint (any server hosting the sentence
// transformer works). The configured dimension must match the vector index.
type Client interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

type Config struct {
	BaseURL   string
	APIKey    string
	Model     string
	Dimension int
	Timeout   time.Duration
	// HTTPClient overrides the default client; tests inject fakes here.
	HTTPClient *http.Client
}

type client struct {
	log  *logger.Logger
	cfg  Config
	http *http.Client
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("missing embedder base URL")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "all-MiniLM-L6-v2"
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("embedder dimension required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &client{
		log:  log.With("client", "EmbedderClient"),
		cfg:  cfg,
		http: httpClient,
	}, nil
}

func (c *client) Dimension() int { return c.cfg.Dimension }

func (c *client) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("embed: empty input text")
	}

	body := struct {
		Input string `json:"input"`
		Model string `json:"model"`
	}{Input: text, Model: c.cfg.Model}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/embeddings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(c.cfg.APIKey) != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embedder http %d: %s", resp.StatusCode, string(raw))
	}

	var out struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("embedder decode error: %w", err)
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embedder returned no embedding")
	}
	vec := out.Data[0].Embedding
	if len(vec) != c.cfg.Dimension {
		return nil, fmt.Errorf("embedder dimension mismatch: configured %d, got %d", c.cfg.Dimension, len(vec))
	}
	return vec, nil
}

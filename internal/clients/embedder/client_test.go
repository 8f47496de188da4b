package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
)

type roundTripFunc func(r *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(t *testing.T, dimension int, handler roundTripFunc) Client {
	t.Helper()
	log, err := logger.New("")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	c, err := New(log, Config{
		BaseURL:    "http://embedder.local/v1",
		Model:      "all-MiniLM-L6-v2",
		Dimension:  dimension,
		HTTPClient: &http.Client{Transport: handler},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func embeddingResponse(t *testing.T, vec []float32) *http.Response {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"data": []map[string]any{{"embedding": vec}},
	})
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(raw)),
	}
}

func TestEmbedRequestAndResponse(t *testing.T) {
	var captured map[string]any
	c := newTestClient(t, 3, func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Fatalf("method: want=%s got=%s", http.MethodPost, r.Method)
		}
		if r.URL.String() != "http://embedder.local/v1/embeddings" {
			t.Fatalf("url: got=%q", r.URL.String())
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		return embeddingResponse(t, []float32{0.1, 0.2, 0.3}), nil
	})

	vec, err := c.Embed(context.Background(), "photosynthesis converts light into energy")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 3 {
		t.Fatalf("vector length: want=3 got=%d", len(vec))
	}
	if captured["input"] != "photosynthesis converts light into energy" {
		t.Fatalf("input payload: got=%v", captured["input"])
	}
	if captured["model"] != "all-MiniLM-L6-v2" {
		t.Fatalf("model payload: got=%v", captured["model"])
	}
}

func TestEmbedEmptyTextIsErrorWithoutRequest(t *testing.T) {
	c := newTestClient(t, 3, func(r *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request %s %s", r.Method, r.URL)
		return nil, nil
	})
	if _, err := c.Embed(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestEmbedDimensionMismatch(t *testing.T) {
	c := newTestClient(t, 3, func(r *http.Request) (*http.Response, error) {
		return embeddingResponse(t, []float32{0.1, 0.2}), nil
	})
	if _, err := c.Embed(context.Background(), "some text"); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
}

func TestEmbedNon2xxIsError(t *testing.T) {
	c := newTestClient(t, 3, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusServiceUnavailable,
			Body:       io.NopCloser(bytes.NewReader([]byte("model loading"))),
		}, nil
	})
	if _, err := c.Embed(context.Background(), "some text"); err == nil {
		t.Fatalf("expected error for http 503")
	}
}

func TestEmbedNoEmbeddingInResponse(t *testing.T) {
	c := newTestClient(t, 3, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader([]byte(`{"data":[]}`))),
		}, nil
	})
	if _, err := c.Embed(context.Background(), "some text"); err == nil {
		t.Fatalf("expected error for empty data array")
	}
}

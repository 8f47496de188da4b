package pinecone

import (
	"context"
	"fmt"
	"strings"

	clients "github.com/Sanjay-M1512/RAG-ADMIN/internal/clients/pinecone"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
)

const upsertBatchSize = 100

// VectorStore is the ingestion pipeline's view of the vector index: provision
// once, upsert embedding records by id, delete a whole document's records by
// metadata filter without knowing the chunk count.
type VectorStore interface {
	EnsureIndex(ctx context.Context) error
	Upsert(ctx context.Context, vectors []clients.Vector) error
	DeleteByDocumentID(ctx context.Context, documentID string) error
}

type Config struct {
	IndexName string
	// IndexHost may be left empty; EnsureIndex resolves it via describe_index.
	IndexHost string
	Dimension int
}

type vectorStore struct {
	log  *logger.Logger
	pc   clients.Client
	cfg  Config
	host string
}

func NewVectorStore(log *logger.Logger, pc clients.Client, cfg Config) (VectorStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if pc == nil {
		return nil, fmt.Errorf("pinecone client required")
	}
	if strings.TrimSpace(cfg.IndexName) == "" {
		return nil, fmt.Errorf("missing index name")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("missing index dimension")
	}
	return &vectorStore{
		log:  log.With("service", "PineconeVectorStore"),
		pc:   pc,
		cfg:  cfg,
		host: strings.TrimSpace(cfg.IndexHost),
	}, nil
}

// EnsureIndex provisions the index if absent (check-then-create, idempotent)
// and resolves the data-plane host. It also verifies that an existing index
// was provisioned with the configured dimension: a mismatch would make every
// upsert fail, so it is rejected here as a configuration error.
func (s *vectorStore) EnsureIndex(ctx context.Context) error {
	list, err := s.pc.ListIndexes(ctx)
	if err != nil {
		return fmt.Errorf("pinecone list indexes: %w", err)
	}
	exists := false
	for _, idx := range list.Indexes {
		if idx.Name == s.cfg.IndexName {
			exists = true
			break
		}
	}

	if !exists {
		s.log.Info("creating vector index", "index_name", s.cfg.IndexName, "dimension", s.cfg.Dimension)
		_, err := s.pc.CreateIndex(ctx, clients.CreateIndexRequest{
			Name:      s.cfg.IndexName,
			Dimension: s.cfg.Dimension,
			Metric:    "cosine",
			Spec: clients.IndexSpec{
				Serverless: &clients.ServerlessSpec{Cloud: "aws", Region: "us-east-1"},
			},
		})
		if err != nil {
			return fmt.Errorf("pinecone create index: %w", err)
		}
	}

	desc, err := s.pc.DescribeIndex(ctx, s.cfg.IndexName)
	if err != nil {
		return fmt.Errorf("pinecone describe index: %w", err)
	}
	if exists && desc.Dimension != s.cfg.Dimension {
		return fmt.Errorf("pinecone index %q has dimension %d, configured %d", s.cfg.IndexName, desc.Dimension, s.cfg.Dimension)
	}
	s.host = desc.Host
	return nil
}

func (s *vectorStore) Upsert(ctx context.Context, vectors []clients.Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	host, err := s.resolvedHost()
	if err != nil {
		return err
	}
	for start := 0; start < len(vectors); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(vectors) {
			end = len(vectors)
		}
		if _, err := s.pc.UpsertVectors(ctx, host, clients.UpsertRequest{Vectors: vectors[start:end]}); err != nil {
			return fmt.Errorf("pinecone upsert: %w", err)
		}
	}
	return nil
}

func (s *vectorStore) DeleteByDocumentID(ctx context.Context, documentID string) error {
	if strings.TrimSpace(documentID) == "" {
		return fmt.Errorf("documentID required")
	}
	host, err := s.resolvedHost()
	if err != nil {
		return err
	}
	err = s.pc.DeleteVectors(ctx, host, clients.DeleteRequest{
		Filter: map[string]any{
			"document_id": map[string]any{"$eq": documentID},
		},
	})
	if err != nil {
		return fmt.Errorf("pinecone delete by document: %w", err)
	}
	return nil
}

func (s *vectorStore) resolvedHost() (string, error) {
	if s.host == "" {
		return "", fmt.Errorf("index host not resolved; call EnsureIndex first")
	}
	return s.host, nil
}

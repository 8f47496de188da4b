package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/clients/embedder"
	clients "github.com/Sanjay-M1512/RAG-ADMIN/internal/clients/pinecone"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/domain"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/extract"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/pinecone"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/repos"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/segment"
)

// IngestionService runs the full pipeline for one uploaded document:
// extract text, segment into overlapping chunks, embed and upsert every
// chunk, then write the canonical record and one category pointer.
//
// Steps run in that order with no rollback: a failure surfaces to the caller
// but already-applied side effects (upserted vectors, inserted records) stay.
// DocumentService.Delete is the manual compensation.
type IngestionService interface {
	Ingest(ctx context.Context, in IngestInput) (string, error)
}

type IngestInput struct {
	Filename string
	Data     []byte
	Board    string
	Class    string
	Subject  string
	Group    string
}

type ingestionService struct {
	log         *logger.Logger
	segmenter   *segment.Segmenter
	embedder    embedder.Client
	vectors     pinecone.VectorStore
	documents   repos.DocumentRepo
	partitions  map[domain.Board]repos.CategoryRepo
	concurrency int
}

func NewIngestionService(
	log *logger.Logger,
	segmenter *segment.Segmenter,
	embedderClient embedder.Client,
	vectors pinecone.VectorStore,
	documents repos.DocumentRepo,
	stateboard repos.CategoryRepo,
	cbse repos.CategoryRepo,
	embedConcurrency int,
) (IngestionService, error) {
	if log == nil || segmenter == nil || embedderClient == nil || vectors == nil || documents == nil || stateboard == nil || cbse == nil {
		return nil, fmt.Errorf("ingestion service: missing deps")
	}
	if embedConcurrency < 1 {
		embedConcurrency = 1
	}
	return &ingestionService{
		log:       log.With("service", "IngestionService"),
		segmenter: segmenter,
		embedder:  embedderClient,
		vectors:   vectors,
		documents: documents,
		partitions: map[domain.Board]repos.CategoryRepo{
			domain.BoardStateboard: stateboard,
			domain.BoardCBSE:       cbse,
		},
		concurrency: embedConcurrency,
	}, nil
}

func (s *ingestionService) Ingest(ctx context.Context, in IngestInput) (string, error) {
	text, err := extract.Text(in.Filename, in.Data)
	if err != nil {
		return "", fmt.Errorf("extract %q: %w", in.Filename, err)
	}

	chunks := s.segmenter.Segment(text)
	documentID := uuid.New().String()

	log := s.log.With("document_id", documentID, "filename", in.Filename)
	log.Info("ingesting document", "text_len", len(text), "chunks", len(chunks))

	if len(chunks) > 0 {
		vectors, err := s.embedChunks(ctx, documentID, chunks)
		if err != nil {
			return "", err
		}
		if err := s.vectors.Upsert(ctx, vectors); err != nil {
			return "", fmt.Errorf("upsert embeddings for %s: %w", documentID, err)
		}
	} else {
		// Unsupported extension or empty file: the document still gets
		// canonical and pointer records, just nothing in the index.
		log.Warn("no chunks extracted, skipping embedding")
	}

	doc := &domain.Document{
		DocumentID: documentID,
		Filename:   in.Filename,
		Board:      in.Board,
		Class:      in.Class,
		Subject:    in.Subject,
		Group:      in.Group,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.documents.Insert(ctx, doc); err != nil {
		return "", fmt.Errorf("insert canonical record for %s: %w", documentID, err)
	}

	board := domain.ParseBoard(in.Board)
	pointer := &domain.CategoryPointer{
		Class:      in.Class,
		Subject:    in.Subject,
		Group:      in.Group,
		DocumentID: documentID,
	}
	if err := s.partitions[board].Insert(ctx, pointer); err != nil {
		return "", fmt.Errorf("insert %s pointer for %s: %w", board, documentID, err)
	}

	log.Info("document ingested", "board", board.String())
	return documentID, nil
}

// embedChunks embeds every chunk with bounded concurrency, then assembles the
// vectors in chunk order. Record ids are "{document_id}-{index}", which makes
// re-upserting the same chunk idempotent.
func (s *ingestionService) embedChunks(ctx context.Context, documentID string, chunks []string) ([]clients.Vector, error) {
	values := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			vec, err := s.embedder.Embed(gctx, chunk)
			if err != nil {
				return fmt.Errorf("embed chunk %d of %s: %w", i, documentID, err)
			}
			values[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	vectors := make([]clients.Vector, 0, len(chunks))
	for i, chunk := range chunks {
		vectors = append(vectors, clients.Vector{
			ID:     fmt.Sprintf("%s-%d", documentID, i),
			Values: values[i],
			Metadata: map[string]any{
				"text":        chunk,
				"document_id": documentID,
			},
		})
	}
	return vectors, nil
}

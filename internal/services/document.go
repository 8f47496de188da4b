package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/domain"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/pinecone"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/repos"
)

const DefaultListLimit = 20

// DocumentService answers listing queries and keeps the three stores plus the
// vector index consistent on update and delete.
type DocumentService interface {
	// List queries the canonical store directly. Board, class and subject are
	// optional equality filters.
	List(ctx context.Context, filter ListFilter) ([]*domain.Document, error)
	// ListByBoard queries one category partition first, then joins the
	// resulting document ids back to canonical records.
	ListByBoard(ctx context.Context, board domain.Board, filter ListFilter) ([]*domain.Document, error)
	// Update merges fields into the canonical record. Matching no record is
	// not an error; the document_id field itself is never writable.
	Update(ctx context.Context, documentID string, fields map[string]any) error
	// Delete removes the document's footprint everywhere: canonical record,
	// both category partitions, and the vector index. Deleting an unknown id
	// succeeds as a no-op. Every step is attempted even if an earlier one
	// fails, so a partial footprint keeps shrinking on retry.
	Delete(ctx context.Context, documentID string) error
}

type ListFilter struct {
	Board   string
	Class   string
	Subject string
	Group   string
	Limit   int64
}

type documentService struct {
	log        *logger.Logger
	documents  repos.DocumentRepo
	stateboard repos.CategoryRepo
	cbse       repos.CategoryRepo
	vectors    pinecone.VectorStore
}

func NewDocumentService(
	log *logger.Logger,
	documents repos.DocumentRepo,
	stateboard repos.CategoryRepo,
	cbse repos.CategoryRepo,
	vectors pinecone.VectorStore,
) (DocumentService, error) {
	if log == nil || documents == nil || stateboard == nil || cbse == nil || vectors == nil {
		return nil, fmt.Errorf("document service: missing deps")
	}
	return &documentService{
		log:        log.With("service", "DocumentService"),
		documents:  documents,
		stateboard: stateboard,
		cbse:       cbse,
		vectors:    vectors,
	}, nil
}

func (s *documentService) List(ctx context.Context, filter ListFilter) ([]*domain.Document, error) {
	return s.documents.Find(ctx, map[string]string{
		"board":   filter.Board,
		"class":   filter.Class,
		"subject": filter.Subject,
	}, normalizeLimit(filter.Limit))
}

func (s *documentService) ListByBoard(ctx context.Context, board domain.Board, filter ListFilter) ([]*domain.Document, error) {
	partition := s.partition(board)
	pointers, err := partition.Find(ctx, map[string]string{
		"class":   filter.Class,
		"subject": filter.Subject,
		"group":   filter.Group,
	}, normalizeLimit(filter.Limit))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(pointers))
	for _, p := range pointers {
		ids = append(ids, p.DocumentID)
	}
	return s.documents.FindByDocumentIDs(ctx, ids)
}

func (s *documentService) Update(ctx context.Context, documentID string, fields map[string]any) error {
	if documentID == "" {
		return fmt.Errorf("documentID required")
	}
	// document_id is immutable once assigned; silently dropping it keeps the
	// partial-merge contract for the rest of the fields.
	delete(fields, "document_id")
	delete(fields, "_id")
	return s.documents.UpdateByDocumentID(ctx, documentID, fields)
}

func (s *documentService) Delete(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("documentID required")
	}
	log := s.log.With("document_id", documentID)

	var errs []error
	if err := s.documents.DeleteByDocumentID(ctx, documentID); err != nil {
		errs = append(errs, fmt.Errorf("canonical record: %w", err))
	}
	// The partition chosen at ingest time is not re-derivable once the
	// canonical record is gone, so always sweep both.
	if _, err := s.stateboard.DeleteManyByDocumentID(ctx, documentID); err != nil {
		errs = append(errs, fmt.Errorf("stateboard pointers: %w", err))
	}
	if _, err := s.cbse.DeleteManyByDocumentID(ctx, documentID); err != nil {
		errs = append(errs, fmt.Errorf("cbse pointers: %w", err))
	}
	if err := s.vectors.DeleteByDocumentID(ctx, documentID); err != nil {
		errs = append(errs, fmt.Errorf("vector index: %w", err))
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		log.Error("document delete incomplete", "error", err)
		return fmt.Errorf("delete %s: %w", documentID, err)
	}
	log.Info("document deleted")
	return nil
}

func (s *documentService) partition(board domain.Board) repos.CategoryRepo {
	if board == domain.BoardStateboard {
		return s.stateboard
	}
	return s.cbse
}

func normalizeLimit(limit int64) int64 {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

package repos

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/domain"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
)

// DocumentRepo is the canonical record store. All operations address records
// by document_id, never by the store's own identity. Delete and update match
// zero documents without error.
type DocumentRepo interface {
	Insert(ctx context.Context, doc *domain.Document) error
	Find(ctx context.Context, filter map[string]string, limit int64) ([]*domain.Document, error)
	FindByDocumentIDs(ctx context.Context, documentIDs []string) ([]*domain.Document, error)
	UpdateByDocumentID(ctx context.Context, documentID string, fields map[string]any) error
	DeleteByDocumentID(ctx context.Context, documentID string) error
}

type documentRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewDocumentRepo(coll *mongo.Collection, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{coll: coll, log: baseLog.With("repo", "DocumentRepo")}
}

func (r *documentRepo) Insert(ctx context.Context, doc *domain.Document) error {
	if doc == nil {
		return fmt.Errorf("document required")
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *documentRepo) Find(ctx context.Context, filter map[string]string, limit int64) ([]*domain.Document, error) {
	query := bson.M{}
	for k, v := range filter {
		if v != "" {
			query[k] = v
		}
	}
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	defer cursor.Close(ctx)

	results := []*domain.Document{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return results, nil
}

func (r *documentRepo) FindByDocumentIDs(ctx context.Context, documentIDs []string) ([]*domain.Document, error) {
	results := []*domain.Document{}
	if len(documentIDs) == 0 {
		return results, nil
	}
	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cursor, err := r.coll.Find(ctx, bson.M{"document_id": bson.M{"$in": documentIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find documents by ids: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return results, nil
}

func (r *documentRepo) UpdateByDocumentID(ctx context.Context, documentID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"document_id": documentID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

func (r *documentRepo) DeleteByDocumentID(ctx context.Context, documentID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"document_id": documentID}); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

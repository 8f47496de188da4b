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

// CategoryRepo serves one board partition of category pointers. Construct one
// instance per partition collection; the ingestion coordinator picks which
// instance to write through, and deletion runs against both.
type CategoryRepo interface {
	Insert(ctx context.Context, pointer *domain.CategoryPointer) error
	Find(ctx context.Context, filter map[string]string, limit int64) ([]*domain.CategoryPointer, error)
	DeleteManyByDocumentID(ctx context.Context, documentID string) (int64, error)
}

type categoryRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewCategoryRepo(coll *mongo.Collection, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{
		coll: coll,
		log:  baseLog.With("repo", "CategoryRepo", "collection", coll.Name()),
	}
}

func (r *categoryRepo) Insert(ctx context.Context, pointer *domain.CategoryPointer) error {
	if pointer == nil {
		return fmt.Errorf("category pointer required")
	}
	if _, err := r.coll.InsertOne(ctx, pointer); err != nil {
		return fmt.Errorf("insert category pointer: %w", err)
	}
	return nil
}

func (r *categoryRepo) Find(ctx context.Context, filter map[string]string, limit int64) ([]*domain.CategoryPointer, error) {
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
		return nil, fmt.Errorf("find category pointers: %w", err)
	}
	defer cursor.Close(ctx)

	results := []*domain.CategoryPointer{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode category pointers: %w", err)
	}
	return results, nil
}

func (r *categoryRepo) DeleteManyByDocumentID(ctx context.Context, documentID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"document_id": documentID})
	if err != nil {
		return 0, fmt.Errorf("delete category pointers: %w", err)
	}
	return res.DeletedCount, nil
}

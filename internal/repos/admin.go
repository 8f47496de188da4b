package repos

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/domain"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
)

// AdminRepo stores admin accounts. Lookups that match nothing return
// (nil, nil) so callers can distinguish "absent" from a store failure.
type AdminRepo interface {
	Create(ctx context.Context, admin *domain.Admin) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields map[string]any) error
}

type adminRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewAdminRepo(coll *mongo.Collection, baseLog *logger.Logger) AdminRepo {
	return &adminRepo{coll: coll, log: baseLog.With("repo", "AdminRepo")}
}

func (r *adminRepo) Create(ctx context.Context, admin *domain.Admin) (primitive.ObjectID, error) {
	if admin == nil {
		return primitive.NilObjectID, fmt.Errorf("admin required")
	}
	res, err := r.coll.InsertOne(ctx, admin)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert admin: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert admin: unexpected inserted id type %T", res.InsertedID)
	}
	return oid, nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &admin, nil
}

func (r *adminRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return &admin, nil
}

func (r *adminRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	return nil
}

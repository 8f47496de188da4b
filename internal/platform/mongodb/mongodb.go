package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
)

// Collection names inside the metadata database. The two partition
// collections hold category pointers; documents holds the canonical records.
const (
	CollectionAdmins     = "admins"
	CollectionDocuments  = "documents"
	CollectionStateboard = "stateboard"
	CollectionCBSE       = "cbse"
)

// Service owns the long-lived Mongo client, constructed once at process start
// and shared by every request-scoped operation.
type Service struct {
	log    *logger.Logger
	client *mongo.Client
	db     *mongo.Database
}

func New(ctx context.Context, log *logger.Logger, uri, dbName string) (*Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("missing Mongo URI")
	}
	if strings.TrimSpace(dbName) == "" {
		return nil, fmt.Errorf("missing Mongo database name")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Service{
		log:    log.With("service", "MongoService"),
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (s *Service) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Service) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	clients "github.com/Sanjay-M1512/RAG-ADMIN/internal/clients/pinecone"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/domain"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// fakeDocumentRepo keeps canonical records in memory, keyed by document_id.
type fakeDocumentRepo struct {
	docs      map[string]*domain.Document
	insertErr error
	deleteErr error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[string]*domain.Document{}}
}

func (f *fakeDocumentRepo) Insert(ctx context.Context, doc *domain.Document) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.docs[doc.DocumentID] = doc
	return nil
}

func (f *fakeDocumentRepo) Find(ctx context.Context, filter map[string]string, limit int64) ([]*domain.Document, error) {
	results := []*domain.Document{}
	for _, doc := range f.docs {
		if v := filter["board"]; v != "" && doc.Board != v {
			continue
		}
		if v := filter["class"]; v != "" && doc.Class != v {
			continue
		}
		if v := filter["subject"]; v != "" && doc.Subject != v {
			continue
		}
		results = append(results, doc)
		if int64(len(results)) == limit {
			break
		}
	}
	return results, nil
}

func (f *fakeDocumentRepo) FindByDocumentIDs(ctx context.Context, documentIDs []string) ([]*domain.Document, error) {
	results := []*domain.Document{}
	for _, id := range documentIDs {
		if doc, ok := f.docs[id]; ok {
			results = append(results, doc)
		}
	}
	return results, nil
}

func (f *fakeDocumentRepo) UpdateByDocumentID(ctx context.Context, documentID string, fields map[string]any) error {
	doc, ok := f.docs[documentID]
	if !ok {
		return nil
	}
	if v, ok := fields["document_id"].(string); ok {
		doc.DocumentID = v
	}
	if v, ok := fields["subject"].(string); ok {
		doc.Subject = v
	}
	if v, ok := fields["class"].(string); ok {
		doc.Class = v
	}
	return nil
}

func (f *fakeDocumentRepo) DeleteByDocumentID(ctx context.Context, documentID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.docs, documentID)
	return nil
}

// fakeCategoryRepo is one in-memory board partition.
type fakeCategoryRepo struct {
	pointers  []*domain.CategoryPointer
	insertErr error
	deleteErr error

	deleteCalls int
}

func (f *fakeCategoryRepo) Insert(ctx context.Context, pointer *domain.CategoryPointer) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.pointers = append(f.pointers, pointer)
	return nil
}

func (f *fakeCategoryRepo) Find(ctx context.Context, filter map[string]string, limit int64) ([]*domain.CategoryPointer, error) {
	results := []*domain.CategoryPointer{}
	for _, p := range f.pointers {
		if v := filter["class"]; v != "" && p.Class != v {
			continue
		}
		if v := filter["subject"]; v != "" && p.Subject != v {
			continue
		}
		if v := filter["group"]; v != "" && p.Group != v {
			continue
		}
		results = append(results, p)
		if int64(len(results)) == limit {
			break
		}
	}
	return results, nil
}

func (f *fakeCategoryRepo) DeleteManyByDocumentID(ctx context.Context, documentID string) (int64, error) {
	f.deleteCalls++
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	kept := f.pointers[:0]
	var deleted int64
	for _, p := range f.pointers {
		if p.DocumentID == documentID {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	f.pointers = kept
	return deleted, nil
}

// fakeAdminRepo stores admin accounts in memory.
type fakeAdminRepo struct {
	admins map[primitive.ObjectID]*domain.Admin

	lastUpdateFields map[string]any
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[primitive.ObjectID]*domain.Admin{}}
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *domain.Admin) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *admin
	stored.ID = id
	f.admins[id] = &stored
	return id, nil
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	for _, admin := range f.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	if admin, ok := f.admins[id]; ok {
		return admin, nil
	}
	return nil, nil
}

func (f *fakeAdminRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, fields map[string]any) error {
	f.lastUpdateFields = fields
	return nil
}

// fakeEmbedder returns a vector derived from the chunk length so tests can
// tell which chunk produced which vector.
type fakeEmbedder struct {
	mu        sync.Mutex
	dimension int
	calls     int
	err       error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	vec := make([]float32, f.dimension)
	vec[0] = float32(len([]rune(text)))
	return vec, nil
}

func (f *fakeEmbedder) Dimension() int { return f.dimension }

// fakeVectorStore records upserts and deletes without a network.
type fakeVectorStore struct {
	upserted    []clients.Vector
	deletedIDs  []string
	upsertErr   error
	deleteErr   error
	deleteCalls int
}

func (f *fakeVectorStore) EnsureIndex(ctx context.Context) error { return nil }

func (f *fakeVectorStore) Upsert(ctx context.Context, vectors []clients.Vector) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, vectors...)
	return nil
}

func (f *fakeVectorStore) DeleteByDocumentID(ctx context.Context, documentID string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, documentID)
	return nil
}

var errStoreDown = fmt.Errorf("store unavailable")

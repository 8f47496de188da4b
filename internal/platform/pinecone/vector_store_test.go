package pinecone

import (
	"context"
	"fmt"
	"testing"

	clients "github.com/Sanjay-M1512/RAG-ADMIN/internal/clients/pinecone"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
)

type fakePineconeClient struct {
	indexes []clients.IndexDescription

	createCalls []clients.CreateIndexRequest
	upsertCalls []clients.UpsertRequest
	deleteCalls []clients.DeleteRequest
	hosts       []string

	upsertErr error
}

func (f *fakePineconeClient) ListIndexes(ctx context.Context) (*clients.ListIndexesResponse, error) {
	return &clients.ListIndexesResponse{Indexes: f.indexes}, nil
}

func (f *fakePineconeClient) CreateIndex(ctx context.Context, req clients.CreateIndexRequest) (*clients.IndexDescription, error) {
	f.createCalls = append(f.createCalls, req)
	desc := clients.IndexDescription{
		Name:      req.Name,
		Host:      req.Name + ".fake.pinecone.io",
		Dimension: req.Dimension,
		Metric:    req.Metric,
	}
	f.indexes = append(f.indexes, desc)
	return &desc, nil
}

func (f *fakePineconeClient) DescribeIndex(ctx context.Context, name string) (*clients.IndexDescription, error) {
	for i := range f.indexes {
		if f.indexes[i].Name == name {
			return &f.indexes[i], nil
		}
	}
	return nil, fmt.Errorf("index %q not found", name)
}

func (f *fakePineconeClient) UpsertVectors(ctx context.Context, host string, req clients.UpsertRequest) (*clients.UpsertResponse, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.hosts = append(f.hosts, host)
	f.upsertCalls = append(f.upsertCalls, req)
	return &clients.UpsertResponse{UpsertedCount: int64(len(req.Vectors))}, nil
}

func (f *fakePineconeClient) DeleteVectors(ctx context.Context, host string, req clients.DeleteRequest) error {
	f.hosts = append(f.hosts, host)
	f.deleteCalls = append(f.deleteCalls, req)
	return nil
}

func newTestStore(t *testing.T, fake *fakePineconeClient, cfg Config) VectorStore {
	t.Helper()
	log, err := logger.New("")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	s, err := NewVectorStore(log, fake, cfg)
	if err != nil {
		t.Fatalf("NewVectorStore: %v", err)
	}
	return s
}

func makeVectors(n int) []clients.Vector {
	vectors := make([]clients.Vector, 0, n)
	for i := 0; i < n; i++ {
		vectors = append(vectors, clients.Vector{
			ID:     fmt.Sprintf("doc-%d", i),
			Values: []float32{float32(i)},
		})
	}
	return vectors
}

func TestEnsureIndexCreatesWhenMissing(t *testing.T) {
	fake := &fakePineconeClient{}
	s := newTestStore(t, fake, Config{IndexName: "rag-documents", Dimension: 384})

	if err := s.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("EnsureIndex: %v", err)
	}
	if len(fake.createCalls) != 1 {
		t.Fatalf("create calls: want=1 got=%d", len(fake.createCalls))
	}
	req := fake.createCalls[0]
	if req.Dimension != 384 || req.Metric != "cosine" {
		t.Fatalf("create request: got=%+v", req)
	}
	if req.Spec.Serverless == nil || req.Spec.Serverless.Cloud != "aws" || req.Spec.Serverless.Region != "us-east-1" {
		t.Fatalf("serverless spec: got=%+v", req.Spec)
	}

	// Host resolved, upsert goes through without a configured IndexHost.
	if err := s.Upsert(context.Background(), makeVectors(1)); err != nil {
		t.Fatalf("Upsert after EnsureIndex: %v", err)
	}
	if fake.hosts[0] != "rag-documents.fake.pinecone.io" {
		t.Fatalf("resolved host: got=%q", fake.hosts[0])
	}
}

func TestEnsureIndexIsIdempotent(t *testing.T) {
	fake := &fakePineconeClient{
		indexes: []clients.IndexDescription{{Name: "rag-documents", Host: "h.fake.pinecone.io", Dimension: 384}},
	}
	s := newTestStore(t, fake, Config{IndexName: "rag-documents", Dimension: 384})

	if err := s.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("EnsureIndex: %v", err)
	}
	if err := s.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("second EnsureIndex: %v", err)
	}
	if len(fake.createCalls) != 0 {
		t.Fatalf("create calls for existing index: want=0 got=%d", len(fake.createCalls))
	}
}

func TestEnsureIndexRejectsDimensionMismatch(t *testing.T) {
	fake := &fakePineconeClient{
		indexes: []clients.IndexDescription{{Name: "rag-documents", Host: "h.fake.pinecone.io", Dimension: 768}},
	}
	s := newTestStore(t, fake, Config{IndexName: "rag-documents", Dimension: 384})

	if err := s.EnsureIndex(context.Background()); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
}

func TestUpsertBatches(t *testing.T) {
	fake := &fakePineconeClient{}
	s := newTestStore(t, fake, Config{IndexName: "rag-documents", IndexHost: "h.fake.pinecone.io", Dimension: 384})

	if err := s.Upsert(context.Background(), makeVectors(250)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if len(fake.upsertCalls) != 3 {
		t.Fatalf("upsert calls: want=3 got=%d", len(fake.upsertCalls))
	}
	sizes := []int{len(fake.upsertCalls[0].Vectors), len(fake.upsertCalls[1].Vectors), len(fake.upsertCalls[2].Vectors)}
	if sizes[0] != 100 || sizes[1] != 100 || sizes[2] != 50 {
		t.Fatalf("batch sizes: got=%v", sizes)
	}
	if fake.upsertCalls[0].Vectors[0].ID != "doc-0" || fake.upsertCalls[2].Vectors[49].ID != "doc-249" {
		t.Fatalf("batch ordering broken")
	}
}

func TestUpsertWithoutResolvedHostFails(t *testing.T) {
	fake := &fakePineconeClient{}
	s := newTestStore(t, fake, Config{IndexName: "rag-documents", Dimension: 384})

	if err := s.Upsert(context.Background(), makeVectors(1)); err == nil {
		t.Fatalf("expected unresolved host error")
	}
	if len(fake.upsertCalls) != 0 {
		t.Fatalf("upsert calls: want=0 got=%d", len(fake.upsertCalls))
	}
}

func TestUpsertEmptyIsNoop(t *testing.T) {
	fake := &fakePineconeClient{}
	s := newTestStore(t, fake, Config{IndexName: "rag-documents", IndexHost: "h.fake.pinecone.io", Dimension: 384})

	if err := s.Upsert(context.Background(), nil); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if len(fake.upsertCalls) != 0 {
		t.Fatalf("upsert calls: want=0 got=%d", len(fake.upsertCalls))
	}
}

func TestDeleteByDocumentIDFilter(t *testing.T) {
	fake := &fakePineconeClient{}
	s := newTestStore(t, fake, Config{IndexName: "rag-documents", IndexHost: "h.fake.pinecone.io", Dimension: 384})

	if err := s.DeleteByDocumentID(context.Background(), "doc-123"); err != nil {
		t.Fatalf("DeleteByDocumentID: %v", err)
	}
	if len(fake.deleteCalls) != 1 {
		t.Fatalf("delete calls: want=1 got=%d", len(fake.deleteCalls))
	}
	eq, ok := fake.deleteCalls[0].Filter["document_id"].(map[string]any)
	if !ok || eq["$eq"] != "doc-123" {
		t.Fatalf("delete filter: got=%v", fake.deleteCalls[0].Filter)
	}
}

func TestDeleteByDocumentIDRequiresID(t *testing.T) {
	fake := &fakePineconeClient{}
	s := newTestStore(t, fake, Config{IndexName: "rag-documents", IndexHost: "h.fake.pinecone.io", Dimension: 384})

	if err := s.DeleteByDocumentID(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty document id")
	}
	if len(fake.deleteCalls) != 0 {
		t.Fatalf("delete calls: want=0 got=%d", len(fake.deleteCalls))
	}
}

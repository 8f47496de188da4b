package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	clients "github.com/Sanjay-M1512/RAG-ADMIN/internal/clients/pinecone"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/clients/embedder"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/http/handlers"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/http/middleware"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/envutil"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/mongodb"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/pinecone"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/repos"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/segment"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/server"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/services"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Env
	mongoURI := envutil.GetEnv("MONGO_URI", "mongodb://localhost:27017", log)
	mongoDB := envutil.GetEnv("MONGO_DB", "RAG", log)
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 86400, log)
	pineconeAPIKey := envutil.GetEnv("PINECONE_API_KEY", "", log)
	indexName := envutil.GetEnv("PINECONE_INDEX_NAME", "rag-documents", log)
	indexHost := envutil.GetEnv("PINECONE_INDEX_HOST", "", log)
	embedderBaseURL := envutil.GetEnv("EMBEDDER_BASE_URL", "http://localhost:8081/v1", log)
	embedderAPIKey := envutil.GetEnv("EMBEDDER_API_KEY", "", log)
	embedderModel := envutil.GetEnv("EMBEDDER_MODEL", "all-MiniLM-L6-v2", log)
	embeddingDim := envutil.GetEnvAsInt("EMBEDDING_DIM", 384, log)
	chunkSize := envutil.GetEnvAsInt("CHUNK_SIZE", 500, log)
	chunkOverlap := envutil.GetEnvAsInt("CHUNK_OVERLAP", 100, log)
	embedConcurrency := envutil.GetEnvAsInt("EMBED_CONCURRENCY", 4, log)
	maxUploadMB := envutil.GetEnvAsInt("MAX_UPLOAD_MB", 200, log)
	port := envutil.GetEnv("PORT", "6000", log)

	// Mongo
	mongoService, err := mongodb.New(ctx, log, mongoURI, mongoDB)
	if err != nil {
		log.Fatal("Mongo init failed", "error", err)
	}
	defer func() {
		_ = mongoService.Close(context.Background())
	}()

	// Pinecone
	pineconeClient, err := clients.New(log, clients.Config{APIKey: pineconeAPIKey})
	if err != nil {
		log.Fatal("Pinecone client init failed", "error", err)
	}
	vectorStore, err := pinecone.NewVectorStore(log, pineconeClient, pinecone.Config{
		IndexName: indexName,
		IndexHost: indexHost,
		Dimension: embeddingDim,
	})
	if err != nil {
		log.Fatal("Vector store init failed", "error", err)
	}
	if err := vectorStore.EnsureIndex(ctx); err != nil {
		log.Fatal("Vector index provisioning failed", "error", err)
	}

	// Embedder
	embedderClient, err := embedder.New(log, embedder.Config{
		BaseURL:   embedderBaseURL,
		APIKey:    embedderAPIKey,
		Model:     embedderModel,
		Dimension: embeddingDim,
	})
	if err != nil {
		log.Fatal("Embedder client init failed", "error", err)
	}

	// Repos
	adminRepo := repos.NewAdminRepo(mongoService.Collection(mongodb.CollectionAdmins), log)
	documentRepo := repos.NewDocumentRepo(mongoService.Collection(mongodb.CollectionDocuments), log)
	stateboardRepo := repos.NewCategoryRepo(mongoService.Collection(mongodb.CollectionStateboard), log)
	cbseRepo := repos.NewCategoryRepo(mongoService.Collection(mongodb.CollectionCBSE), log)

	// Services
	segmenter, err := segment.New(chunkSize, chunkOverlap)
	if err != nil {
		log.Fatal("Invalid chunking configuration", "error", err)
	}
	authService, err := services.NewAuthService(log, adminRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	if err != nil {
		log.Fatal("Auth service init failed", "error", err)
	}
	ingestService, err := services.NewIngestionService(log, segmenter, embedderClient, vectorStore, documentRepo, stateboardRepo, cbseRepo, embedConcurrency)
	if err != nil {
		log.Fatal("Ingestion service init failed", "error", err)
	}
	documentService, err := services.NewDocumentService(log, documentRepo, stateboardRepo, cbseRepo, vectorStore)
	if err != nil {
		log.Fatal("Document service init failed", "error", err)
	}

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     handlers.NewAuthHandler(authService),
		DocumentHandler: handlers.NewDocumentHandler(log, ingestService, documentService),
		AuthMiddleware:  middleware.NewAuthMiddleware(log, authService),
		MaxUploadBytes:  int64(maxUploadMB) * 1024 * 1024,
	})

	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}

package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/domain"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/http/response"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/services"
)

type DocumentHandler struct {
	log             *logger.Logger
	ingestService   services.IngestionService
	documentService services.DocumentService
}

func NewDocumentHandler(log *logger.Logger, ingestService services.IngestionService, documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		log:             log.With("handler", "DocumentHandler"),
		ingestService:   ingestService,
		documentService: documentService,
	}
}

// Upload ingests a multipart document upload. The request body size cap is
// enforced by the router; by the time this runs the file fits in memory.
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "no_file", fmt.Errorf("no file uploaded"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}

	documentID, err := h.ingestService.Ingest(c.Request.Context(), services.IngestInput{
		Filename: fileHeader.Filename,
		Data:     data,
		Board:    c.PostForm("board"),
		Class:    c.PostForm("class"),
		Subject:  c.PostForm("subject"),
		Group:    c.PostForm("group"),
	})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "ingest_failed", err)
		return
	}

	response.RespondOK(c, gin.H{
		"message":     "Document uploaded successfully",
		"document_id": documentID,
	})
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documentService.List(c.Request.Context(), services.ListFilter{
		Board:   c.Query("board"),
		Class:   c.Query("class"),
		Subject: c.Query("subject"),
		Limit:   queryLimit(c),
	})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, docs)
}

func (h *DocumentHandler) ListStateboard(c *gin.Context) {
	h.listByBoard(c, domain.BoardStateboard)
}

func (h *DocumentHandler) ListCBSE(c *gin.Context) {
	h.listByBoard(c, domain.BoardCBSE)
}

func (h *DocumentHandler) listByBoard(c *gin.Context, board domain.Board) {
	docs, err := h.documentService.ListByBoard(c.Request.Context(), board, services.ListFilter{
		Class:   c.Query("class"),
		Subject: c.Query("subject"),
		Group:   c.Query("group"),
		Limit:   queryLimit(c),
	})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, docs)
}

func (h *DocumentHandler) Update(c *gin.Context) {
	documentID := c.Param("document_id")
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.documentService.Update(c.Request.Context(), documentID, fields); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "update_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Document updated successfully"})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	documentID := c.Param("document_id")
	if err := h.documentService.Delete(c.Request.Context(), documentID); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Document deleted successfully"})
}

func queryLimit(c *gin.Context) int64 {
	raw := c.Query("limit")
	if raw == "" {
		return services.DefaultListLimit
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		return services.DefaultListLimit
	}
	return limit
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
	"github.com/SscSPs/billing_engine/internal/dto"
	"github.com/SscSPs/billing_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for every billing document type.
type documentHandler struct {
	documentService   portssvc.DocumentSvcFacade
	conversionService portssvc.ConversionSvc
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, cs portssvc.ConversionSvc) *documentHandler {
	return &documentHandler{
		documentService:   ds,
		conversionService: cs,
	}
}

// RegisterDocumentRoutes registers the document routes under rg.
// The document type is a path segment, so one set of handlers serves invoices, notes, challans and orders.
func RegisterDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, conversionService portssvc.ConversionSvc) {
	h := newDocumentHandler(documentService, conversionService)

	documents := rg.Group("/documents/:documentType")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:documentID", h.getDocument)
		documents.PUT("/:documentID", h.updateDocument)
		documents.DELETE("/:documentID", h.deleteDocument)
		documents.PATCH("/:documentID/status", h.updateStatus)
		documents.POST("/:documentID/convert", h.convertDocument)
	}
}

// createDocument godoc
// @Summary Create a billing document
// @Description Prices the line items, allocates the next document number and stores the document
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   documentType path string true "Document type (proforma, sales, credit-note, debit-note, delivery-challan, purchase-order)"
// @Param   document body dto.DocumentPayload true "Document details"
// @Success 201 {object} dto.DocumentWriteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Document number could not be allocated"
// @Failure 500 {object} map[string]string "Failed to create document"
// @Security BearerAuth
// @Router /documents/{documentType} [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentType, ok := documentTypeParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.DocumentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create document",
		slog.String("document_type", string(documentType)),
		slog.String("party_id", req.PartyID),
		slog.Int("item_count", len(req.Items)))

	doc, err := h.documentService.CreateDocument(c.Request.Context(), documentType, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create document")
		return
	}

	logger.Info("Document created successfully", slog.String("document_id", doc.DocumentID), slog.String("document_number", doc.DocumentNumber))
	c.JSON(http.StatusCreated, dto.ToDocumentWriteResponse(doc))
}

// getDocument godoc
// @Summary Get a billing document
// @Description Retrieves a document with its line items
// @Tags documents
// @Produce  json
// @Param   documentType path string true "Document type"
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Unknown document type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to retrieve document"
// @Security BearerAuth
// @Router /documents/{documentType}/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	documentType, ok := documentTypeParam(c)
	if !ok {
		return
	}
	if _, ok := currentUserID(c); !ok {
		return
	}
	documentID, ok := documentIDParam(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), documentType, documentID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List billing documents
// @Description Lists documents of one type, newest first, with optional filters
// @Tags documents
// @Produce  json
// @Param   documentType path string true "Document type"
// @Param   status query string false "Status filter"
// @Param   partyId query string false "Party filter"
// @Param   dateFrom query string false "Earliest document date (YYYY-MM-DD)"
// @Param   dateTo query string false "Latest document date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list documents"
// @Security BearerAuth
// @Router /documents/{documentType} [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentType, ok := documentTypeParam(c)
	if !ok {
		return
	}
	if _, ok := currentUserID(c); !ok {
		return
	}

	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListDocuments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.documentService.ListDocuments(c.Request.Context(), documentType, params)
	if err != nil {
		respondWithError(c, err, "Failed to list documents")
		return
	}

	logger.Debug("Documents listed", slog.Int("count", len(resp.Documents)))
	c.JSON(http.StatusOK, resp)
}

// updateDocument godoc
// @Summary Update a billing document
// @Description Reprices the document and replaces all of its line items. Number, status and conversion links are kept.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   documentType path string true "Document type"
// @Param   documentID path string true "Document ID"
// @Param   document body dto.DocumentPayload true "Document details"
// @Success 200 {object} dto.DocumentWriteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to update document"
// @Security BearerAuth
// @Router /documents/{documentType}/{documentID} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentType, ok := documentTypeParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	documentID, ok := documentIDParam(c)
	if !ok {
		return
	}

	var req dto.DocumentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("document_id", documentID))
	logger.Info("Received request to update document", slog.Int("item_count", len(req.Items)))

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), documentType, documentID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update document")
		return
	}

	logger.Info("Document updated successfully")
	c.JSON(http.StatusOK, dto.ToDocumentWriteResponse(doc))
}

// deleteDocument godoc
// @Summary Delete a billing document
// @Description Deletes a document and its line items. Documents with recorded payments cannot be deleted.
// @Tags documents
// @Produce  json
// @Param   documentType path string true "Document type"
// @Param   documentID path string true "Document ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document is referenced by payments"
// @Failure 500 {object} map[string]string "Failed to delete document"
// @Security BearerAuth
// @Router /documents/{documentType}/{documentID} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentType, ok := documentTypeParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	documentID, ok := documentIDParam(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), documentType, documentID, userID); err != nil {
		respondWithError(c, err, "Failed to delete document")
		return
	}

	logger.Info("Document deleted successfully", slog.String("document_id", documentID))
	c.Status(http.StatusNoContent)
}

// updateStatus godoc
// @Summary Change a document's status
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   documentType path string true "Document type"
// @Param   documentID path string true "Document ID"
// @Param   status body dto.UpdateStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Failed to update status"
// @Security BearerAuth
// @Router /documents/{documentType}/{documentID}/status [patch]
func (h *documentHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentType, ok := documentTypeParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	documentID, ok := documentIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.documentService.UpdateStatus(c.Request.Context(), documentType, documentID, req.Status, userID); err != nil {
		respondWithError(c, err, "Failed to update status")
		return
	}

	logger.Info("Document status updated", slog.String("document_id", documentID), slog.String("status", req.Status))
	c.Status(http.StatusNoContent)
}

// convertDocument godoc
// @Summary Convert a document into another type
// @Description Copies the document and its items into a new draft of the target type and links the two
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   documentType path string true "Source document type"
// @Param   documentID path string true "Source document ID"
// @Param   conversion body dto.ConvertDocumentRequest true "Target type"
// @Success 201 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid target type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Source document not found"
// @Failure 409 {object} map[string]string "Source already converted"
// @Failure 500 {object} map[string]string "Failed to convert document"
// @Security BearerAuth
// @Router /documents/{documentType}/{documentID}/convert [post]
func (h *documentHandler) convertDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sourceType, ok := documentTypeParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sourceID, ok := documentIDParam(c)
	if !ok {
		return
	}

	var req dto.ConvertDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	targetType, err := domain.ParseDocumentType(req.TargetType)
	if err != nil {
		respondWithError(c, err, "Failed to convert document")
		return
	}

	logger.Info("Received request to convert document",
		slog.String("source_id", sourceID),
		slog.String("source_type", string(sourceType)),
		slog.String("target_type", string(targetType)))

	result, err := h.conversionService.ConvertDocument(c.Request.Context(), sourceType, sourceID, targetType, userID)
	if err != nil {
		respondWithError(c, err, "Failed to convert document")
		return
	}

	c.JSON(http.StatusCreated, dto.ToConversionResponse(result))
}

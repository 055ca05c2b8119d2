package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/SscSPs/billing_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondWithError maps a service error onto its HTTP status.
// Unclassified failures are reported as fallback without leaking the cause.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.Message(err)})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": apperrors.Message(err)})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.Message(err)})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("Operation timed out", slog.String("error", err.Error()))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Operation timed out"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// documentTypeParam resolves the :documentType path segment. It writes a 400 and returns false on failure.
func documentTypeParam(c *gin.Context) (domain.DocumentType, bool) {
	documentType, err := domain.ParseDocumentType(c.Param("documentType"))
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Unknown document type", slog.String("document_type", c.Param("documentType")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown document type: " + c.Param("documentType")})
		return "", false
	}
	return documentType, true
}

// documentIDParam resolves the :documentID path segment. An id that is not a UUID cannot exist,
// so it writes a 404 and returns false.
func documentIDParam(c *gin.Context) (string, bool) {
	documentID := c.Param("documentID")
	if _, err := uuid.Parse(documentID); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Malformed document id", slog.String("document_id", documentID))
		c.JSON(http.StatusNotFound, gin.H{"error": "document " + documentID + " not found"})
		return "", false
	}
	return documentID, true
}

// currentUserID returns the authenticated user id. It writes a 401 and returns false when absent.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// Package handlers contains the Gin HTTP adapters over the services.
package handlers

import (
	"errors"
	"net/http"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/middleware"
	"github.com/engagehq/engage-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError maps a service error to an HTTP status with a short
// human-readable message. Unknown errors become a 500 without leaking
// internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperrors.ErrInsufficientPoints):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient points"})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "request already processed"})
	case errors.Is(err, apperrors.ErrDuplicateResponse):
		c.JSON(http.StatusConflict, gin.H{"error": "question already answered"})
	case errors.Is(err, apperrors.ErrInvalidAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid answer"})
	case errors.Is(err, apperrors.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pathID parses the :id path parameter as an ObjectID
func pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// currentUserID reads the authenticated user's ID set by the JWT middleware
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// Package http provides HTTP handlers for chunked-envelope operations.
// Envelopes are encrypted payloads split into hashed chunks and can be
// versioned per path.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
	"github.com/allisson/blockcrypt/internal/envelope/http/dto"
	envelopeUseCase "github.com/allisson/blockcrypt/internal/envelope/usecase"
	"github.com/allisson/blockcrypt/internal/httputil"
	customValidation "github.com/allisson/blockcrypt/internal/validation"
)

// EnvelopeHandler handles HTTP requests for envelope management operations.
type EnvelopeHandler struct {
	envelopeUseCase envelopeUseCase.EnvelopeUseCase
	logger          *slog.Logger
}

// NewEnvelopeHandler creates a new envelope handler with required dependencies.
func NewEnvelopeHandler(
	envelopeUseCase envelopeUseCase.EnvelopeUseCase,
	logger *slog.Logger,
) *EnvelopeHandler {
	return &EnvelopeHandler{
		envelopeUseCase: envelopeUseCase,
		logger:          logger,
	}
}

// SealHandler seals a payload into a new envelope version at the path.
// POST /v1/envelopes/*path
// Returns 201 Created with envelope metadata (excludes the payload).
func (h *EnvelopeHandler) SealHandler(c *gin.Context) {
	// Extract and validate path from URL parameter
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("path cannot be empty"),
			h.logger,
		)
		return
	}

	var req dto.SealEnvelopeRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case with the raw payload
	envelope, err := h.envelopeUseCase.Seal(c.Request.Context(), path, req.Payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response with metadata only (no payload)
	response := dto.MapEnvelopeToSealResponse(envelope)
	c.JSON(http.StatusCreated, response)
}

// OpenHandler retrieves, verifies, and decrypts an envelope by path,
// optionally by version.
// GET /v1/envelopes/*path?version=N
// Returns 200 OK with the decrypted payload.
func (h *EnvelopeHandler) OpenHandler(c *gin.Context) {
	// Extract and validate path from URL parameter
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("path cannot be empty"),
			h.logger,
		)
		return
	}

	var envelope *envelopeDomain.Envelope
	var err error

	// Check for version query parameter
	versionStr := c.Query("version")
	if versionStr != "" {
		version, parseErr := strconv.ParseUint(versionStr, 10, 32)
		if parseErr != nil {
			httputil.HandleValidationErrorGin(
				c,
				fmt.Errorf("invalid version parameter: must be a positive integer"),
				h.logger,
			)
			return
		}
		envelope, err = h.envelopeUseCase.OpenVersion(c.Request.Context(), path, uint(version))
	} else {
		envelope, err = h.envelopeUseCase.Open(c.Request.Context(), path)
	}

	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Map to response (includes decrypted payload)
	response := dto.MapEnvelopeToOpenResponse(envelope)
	c.JSON(http.StatusOK, response)
}

// DeleteHandler soft deletes the latest envelope at the path.
// DELETE /v1/envelopes/*path
// Returns 204 No Content.
func (h *EnvelopeHandler) DeleteHandler(c *gin.Context) {
	// Extract and validate path from URL parameter
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("path cannot be empty"),
			h.logger,
		)
		return
	}

	// Call use case
	if err := h.envelopeUseCase.Delete(c.Request.Context(), path); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler retrieves envelope metadata with pagination support.
// GET /v1/envelopes?offset=0&limit=50
// Returns 200 OK with a paginated envelope list (excludes payloads).
func (h *EnvelopeHandler) ListHandler(c *gin.Context) {
	// Parse offset and limit query parameters
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	envelopes, err := h.envelopeUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Map to response
	response := dto.MapEnvelopesToListResponse(envelopes)
	c.JSON(http.StatusOK, response)
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/blockcrypt/internal/envelope/http/dto"
	envelopeUseCase "github.com/allisson/blockcrypt/internal/envelope/usecase"
	"github.com/allisson/blockcrypt/internal/httputil"
	customValidation "github.com/allisson/blockcrypt/internal/validation"
)

// TransportHandler handles stateless encrypt and decrypt operations. Nothing
// is persisted; the chunked artifact travels with the caller.
type TransportHandler struct {
	envelopeUseCase envelopeUseCase.EnvelopeUseCase
	logger          *slog.Logger
}

// NewTransportHandler creates a new transport handler with required dependencies.
func NewTransportHandler(
	envelopeUseCase envelopeUseCase.EnvelopeUseCase,
	logger *slog.Logger,
) *TransportHandler {
	return &TransportHandler{
		envelopeUseCase: envelopeUseCase,
		logger:          logger,
	}
}

// EncryptHandler encrypts a payload into a chunked envelope without persisting it.
// POST /v1/transport/encrypt
// Returns 200 OK with the chunked artifact.
func (h *TransportHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

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
	result, err := h.envelopeUseCase.Encrypt(c.Request.Context(), req.Payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// BlockResult carries its own wire shape
	c.JSON(http.StatusOK, result)
}

// DecryptHandler verifies and decrypts a caller-supplied chunked envelope.
// POST /v1/transport/decrypt
// Returns 200 OK with the decrypted payload.
func (h *TransportHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

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

	// Call use case
	decrypted, err := h.envelopeUseCase.Decrypt(c.Request.Context(), req.ToBlockResult())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapDecryptedEnvelopeToResponse(decrypted)
	c.JSON(http.StatusOK, response)
}

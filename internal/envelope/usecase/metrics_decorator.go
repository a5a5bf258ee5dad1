package usecase

import (
	"context"
	"time"

	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
	"github.com/allisson/blockcrypt/internal/metrics"
)

// envelopeUseCaseWithMetrics decorates EnvelopeUseCase with metrics instrumentation.
type envelopeUseCaseWithMetrics struct {
	next    EnvelopeUseCase
	metrics metrics.BusinessMetrics
}

// NewEnvelopeUseCaseWithMetrics wraps an EnvelopeUseCase with metrics recording.
func NewEnvelopeUseCaseWithMetrics(useCase EnvelopeUseCase, m metrics.BusinessMetrics) EnvelopeUseCase {
	return &envelopeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record reports one operation outcome with its duration.
func (e *envelopeUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "envelopes", operation, status)
	e.metrics.RecordDuration(ctx, "envelopes", operation, time.Since(start), status)
}

// Seal records metrics for envelope seal operations.
func (e *envelopeUseCaseWithMetrics) Seal(
	ctx context.Context,
	path string,
	payload any,
) (*envelopeDomain.Envelope, error) {
	start := time.Now()
	envelope, err := e.next.Seal(ctx, path, payload)
	e.record(ctx, "envelope_seal", start, err)
	return envelope, err
}

// Open records metrics for envelope open operations.
func (e *envelopeUseCaseWithMetrics) Open(
	ctx context.Context,
	path string,
) (*envelopeDomain.Envelope, error) {
	start := time.Now()
	envelope, err := e.next.Open(ctx, path)
	e.record(ctx, "envelope_open", start, err)
	return envelope, err
}

// OpenVersion records metrics for versioned envelope open operations.
func (e *envelopeUseCaseWithMetrics) OpenVersion(
	ctx context.Context,
	path string,
	version uint,
) (*envelopeDomain.Envelope, error) {
	start := time.Now()
	envelope, err := e.next.OpenVersion(ctx, path, version)
	e.record(ctx, "envelope_open_version", start, err)
	return envelope, err
}

// Delete records metrics for envelope deletion operations.
func (e *envelopeUseCaseWithMetrics) Delete(ctx context.Context, path string) error {
	start := time.Now()
	err := e.next.Delete(ctx, path)
	e.record(ctx, "envelope_delete", start, err)
	return err
}

// List records metrics for envelope list operations.
func (e *envelopeUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*envelopeDomain.Envelope, error) {
	start := time.Now()
	envelopes, err := e.next.List(ctx, offset, limit)
	e.record(ctx, "envelope_list", start, err)
	return envelopes, err
}

// Encrypt records metrics for stateless encrypt operations.
func (e *envelopeUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	payload any,
) (*envelopeDomain.BlockResult, error) {
	start := time.Now()
	result, err := e.next.Encrypt(ctx, payload)
	e.record(ctx, "envelope_encrypt", start, err)
	return result, err
}

// Decrypt records metrics for stateless decrypt operations.
func (e *envelopeUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	result *envelopeDomain.BlockResult,
) (*envelopeDomain.DecryptedEnvelope, error) {
	start := time.Now()
	opened, err := e.next.Decrypt(ctx, result)
	e.record(ctx, "envelope_decrypt", start, err)
	return opened, err
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
)

// createTestContext creates a Gin test context with the given request body.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

type mockEnvelopeUseCase struct {
	mock.Mock
}

func (m *mockEnvelopeUseCase) Seal(
	ctx context.Context,
	path string,
	payload any,
) (*envelopeDomain.Envelope, error) {
	args := m.Called(ctx, path, payload)
	if envelope := args.Get(0); envelope != nil {
		return envelope.(*envelopeDomain.Envelope), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnvelopeUseCase) Open(ctx context.Context, path string) (*envelopeDomain.Envelope, error) {
	args := m.Called(ctx, path)
	if envelope := args.Get(0); envelope != nil {
		return envelope.(*envelopeDomain.Envelope), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnvelopeUseCase) OpenVersion(
	ctx context.Context,
	path string,
	version uint,
) (*envelopeDomain.Envelope, error) {
	args := m.Called(ctx, path, version)
	if envelope := args.Get(0); envelope != nil {
		return envelope.(*envelopeDomain.Envelope), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnvelopeUseCase) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *mockEnvelopeUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*envelopeDomain.Envelope, error) {
	args := m.Called(ctx, offset, limit)
	if envelopes := args.Get(0); envelopes != nil {
		return envelopes.([]*envelopeDomain.Envelope), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnvelopeUseCase) Encrypt(
	ctx context.Context,
	payload any,
) (*envelopeDomain.BlockResult, error) {
	args := m.Called(ctx, payload)
	if result := args.Get(0); result != nil {
		return result.(*envelopeDomain.BlockResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnvelopeUseCase) Decrypt(
	ctx context.Context,
	result *envelopeDomain.BlockResult,
) (*envelopeDomain.DecryptedEnvelope, error) {
	args := m.Called(ctx, result)
	if decrypted := args.Get(0); decrypted != nil {
		return decrypted.(*envelopeDomain.DecryptedEnvelope), args.Error(1)
	}
	return nil, args.Error(1)
}

package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
)

func TestMapEnvelopesToListResponse(t *testing.T) {
	t.Run("Success_MultipleEnvelopes", func(t *testing.T) {
		first := testEnvelope()
		second := testEnvelope()
		second.Version = 2

		response := MapEnvelopesToListResponse([]*envelopeDomain.Envelope{first, second})

		assert.Len(t, response.Data, 2)
		assert.Equal(t, first.ID.String(), response.Data[0].ID)
		assert.Equal(t, uint(2), response.Data[1].Version)
	})

	t.Run("Success_EmptyList", func(t *testing.T) {
		response := MapEnvelopesToListResponse(nil)

		assert.NotNil(t, response.Data)
		assert.Empty(t, response.Data)
	})
}

// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
)

// ListEnvelopesResponse represents a paginated list of envelopes in API responses.
type ListEnvelopesResponse struct {
	Data []EnvelopeResponse `json:"data"`
}

// MapEnvelopesToListResponse converts a slice of domain envelopes to a list response.
func MapEnvelopesToListResponse(envelopes []*envelopeDomain.Envelope) ListEnvelopesResponse {
	data := make([]EnvelopeResponse, 0, len(envelopes))
	for _, envelope := range envelopes {
		data = append(data, MapEnvelopeToSealResponse(envelope))
	}

	return ListEnvelopesResponse{
		Data: data,
	}
}

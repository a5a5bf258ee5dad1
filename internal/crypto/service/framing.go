package service

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
)

// legacyDelimiter separates the hex signature from the payload in frames
// issued by older versions. The token is reserved: new frames are
// length-prefixed precisely because a JSON payload may contain it.
const legacyDelimiter = "$::$"

// frameHeaderSize is the width of the big-endian signature length prefix.
const frameHeaderSize = 4

// sign computes the HMAC-SHA512 signature of the payload bytes using the key
// material's signing key.
func sign(payload []byte, km *cryptoDomain.KeyMaterial) []byte {
	mac := hmac.New(sha512.New, km.SigningKey())
	mac.Write(payload)
	return mac.Sum(nil)
}

// encodeFrame builds a length-prefixed frame: a 4-byte big-endian signature
// length, the signature, then the raw payload bytes.
func encodeFrame(signature, payload []byte) []byte {
	frame := make([]byte, frameHeaderSize+len(signature)+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(signature)))
	copy(frame[frameHeaderSize:], signature)
	copy(frame[frameHeaderSize+len(signature):], payload)
	return frame
}

// decodeFrame splits a decrypted frame into signature and payload bytes.
//
// Length-prefixed frames are recognized by their header (the signature length
// is always sha512.Size; a legacy frame starts with a hex character, never a
// zero byte). Anything else is parsed as a legacy "hexsig$::$payload" frame,
// split on the first occurrence of the delimiter.
func decodeFrame(frame []byte) (signature, payload []byte, err error) {
	if len(frame) >= frameHeaderSize {
		sigLen := binary.BigEndian.Uint32(frame[:frameHeaderSize])
		if sigLen == sha512.Size {
			if len(frame) < frameHeaderSize+sha512.Size {
				return nil, nil, cryptoDomain.ErrMalformedPayload
			}
			return frame[frameHeaderSize : frameHeaderSize+sha512.Size],
				frame[frameHeaderSize+sha512.Size:], nil
		}
	}

	if !utf8.Valid(frame) {
		return nil, nil, cryptoDomain.ErrMalformedPayload
	}
	text := string(frame)
	idx := strings.Index(text, legacyDelimiter)
	if idx < 0 {
		return nil, nil, cryptoDomain.ErrMalformedPayload
	}
	signature, err = hex.DecodeString(text[:idx])
	if err != nil {
		return nil, nil, cryptoDomain.ErrMalformedPayload
	}
	return signature, []byte(text[idx+len(legacyDelimiter):]), nil
}

// verifyFrame recomputes the payload signature and compares it in constant
// time against the embedded one. Returns the recomputed signature so callers
// can expose it without re-hashing.
func verifyFrame(signature, payload []byte, km *cryptoDomain.KeyMaterial) ([]byte, error) {
	computed := sign(payload, km)
	if !hmac.Equal(computed, signature) {
		return nil, cryptoDomain.ErrTamperedData
	}
	return computed, nil
}

// marshalPayload serializes the payload for encryption.
func marshalPayload(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, cryptoDomain.ErrSerialization
	}
	return data, nil
}

// decodePayload validates the payload bytes as JSON.
func decodePayload(payload []byte) (json.RawMessage, error) {
	if !json.Valid(payload) {
		return nil, cryptoDomain.ErrDeserialization
	}
	return json.RawMessage(append([]byte(nil), payload...)), nil
}

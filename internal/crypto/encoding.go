package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeBase64 encodes b with standard padded base64.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 decodes standard padded base64. Blank input decodes to an
// empty slice; invalid input is reported as [ErrMalformedInput].
func DecodeBase64(s string) ([]byte, error) {
	if strings.TrimSpace(s) == "" {
		return []byte{}, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrMalformedInput, err)
	}
	return b, nil
}

// IsEnvelope reports whether s carries the envelope prefix. Anything else is
// treated as plaintext by [KeyChainService.Decrypt].
func IsEnvelope(s string) bool {
	return strings.HasPrefix(s, envelopePrefix)
}

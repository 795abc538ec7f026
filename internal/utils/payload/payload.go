package payload

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// Claims is the decoded content of a payment request payload. Everything a payer
// needs to redeem the request travels inside the encoded string itself.
type Claims struct {
	Kind        domain.PaymentRequestKind `json:"kind"`
	Reference   string                    `json:"reference"`
	KeyValue    string                    `json:"keyValue"`
	Amount      decimal.Decimal           `json:"amount"`
	Description string                    `json:"description,omitempty"`
	ExpiresAt   *time.Time                `json:"expiresAt,omitempty"`
}

// Encode serializes the claims into the opaque string embedded in a payment request.
func Encode(claims Claims) (string, error) {
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload claims: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode parses an encoded payload back into its claims.
func Decode(encoded string) (*Claims, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid payment request payload (base64 decode): %w", err)
	}
	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("invalid payment request payload (unmarshal): %w", err)
	}
	if claims.Kind != domain.RequestStatic && claims.Kind != domain.RequestDynamic {
		return nil, fmt.Errorf("invalid payment request payload (unknown kind %q)", claims.Kind)
	}
	return &claims, nil
}

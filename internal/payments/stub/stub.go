package stub

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Stub provider:
// - CreateOrder mints a local order id.
// - VerifyWebhook expects an HMAC SHA-256 hex signature over the raw body.

type Provider struct {
	secret string
}

func New(secret string) *Provider {
	return &Provider{secret: secret}
}

func (p *Provider) Name() string { return "stub" }

func (p *Provider) CreateOrder(ctx context.Context, receipt string, amount int64) (string, error) {
	return "order_" + uuid.NewString(), nil
}

type webhookPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"` // paid/failed
}

func (p *Provider) VerifyWebhook(body []byte, signature string) (string, string, error) {
	mac := hmac.New(sha256.New, []byte(p.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if signature == "" || !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", "", fmt.Errorf("invalid signature")
	}

	var pl webhookPayload
	if err := json.Unmarshal(body, &pl); err != nil {
		return "", "", err
	}
	if pl.OrderID == "" {
		return "", "", fmt.Errorf("bad order id")
	}

	status := strings.TrimSpace(pl.Status)
	if status == "" {
		status = "paid"
	}

	return pl.OrderID, status, nil
}

package payments

import "context"

// Provider abstracts the payment gateway used for hackathon entry fees.
type Provider interface {
	Name() string

	// CreateOrder registers an order with the gateway and returns its id.
	// Amounts are in the smallest currency unit.
	CreateOrder(ctx context.Context, receipt string, amount int64) (orderID string, err error)

	// VerifyWebhook checks the gateway signature and decodes the settlement
	// notification. Status is "paid" or "failed".
	VerifyWebhook(body []byte, signature string) (orderID string, status string, err error)
}

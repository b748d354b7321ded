package payments

import (
	"fmt"

	"github.com/eventra/eventra-api/internal/config"
	"github.com/eventra/eventra-api/internal/payments/stub"
)

func NewProvider(conf *config.PaymentsConfig) (Provider, error) {
	switch conf.Provider {
	case "stub":
		return stub.New(conf.WebhookSecret), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", conf.Provider)
	}
}

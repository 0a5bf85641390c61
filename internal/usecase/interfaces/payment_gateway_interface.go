package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// The pay-now finalize flow uses it to charge the order total before the PAGO
// transition is committed. A nil gateway means payments are settled off-system
// (cash drawer) and the charge step is skipped.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}

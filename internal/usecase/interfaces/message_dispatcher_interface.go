package interfaces

import "context"

// IMessageDispatcher abstracts the outbound messaging channel used for
// collection notices (WhatsApp via Twilio in production).
type IMessageDispatcher interface {
	SendWhatsApp(ctx context.Context, phone, body string) (messageSID string, err error)
}

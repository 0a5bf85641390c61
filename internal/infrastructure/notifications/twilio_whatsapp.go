package notifications

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"oficina_pro/internal/usecase/interfaces"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrMissingTwilioCredentials = errors.New("missing TWILIO_ACCOUNT_SID or TWILIO_AUTH_TOKEN")
var ErrTwilioDispatcherNotConfigured = errors.New("twilio dispatcher not configured")

// TwilioWhatsAppDispatcher sends collection notices over WhatsApp using the
// Twilio messaging API.
//
// Env vars:
//   - TWILIO_ACCOUNT_SID
//   - TWILIO_AUTH_TOKEN
//   - TWILIO_WHATSAPP_NUMBER (sender, E.164 without the whatsapp: prefix)
//   - MESSAGE_DISPATCHER_MOCK (optional; logs instead of sending)

type TwilioWhatsAppDispatcher struct {
	client   *twilio.RestClient
	from     string
	mockMode bool
}

var _ interfaces.IMessageDispatcher = (*TwilioWhatsAppDispatcher)(nil)

func NewTwilioWhatsAppDispatcher() (*TwilioWhatsAppDispatcher, error) {
	if isDispatcherMockEnabled() {
		log.Printf("[notice][dispatcher] mock mode enabled")
		return &TwilioWhatsAppDispatcher{mockMode: true}, nil
	}

	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if accountSid == "" || authToken == "" {
		log.Printf("[notice][dispatcher] missing twilio credentials")
		return nil, ErrMissingTwilioCredentials
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	log.Printf("[notice][dispatcher] Twilio client initialized")

	return &TwilioWhatsAppDispatcher{
		client: client,
		from:   os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}, nil
}

func (d *TwilioWhatsAppDispatcher) SendWhatsApp(ctx context.Context, phone, body string) (string, error) {
	if d != nil && d.mockMode {
		log.Printf("[notice][dispatcher] mock send to=%s body_len=%d", phone, len(body))
		return "mock-" + strings.ReplaceAll(phone, "+", ""), nil
	}
	if d == nil || d.client == nil {
		return "", ErrTwilioDispatcherNotConfigured
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + phone)
	params.SetFrom("whatsapp:" + d.from)
	params.SetBody(body)

	resp, err := d.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("[notice][dispatcher] send failed to=%s err=%v", phone, err)
		return "", err
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	log.Printf("[notice][dispatcher] send success to=%s sid=%s", phone, sid)
	return sid, nil
}

func isDispatcherMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("MESSAGE_DISPATCHER_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

// Package twilio delivers complaint documents over WhatsApp through the
// Twilio messaging API.
package twilio

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Messenger implements ports.Messenger using the Twilio REST client.
type Messenger struct {
	client *twilio.RestClient
	from   string
}

// NewMessenger creates a messenger sending from the given WhatsApp number
// (e.g. "whatsapp:+14155238886").
func NewMessenger(accountSID, authToken, from string) *Messenger {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Messenger{client: client, from: from}
}

// SendDocument sends the stored document as a media message and returns the
// provider message SID.
func (m *Messenger) SendDocument(ctx context.Context, identity, documentURL string) (string, error) {
	params := &openapi.CreateMessageParams{}
	params.SetFrom(m.from)
	params.SetTo(identity)
	params.SetBody("📄 Your Cyber Crime Complaint Form")
	params.SetMediaUrl([]string{documentURL})

	msg, err := m.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to send document: %w", err)
	}
	if msg.Sid == nil {
		return "", nil
	}
	return *msg.Sid, nil
}

package twilio

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/cwygoda/rentwatch/internal/config"
)

// messageCreator is the slice of the Twilio REST client the notifier needs.
type messageCreator interface {
	CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error)
}

// Notifier implements domain.Notifier over the Twilio SMS API. Sends are
// synchronous, one message per call; delivery failures are returned to the
// caller and never retried here.
type Notifier struct {
	messages messageCreator
	from     string
	to       string
}

// New creates a notifier from Twilio credentials.
func New(creds config.TwilioConfig) *Notifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: creds.AccountSID,
		Password: creds.AuthToken,
	})
	return &Notifier{
		messages: client.Api,
		from:     creds.FromNumber,
		to:       creds.ToNumber,
	}
}

// Send delivers one SMS with the given body.
func (n *Notifier) Send(ctx context.Context, message string) error {
	params := &api.CreateMessageParams{}
	params.SetFrom(n.from)
	params.SetTo(n.to)
	params.SetBody(message)

	resp, err := n.messages.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	if resp.Sid != nil {
		log.Info("sms sent", "sid", *resp.Sid)
	}
	return nil
}

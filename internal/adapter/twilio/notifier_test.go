package twilio

import (
	"context"
	"errors"
	"testing"

	api "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/cwygoda/rentwatch/internal/config"
)

// fakeMessages records CreateMessage calls in place of the Twilio API.
type fakeMessages struct {
	params []*api.CreateMessageParams
	err    error
}

func (f *fakeMessages) CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &api.ApiV2010Message{Sid: &sid}, nil
}

func TestNotifier_Send(t *testing.T) {
	fake := &fakeMessages{}
	n := &Notifier{messages: fake, from: "+15550001111", to: "+447700900000"}

	if err := n.Send(context.Background(), "New listing!"); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if len(fake.params) != 1 {
		t.Fatalf("CreateMessage called %d times, want 1", len(fake.params))
	}
	params := fake.params[0]
	if params.Body == nil || *params.Body != "New listing!" {
		t.Errorf("Body = %v, want message text", params.Body)
	}
	if params.From == nil || *params.From != "+15550001111" {
		t.Errorf("From = %v", params.From)
	}
	if params.To == nil || *params.To != "+447700900000" {
		t.Errorf("To = %v", params.To)
	}
}

func TestNotifier_SendFailure(t *testing.T) {
	fake := &fakeMessages{err: errors.New("delivery refused")}
	n := &Notifier{messages: fake, from: "+15550001111", to: "+447700900000"}

	if err := n.Send(context.Background(), "New listing!"); err == nil {
		t.Error("Send() error = nil, want delivery error")
	}
}

func TestNew(t *testing.T) {
	n := New(config.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		FromNumber: "+15550001111",
		ToNumber:   "+447700900000",
	})

	if n.messages == nil {
		t.Error("messages client not initialized")
	}
	if n.from != "+15550001111" || n.to != "+447700900000" {
		t.Errorf("numbers = %q -> %q", n.from, n.to)
	}
}

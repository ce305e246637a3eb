package notify

import (
	"context"
	"errors"
	"testing"
)

type fakeSender struct {
	chat, text string
	err        error
}

func (f *fakeSender) SendText(_ context.Context, chat, text string) error {
	f.chat, f.text = chat, text
	return f.err
}

type fakeRecorder struct{ remembered []string }

func (f *fakeRecorder) RememberReply(text string) { f.remembered = append(f.remembered, text) }

func TestSendRecordsBeforeSending(t *testing.T) {
	s := &fakeSender{}
	r := &fakeRecorder{}
	d := NewDispatcher(s, "user@s.whatsapp.net", r)

	if err := d.Send(context.Background(), "hi there"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.chat != "user@s.whatsapp.net" || s.text != "hi there" {
		t.Fatalf("sent to %q text %q", s.chat, s.text)
	}
	if len(r.remembered) != 1 || r.remembered[0] != "hi there" {
		t.Fatalf("reply not recorded: %+v", r.remembered)
	}
}

func TestSendReturnsTransportError(t *testing.T) {
	s := &fakeSender{err: errors.New("disconnected")}
	d := NewDispatcher(s, "user@s.whatsapp.net", nil)

	if err := d.Send(context.Background(), "hi"); err == nil {
		t.Fatalf("expected transport error")
	}
}

package notify

import (
	"context"
	"log"
)

// Sender is the outbound half of the messaging transport.
type Sender interface {
	SendText(ctx context.Context, chat, text string) error
}

// Recorder remembers outgoing text so the loop guard can recognize the
// echo of our own replies.
type Recorder interface {
	RememberReply(text string)
}

// Dispatcher sends messages to the single authorized chat. It is used
// for direct command replies and for asynchronous alerts alike.
// Delivery is at-most-once, best-effort: a transport error is logged
// and returned, never retried or queued.
type Dispatcher struct {
	sender   Sender
	chat     string
	recorder Recorder
}

func NewDispatcher(sender Sender, chat string, recorder Recorder) *Dispatcher {
	return &Dispatcher{sender: sender, chat: chat, recorder: recorder}
}

func (d *Dispatcher) Send(ctx context.Context, text string) error {
	if d.recorder != nil {
		d.recorder.RememberReply(text)
	}
	if err := d.sender.SendText(ctx, d.chat, text); err != nil {
		log.Printf("❌ Failed to send message: %v", err)
		return err
	}
	return nil
}

package loopguard

import (
	"fmt"
	"testing"
)

func TestEchoConsumedThenProcessed(t *testing.T) {
	g := New("")
	g.RememberReply("X")

	// Echo of our own reply is discarded and consumed.
	if g.ShouldProcess("chat", "m1", "X", true) {
		t.Fatalf("echo of sent reply was processed")
	}
	// The same text typed again by the user is a legitimate command.
	if !g.ShouldProcess("chat", "m2", "X", true) {
		t.Fatalf("repeated text after consumption was discarded")
	}
}

func TestDuplicateMessageIDDiscarded(t *testing.T) {
	g := New("")
	if !g.ShouldProcess("chat", "m1", "hello", true) {
		t.Fatalf("first delivery discarded")
	}
	if g.ShouldProcess("chat", "m1", "hello", true) {
		t.Fatalf("duplicate delivery processed")
	}
	if !g.ShouldProcess("chat", "m2", "hello", true) {
		t.Fatalf("new message id discarded")
	}
}

func TestDuplicateDeliveryOfConsumedEcho(t *testing.T) {
	g := New("")
	g.RememberReply("X")

	if g.ShouldProcess("chat", "e1", "X", true) {
		t.Fatalf("echo of sent reply was processed")
	}
	// The transport redelivers the same event: the text match already
	// consumed the cache entry, so only the id can reject it.
	if g.ShouldProcess("chat", "e1", "X", true) {
		t.Fatalf("duplicate delivery of consumed echo was processed")
	}
}

func TestTargetChatScoping(t *testing.T) {
	g := New("me@s.whatsapp.net")
	if g.ShouldProcess("other@s.whatsapp.net", "m1", "hi", true) {
		t.Fatalf("message outside target chat processed")
	}
	if !g.ShouldProcess("me@s.whatsapp.net", "m2", "hi", true) {
		t.Fatalf("message in target chat discarded")
	}
}

func TestOthersMessagesAlwaysProcessed(t *testing.T) {
	g := New("")
	g.RememberReply("X")
	// Not self-authored: reply matching doesn't apply.
	if !g.ShouldProcess("chat", "m1", "X", false) {
		t.Fatalf("non-self message discarded")
	}
}

func TestOldestReplyEvictedFirst(t *testing.T) {
	g := New("")
	for i := 0; i < 11; i++ {
		g.RememberReply(fmt.Sprintf("reply-%d", i))
	}
	// reply-0 was evicted, so its echo is treated as a new command.
	if !g.ShouldProcess("chat", "m1", "reply-0", true) {
		t.Fatalf("evicted reply still matched")
	}
	// reply-1..10 are still cached.
	if g.ShouldProcess("chat", "m2", "reply-10", true) {
		t.Fatalf("cached reply processed")
	}
}

package loopguard

import "sync"

// recentCapacity bounds the recent-replies cache; the oldest entry is
// evicted first.
const recentCapacity = 10

// Guard prevents the bot from re-processing its own sent messages when
// it runs in "talk to yourself" mode: the account that sends commands is
// the same account the bot replies from, so every reply comes back as an
// inbound self-authored event.
type Guard struct {
	mu         sync.Mutex
	targetChat string
	lastMsgID  string
	recentSent []string
}

// New creates a guard. If targetChat is non-empty, events from any other
// chat are ignored entirely.
func New(targetChat string) *Guard {
	return &Guard{targetChat: targetChat}
}

// RememberReply records an outgoing reply so its echo can be recognized
// and discarded. Called just before sending.
func (g *Guard) RememberReply(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recentSent = append(g.recentSent, text)
	if len(g.recentSent) > recentCapacity {
		g.recentSent = g.recentSent[1:]
	}
}

// ShouldProcess decides whether an inbound event is a genuine command.
// Matching a remembered reply consumes the entry, so an identical text
// arriving again afterwards is processed normally.
func (g *Guard) ShouldProcess(chat, msgID, body string, fromMe bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.targetChat != "" && chat != g.targetChat {
		return false
	}
	if !fromMe {
		return true
	}

	// Duplicate delivery of the same transport message.
	if msgID != "" && msgID == g.lastMsgID {
		return false
	}
	// Remember the id before the echo match: a discarded echo must still
	// shield against a duplicate delivery of the same event.
	g.lastMsgID = msgID

	for i, sent := range g.recentSent {
		if sent == body {
			g.recentSent = append(g.recentSent[:i], g.recentSent[i+1:]...)
			return false
		}
	}
	return true
}

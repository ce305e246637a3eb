package history

import (
	"sync"

	"accountabot/internal/llm"
)

// maxEntries bounds the conversation context sent to the LLM.
const maxEntries = 20

// Manager keeps the rolling conversation between the user and the bot.
// There is a single conversation: the bot serves one authorized chat.
type Manager struct {
	mu      sync.RWMutex
	entries []llm.Message
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) AppendUser(content string) {
	m.append(llm.Message{Role: "user", Content: content})
}

func (m *Manager) AppendAssistant(content string) {
	m.append(llm.Message{Role: "assistant", Content: content})
}

func (m *Manager) append(msg llm.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, msg)
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

func (m *Manager) Get() []llm.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]llm.Message, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}

// Package history provides bounded in-memory conversation and command
// history. Both containers drop their oldest entries once the configured
// bound is reached, so size never exceeds the bound.
package history

import "sync"

// Message is a single (role, content) exchange with the model.
type Message struct {
	Role    string
	Content string
}

// Conversation is a size-bounded rolling list of chat messages.
type Conversation struct {
	mu       sync.Mutex
	messages []Message
	limit    int
}

// NewConversation creates a conversation capped at limit messages.
func NewConversation(limit int) *Conversation {
	if limit <= 0 {
		limit = 20
	}
	return &Conversation{limit: limit}
}

// Add appends a message, dropping the oldest entries beyond the bound.
func (c *Conversation) Add(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, Message{Role: role, Content: content})
	if len(c.messages) > c.limit {
		c.messages = append([]Message(nil), c.messages[len(c.messages)-c.limit:]...)
	}
}

// LastN returns up to n most recent messages, oldest first.
func (c *Conversation) LastN(n int) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 {
		return nil
	}
	if n > len(c.messages) {
		n = len(c.messages)
	}
	out := make([]Message, n)
	copy(out, c.messages[len(c.messages)-n:])
	return out
}

// Len returns the current number of messages.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// Limit returns the configured bound.
func (c *Conversation) Limit() int {
	return c.limit
}

// SetLimit adjusts the bound, truncating immediately if needed.
func (c *Conversation) SetLimit(limit int) {
	if limit <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = limit
	if len(c.messages) > limit {
		c.messages = append([]Message(nil), c.messages[len(c.messages)-limit:]...)
	}
}

// Clear removes all messages.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

// CommandLog is a size-bounded list of submitted commands, used by the
// history tab and input recall.
type CommandLog struct {
	mu      sync.Mutex
	entries []string
	limit   int
}

// NewCommandLog creates a command log capped at limit entries.
func NewCommandLog(limit int) *CommandLog {
	if limit <= 0 {
		limit = 10
	}
	return &CommandLog{limit: limit}
}

// Add appends a command, dropping the oldest entries beyond the bound.
func (l *CommandLog) Add(command string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, command)
	if len(l.entries) > l.limit {
		l.entries = append([]string(nil), l.entries[len(l.entries)-l.limit:]...)
	}
}

// All returns the commands, oldest first.
func (l *CommandLog) All() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// At returns the i-th command from the end (0 = most recent).
func (l *CommandLog) At(i int) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.entries) {
		return "", false
	}
	return l.entries[len(l.entries)-1-i], true
}

// Len returns the current number of commands.
func (l *CommandLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// SetLimit adjusts the bound, truncating immediately if needed.
func (l *CommandLog) SetLimit(limit int) {
	if limit <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limit = limit
	if len(l.entries) > limit {
		l.entries = append([]string(nil), l.entries[len(l.entries)-limit:]...)
	}
}

// Clear removes all commands.
func (l *CommandLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

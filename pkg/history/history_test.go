package history

import (
	"fmt"
	"testing"
)

func TestConversationBound(t *testing.T) {
	c := NewConversation(4)

	for i := 0; i < 10; i++ {
		c.Add("user", fmt.Sprintf("message %d", i))
	}

	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}

	msgs := c.LastN(4)
	if msgs[0].Content != "message 6" {
		t.Errorf("oldest kept = %q, want %q", msgs[0].Content, "message 6")
	}
	if msgs[3].Content != "message 9" {
		t.Errorf("newest kept = %q, want %q", msgs[3].Content, "message 9")
	}
}

func TestConversationLastN(t *testing.T) {
	c := NewConversation(10)
	c.Add("user", "first")
	c.Add("assistant", "second")
	c.Add("user", "third")

	tests := []struct {
		n    int
		want []string
	}{
		{0, nil},
		{-1, nil},
		{2, []string{"second", "third"}},
		{3, []string{"first", "second", "third"}},
		{99, []string{"first", "second", "third"}},
	}

	for _, tt := range tests {
		got := c.LastN(tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("LastN(%d) returned %d messages, want %d", tt.n, len(got), len(tt.want))
			continue
		}
		for i, msg := range got {
			if msg.Content != tt.want[i] {
				t.Errorf("LastN(%d)[%d] = %q, want %q", tt.n, i, msg.Content, tt.want[i])
			}
		}
	}
}

func TestConversationSetLimitTruncates(t *testing.T) {
	c := NewConversation(10)
	for i := 0; i < 6; i++ {
		c.Add("user", fmt.Sprintf("m%d", i))
	}

	c.SetLimit(2)

	if c.Len() != 2 {
		t.Fatalf("Len() after SetLimit(2) = %d, want 2", c.Len())
	}
	msgs := c.LastN(2)
	if msgs[0].Content != "m4" || msgs[1].Content != "m5" {
		t.Errorf("kept messages = %q, %q; want m4, m5", msgs[0].Content, msgs[1].Content)
	}
}

func TestConversationClear(t *testing.T) {
	c := NewConversation(10)
	c.Add("user", "hello")
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestConversationDefaultLimit(t *testing.T) {
	c := NewConversation(0)
	if c.Limit() != 20 {
		t.Errorf("Limit() = %d, want default 20", c.Limit())
	}
}

func TestCommandLogBound(t *testing.T) {
	l := NewCommandLog(3)
	for i := 0; i < 7; i++ {
		l.Add(fmt.Sprintf("cmd %d", i))
	}

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	all := l.All()
	want := []string{"cmd 4", "cmd 5", "cmd 6"}
	for i, cmd := range all {
		if cmd != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, cmd, want[i])
		}
	}
}

func TestCommandLogAt(t *testing.T) {
	l := NewCommandLog(10)
	l.Add("oldest")
	l.Add("middle")
	l.Add("newest")

	tests := []struct {
		i    int
		want string
		ok   bool
	}{
		{0, "newest", true},
		{1, "middle", true},
		{2, "oldest", true},
		{3, "", false},
		{-1, "", false},
	}

	for _, tt := range tests {
		got, ok := l.At(tt.i)
		if got != tt.want || ok != tt.ok {
			t.Errorf("At(%d) = %q, %v; want %q, %v", tt.i, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCommandLogSetLimit(t *testing.T) {
	l := NewCommandLog(10)
	for i := 0; i < 5; i++ {
		l.Add(fmt.Sprintf("c%d", i))
	}

	l.SetLimit(2)
	if l.Len() != 2 {
		t.Fatalf("Len() after SetLimit(2) = %d, want 2", l.Len())
	}
	if got, _ := l.At(0); got != "c4" {
		t.Errorf("At(0) = %q, want c4", got)
	}

	// A non-positive limit is ignored.
	l.SetLimit(0)
	if l.Len() != 2 {
		t.Errorf("Len() after SetLimit(0) = %d, want 2", l.Len())
	}
}

package server

import (
	"errors"
	"testing"
	"time"

	"github.com/glint-dev/glint/pkg/protocol"
)

func testConfig() *Config {
	c := DefaultConfig()
	c.QueueDepth = 2
	return c
}

func TestSessionPush(t *testing.T) {
	s := newSession("s1", nil, testConfig())

	if err := s.Push(&protocol.Delta{Kind: "toast", Seq: 1}); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := s.Push(&protocol.Delta{Kind: "toast", Seq: 2}); err != nil {
		t.Fatalf("Push: %v", err)
	}
	// Queue depth is 2; the third push must fail fast, not block.
	if err := s.Push(&protocol.Delta{Kind: "toast", Seq: 3}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
}

func TestSessionPushAfterClose(t *testing.T) {
	s := newSession("s1", nil, testConfig())
	s.Close()

	if err := s.Push(&protocol.Delta{Kind: "toast"}); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	closes := 0
	s := newSession("s1", nil, testConfig())
	s.onClose = func(*Session) { closes++ }

	s.Close()
	s.Close()
	if closes != 1 {
		t.Errorf("onClose ran %d times", closes)
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(testConfig())

	s1, err := m.Create(nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s2, err := m.Create(nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s1.ID == s2.ID {
		t.Error("session IDs should be unique")
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d", m.Len())
	}
	if got := m.Get(s1.ID); got != s1 {
		t.Error("Get returned wrong session")
	}

	s1.Close()
	if m.Len() != 1 {
		t.Errorf("Len after close = %d", m.Len())
	}
	if m.Get(s1.ID) != nil {
		t.Error("closed session still registered")
	}

	stats := m.Stats()
	if stats.TotalCreated != 2 || stats.TotalClosed != 1 || stats.Active != 1 || stats.Peak != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestManagerCap(t *testing.T) {
	c := testConfig()
	c.MaxSessions = 1
	m := NewManager(c)

	if _, err := m.Create(nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.Create(nil); !errors.Is(err, ErrTooManySessions) {
		t.Errorf("expected ErrTooManySessions, got %v", err)
	}
}

func TestManagerSweep(t *testing.T) {
	m := NewManager(testConfig())
	s, _ := m.Create(nil)

	s.lastActive.Store(time.Now().Add(-time.Hour).UnixNano())
	if n := m.Sweep(time.Minute); n != 1 {
		t.Errorf("Sweep = %d", n)
	}
	if m.Len() != 0 {
		t.Errorf("Len after sweep = %d", m.Len())
	}
}

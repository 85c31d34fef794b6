package handlers

import (
	"os"
	"testing"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

func TestHub(t *testing.T) {
	h := hub{sockets: cmap.New[[]*socket]()}
	var got [][]byte
	alive := &socket{send: func(data []byte) bool {
		got = append(got, data)
		return true
	}}
	dead := &socket{send: func([]byte) bool { return false }}

	h.add(1, alive)
	h.add(1, dead)
	h.add(2, dead)

	tests := []struct {
		name   string
		userID uint64
		want   int
	}{
		{"one alive socket", 1, 1},
		{"dead socket", 2, 0},
		{"not connected", 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := h.sendTo(tt.userID, []byte("hi")); n != tt.want {
				t.Errorf("sendTo(%d) = %d, want %d", tt.userID, n, tt.want)
			}
		})
	}
	if len(got) != 1 || string(got[0]) != "hi" {
		t.Errorf("received %q", got)
	}
	if sockets, _ := h.sockets.Get(hubKey(1)); len(sockets) != 1 {
		t.Errorf("user 1 sockets = %d, want 1", len(sockets))
	}
	if h.sockets.Has(hubKey(2)) {
		t.Error("user 2 still registered after its only socket died")
	}
	h.remove(1, alive)
	if !h.empty() {
		t.Error("hub not empty")
	}
}

// stalledConn accepts writes until the peer stops reading, then times out
type stalledConn struct {
	accept    int
	writes    int
	deadlines []time.Time
	closed    bool
}

func (c *stalledConn) SetWriteDeadline(t time.Time) error {
	c.deadlines = append(c.deadlines, t)
	return nil
}

func (c *stalledConn) WriteMessage(_ int, _ []byte) error {
	c.writes++
	if c.writes > c.accept {
		return os.ErrDeadlineExceeded
	}
	return nil
}

func (c *stalledConn) Close() error {
	c.closed = true
	return nil
}

func TestNewSocket_writeDeadline(t *testing.T) {
	conn := &stalledConn{accept: 1}
	s, _ := newSocket(conn, 1)
	h := hub{sockets: cmap.New[[]*socket]()}
	h.add(1, s)

	tests := []struct {
		name       string
		wantSent   int
		wantWrites int
	}{
		{"reading peer", 1, 1},
		{"stalled peer", 0, 2},
		{"closed socket", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := time.Now()
			if n := h.sendTo(1, []byte("new post")); n != tt.wantSent {
				t.Errorf("sendTo() = %d, want %d", n, tt.wantSent)
			}
			if conn.writes != tt.wantWrites {
				t.Errorf("writes = %d, want %d", conn.writes, tt.wantWrites)
			}
			if len(conn.deadlines) != conn.writes {
				t.Fatalf("deadlines = %d for %d writes", len(conn.deadlines), conn.writes)
			}
			if last := conn.deadlines[len(conn.deadlines)-1]; last.Before(before.Add(writeWait)) && tt.name != "closed socket" {
				t.Errorf("deadline %v is less than writeWait ahead", last)
			}
		})
	}
	if !conn.closed {
		t.Error("connection not closed after the timed out write")
	}
	if !h.empty() {
		t.Error("timed out socket still registered")
	}
}

func TestNewSocket_closed(t *testing.T) {
	conn := &stalledConn{accept: 10}
	s, closeSocket := newSocket(conn, 1)
	closeSocket()
	if s.send([]byte("late")) || conn.writes != 0 {
		t.Errorf("send after close wrote %d messages", conn.writes)
	}
}

package ws

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder is a Conn that fails the test if two writes overlap.
type recorder struct {
	mu      sync.Mutex
	writing bool
	msgs    []Message
	failOn  int
	closed  bool
	overlap bool
}

func (r *recorder) WriteJSON(v interface{}) error {
	r.mu.Lock()
	if r.writing {
		r.overlap = true
	}
	r.writing = true
	r.mu.Unlock()

	time.Sleep(time.Millisecond)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.writing = false
	if r.failOn > 0 && len(r.msgs)+1 == r.failOn {
		return errors.New("broken pipe")
	}
	r.msgs = append(r.msgs, v.(Message))
	return nil
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recorder) snapshot() ([]Message, bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...), r.closed, r.overlap
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClientWritesInOrder(t *testing.T) {
	conn := &recorder{}
	c := NewClient(conn, 8)
	go c.Run()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Send(ErrorMessage("concurrent"))
		}()
	}
	wg.Wait()
	for _, text := range []string{"first", "second", "third"} {
		if !c.Send(ErrorMessage(text)) {
			t.Fatalf("Send(%s) = false", text)
		}
	}

	waitFor(t, func() bool {
		msgs, _, _ := conn.snapshot()
		return len(msgs) == 7
	})
	c.Close()
	c.Wait()

	msgs, closed, overlap := conn.snapshot()
	if overlap {
		t.Error("two writes overlapped on one connection")
	}
	if !closed {
		t.Error("Close did not close the connection")
	}
	tail := []string{`"first"`, `"second"`, `"third"`}
	for i, want := range tail {
		if got := string(msgs[4+i].Payload); got != want {
			t.Errorf("message %d = %s; want %s", 4+i, got, want)
		}
	}
}

func TestClientSendAfterClose(t *testing.T) {
	c := NewClient(&recorder{}, 1)
	c.Close()
	c.Close()
	if c.Send(ErrorMessage("late")) {
		t.Error("Send after Close = true")
	}
	select {
	case <-c.Done():
	default:
		t.Error("Done not closed after Close")
	}
}

func TestClientFullQueue(t *testing.T) {
	c := NewClient(&recorder{}, 1)
	if !c.Send(ErrorMessage("one")) {
		t.Fatal("first Send = false")
	}
	if c.Send(ErrorMessage("two")) {
		t.Error("Send on a full queue = true")
	}
}

func TestClientStopsOnWriteError(t *testing.T) {
	conn := &recorder{failOn: 2}
	c := NewClient(conn, 4)
	c.Send(ErrorMessage("ok"))
	c.Send(ErrorMessage("fails"))

	if err := c.Run(); err == nil {
		t.Error("Run() = nil after a failed write")
	}
	if _, closed, _ := conn.snapshot(); !closed {
		t.Error("failed write did not close the connection")
	}
}

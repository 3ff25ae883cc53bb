package bridge

import (
	"context"
	"encoding"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/joyterm/joyterm/internal/log"
)

// readyMarker is the single byte the bridge pushes on the stream once the
// console has accepted the controller.
const readyMarker = 0x01

// Stream is the long-lived report connection for one attached controller.
// It satisfies pad.Link.
type Stream struct {
	conn         net.Conn
	ControllerID string
	capture      log.Capture

	readyOnce sync.Once
	readyErr  error
	closed    bool
	mu        sync.Mutex
}

// OpenStream connects to an attached controller's report stream. The
// controller must already exist on the bridge (use Attach first).
func (c *Client) OpenStream(ctx context.Context, controllerID string) (*Stream, error) {
	return c.OpenStreamCapture(ctx, controllerID, nil)
}

// OpenStreamCapture is OpenStream with a HID capture log attached.
func (c *Client) OpenStreamCapture(ctx context.Context, controllerID string, capture log.Capture) (*Stream, error) {
	if c.transport.mock != nil {
		return nil, fmt.Errorf("stream connections not supported with mock transport")
	}
	conn, err := c.transport.dial(ctx)
	if err != nil {
		return nil, err
	}

	path := "ctl/" + controllerID + "/stream\x00"
	if _, err := conn.Write([]byte(path)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write stream path: %w", err)
	}

	if capture == nil {
		capture = log.NewCapture(nil)
	}
	return &Stream{conn: conn, ControllerID: controllerID, capture: capture}, nil
}

// Ready blocks until the bridge reports the console paired, the context is
// done, or the connection fails. The outcome is memoized: a stream becomes
// ready at most once.
func (s *Stream) Ready(ctx context.Context) error {
	s.readyOnce.Do(func() { s.readyErr = s.awaitReady(ctx) })
	return s.readyErr
}

func (s *Stream) awaitReady(ctx context.Context) error {
	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = s.conn.SetReadDeadline(time.Now())
		case <-stop:
		}
	}()
	defer close(stop)

	var b [1]byte
	if _, err := io.ReadFull(s.conn, b[:]); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("connect: %w", ctx.Err())
		}
		return fmt.Errorf("connect: %w", err)
	}
	_ = s.conn.SetReadDeadline(time.Time{})
	if b[0] != readyMarker {
		return fmt.Errorf("connect: unexpected stream byte 0x%02x", b[0])
	}
	return nil
}

// WriteReport marshals and transmits one input report.
func (s *Stream) WriteReport(r encoding.BinaryMarshaler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("stream closed")
	}
	data, err := r.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if _, err := s.conn.Write(data); err != nil {
		return fmt.Errorf("transmit: %w", err)
	}
	s.capture.Log(true, data)
	return nil
}

// Close tears down the stream connection.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/joyterm/joyterm/bridge/auth"
)

// Config controls low-level transport behavior.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Key is the bridge access key; empty disables the auth handshake.
	Key string
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Transport speaks the bridge control protocol. Request framing:
// `<path>[ SP <payload>]\x00`; the bridge answers with a single JSON line (or
// an empty line on bare success) and closes the connection.
type Transport struct {
	addr string
	cfg  Config
	mock func(path string, payload any) (string, error)
}

// NewTransport creates a transport for the given bridge address.
func NewTransport(addr string) *Transport { return NewTransportWithConfig(addr, nil) }

// NewTransportWithConfig creates a transport with explicit timeouts and key.
func NewTransportWithConfig(addr string, cfg *Config) *Transport {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Transport{addr: addr, cfg: c}
}

// NewMockTransport returns canned responses without real networking.
func NewMockTransport(responder func(path string, payload any) (string, error)) *Transport {
	return &Transport{addr: "mock", mock: responder, cfg: defaultConfig()}
}

// DoCtx sends one control request and returns the response line. Payload
// rules: []byte and string are sent as-is, anything else is JSON marshaled,
// nil appends nothing. A JSON error envelope in the response is returned as
// *Error.
func (t *Transport) DoCtx(ctx context.Context, path string, payload any) (string, error) {
	if t.mock != nil {
		return t.mock(path, payload)
	}

	line := []byte(path)
	if pb, ok := toPayloadBytes(payload); ok && len(pb) > 0 {
		line = append(append([]byte(path), ' '), pb...)
	}

	conn, err := t.dial(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if t.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
	}
	if _, err := conn.Write(append(line, '\x00')); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}

	if t.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(t.cfg.ReadTimeout))
	}
	respBytes, err := io.ReadAll(conn)
	if err != nil && len(respBytes) == 0 {
		return "", fmt.Errorf("read: %w", err)
	}
	resp := strings.TrimSuffix(string(respBytes), "\n")

	if bridgeErr := decodeError(resp); bridgeErr != nil {
		return "", bridgeErr
	}
	return resp, nil
}

// dial opens a (possibly encrypted) connection to the bridge.
func (t *Transport) dial(ctx context.Context) (net.Conn, error) {
	d := &net.Dialer{Timeout: t.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}

	if t.cfg.Key == "" {
		return conn, nil
	}

	key, err := auth.DeriveKey(t.cfg.Key)
	if err != nil {
		conn.Close()
		return nil, err
	}
	r := bufio.NewReader(conn)
	clientNonce, serverNonce, err := auth.ClientHandshake(r, conn, key)
	if err != nil {
		conn.Close()
		if strings.Contains(err.Error(), "read handshake response: EOF") {
			return nil, &Error{Status: 401, Title: "Unauthorized", Detail: "invalid access key"}
		}
		return nil, err
	}
	sessionKey := auth.DeriveSessionKey(key, serverNonce, clientNonce)
	wrapped, err := auth.WrapConn(conn, sessionKey)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return wrapped, nil
}

// decodeError returns the response as *Error if it is an error envelope.
func decodeError(resp string) *Error {
	if !strings.HasPrefix(resp, "{") {
		return nil
	}
	var e Error
	if err := json.Unmarshal([]byte(resp), &e); err != nil {
		return nil
	}
	if e.Status >= 400 {
		return &e
	}
	return nil
}

func toPayloadBytes(v any) ([]byte, bool) {
	switch p := v.(type) {
	case nil:
		return nil, true
	case []byte:
		return p, true
	case string:
		return []byte(p), true
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		return b, true
	}
}

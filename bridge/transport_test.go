package bridge_test

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/joyterm/joyterm/bridge"
	"github.com/joyterm/joyterm/bridge/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T, response string) (addr string, gotReqLine *string, closeFn func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	got := new(string)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		line, err := bufio.NewReader(conn).ReadString('\x00')
		if err != nil {
			return
		}
		*got = line
		if response != "" {
			_, _ = conn.Write([]byte(response))
		}
	}()
	return ln.Addr().String(), got, func() { _ = ln.Close() }
}

func TestTransportPayloadEncoding(t *testing.T) {
	type testCase struct {
		name         string
		payload      any
		expectedLine string // full request including terminator
	}

	cases := []testCase{
		{
			name:         "nil payload",
			payload:      nil,
			expectedLine: "echo\x00",
		},
		{
			name:         "empty string payload",
			payload:      "",
			expectedLine: "echo\x00",
		},
		{
			name:         "bytes payload",
			payload:      []byte("rawbytes"),
			expectedLine: "echo rawbytes\x00",
		},
		{
			name:         "string payload",
			payload:      "hello world",
			expectedLine: "echo hello world\x00",
		},
		{
			name:         "struct payload json marshaled",
			payload:      bridge.AttachRequest{Type: "PRO_CONTROLLER", Session: "s-1"},
			expectedLine: `echo {"type":"PRO_CONTROLLER","session":"s-1"}` + "\x00",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr, got, closeFn := startTestServer(t, "ok\n")
			defer closeFn()
			tr := bridge.NewTransport(addr)
			out, err := tr.DoCtx(t.Context(), "echo", tc.payload)
			require.NoError(t, err)
			assert.Equal(t, "ok", out)
			assert.Equal(t, tc.expectedLine, *got)
		})
	}
}

func TestTransportErrorEnvelope(t *testing.T) {
	resp, err := json.Marshal(bridge.Error{Status: 404, Title: "Not Found", Detail: "no such controller"})
	require.NoError(t, err)

	addr, _, closeFn := startTestServer(t, string(resp)+"\n")
	defer closeFn()

	tr := bridge.NewTransport(addr)
	_, err = tr.DoCtx(t.Context(), "ctl/ghost/pause", nil)
	var bridgeErr *bridge.Error
	require.ErrorAs(t, err, &bridgeErr)
	assert.Equal(t, 404, bridgeErr.Status)
	assert.Contains(t, bridgeErr.Error(), "no such controller")
}

func TestTransportNonErrorJSONPassedThrough(t *testing.T) {
	addr, _, closeFn := startTestServer(t, `{"controllerId":"c1","session":"s1"}`+"\n")
	defer closeFn()

	tr := bridge.NewTransport(addr)
	out, err := tr.DoCtx(t.Context(), "ctl/attach", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"controllerId":"c1","session":"s1"}`, out)
}

func TestTransportDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	tr := bridge.NewTransportWithConfig(addr, &bridge.Config{DialTimeout: time.Second})
	_, err = tr.DoCtx(t.Context(), "echo", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial")
}

func TestMockTransport(t *testing.T) {
	tr := bridge.NewMockTransport(func(path string, payload any) (string, error) {
		assert.Equal(t, "echo", path)
		return "mocked", nil
	})
	out, err := tr.DoCtx(t.Context(), "echo", nil)
	require.NoError(t, err)
	assert.Equal(t, "mocked", out)
}

// encryptedEchoServer accepts the handshake without verifying the client MAC
// and echoes one request over the encrypted connection.
func encryptedEchoServer(t *testing.T, ln net.Listener, key string) {
	t.Helper()
	conn, err := ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	hello := make([]byte, len(auth.HandshakeMagic)+2*auth.NonceSize)
	if _, err := io.ReadFull(conn, hello); err != nil {
		return
	}
	clientNonce := hello[len(auth.HandshakeMagic) : len(auth.HandshakeMagic)+auth.NonceSize]

	serverNonce := make([]byte, auth.NonceSize)
	_, _ = rand.Read(serverNonce)
	if _, err := conn.Write(append([]byte("OK\x00"), serverNonce...)); err != nil {
		return
	}

	derived, err := auth.DeriveKey(key)
	require.NoError(t, err)
	secure, err := auth.WrapConn(conn, auth.DeriveSessionKey(derived, serverNonce, clientNonce))
	require.NoError(t, err)

	line, err := bufio.NewReader(secure).ReadString('\x00')
	if err != nil {
		return
	}
	_, _ = secure.Write([]byte(strings.TrimSuffix(line, "\x00") + "\n"))
}

func TestEncryptedTransport(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go encryptedEchoServer(t, ln, "test123")

	tr := bridge.NewTransportWithConfig(ln.Addr().String(), &bridge.Config{
		DialTimeout:  time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		Key:          "test123",
	})
	out, err := tr.DoCtx(t.Context(), "echo", "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo hi", out)
}

func TestEncryptedTransportRejectedKey(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// A bridge that dislikes the key drops the connection after the hello.
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		hello := make([]byte, len(auth.HandshakeMagic)+2*auth.NonceSize)
		_, _ = io.ReadFull(conn, hello)
		conn.Close()
	}()

	tr := bridge.NewTransportWithConfig(ln.Addr().String(), &bridge.Config{
		DialTimeout: time.Second,
		ReadTimeout: 2 * time.Second,
		Key:         "wrongkey",
	})
	_, err = tr.DoCtx(t.Context(), "echo", nil)
	var bridgeErr *bridge.Error
	require.ErrorAs(t, err, &bridgeErr)
	assert.Equal(t, 401, bridgeErr.Status)
}

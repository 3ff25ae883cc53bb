package bridge_test

import (
	"testing"

	"github.com/joyterm/joyterm/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAttach(t *testing.T) {
	var gotPath string
	var gotReq bridge.AttachRequest
	client := bridge.NewWithTransport(bridge.NewMockTransport(func(path string, payload any) (string, error) {
		gotPath = path
		gotReq = payload.(bridge.AttachRequest)
		return `{"controllerId":"ctl-7","session":"` + gotReq.Session + `"}`, nil
	}))

	resp, err := client.Attach(t.Context(), "PRO_CONTROLLER")
	require.NoError(t, err)
	assert.Equal(t, "ctl/attach", gotPath)
	assert.Equal(t, "PRO_CONTROLLER", gotReq.Type)
	assert.NotEmpty(t, gotReq.Session)
	assert.Empty(t, gotReq.Reconnect)
	assert.Equal(t, "ctl-7", resp.ControllerID)
	assert.Equal(t, gotReq.Session, resp.Session)
}

func TestClientAttachMintsFreshSessions(t *testing.T) {
	var sessions []string
	client := bridge.NewWithTransport(bridge.NewMockTransport(func(path string, payload any) (string, error) {
		sessions = append(sessions, payload.(bridge.AttachRequest).Session)
		return `{"controllerId":"c","session":"s"}`, nil
	}))

	_, err := client.Attach(t.Context(), "JOYCON_R")
	require.NoError(t, err)
	_, err = client.Attach(t.Context(), "JOYCON_R")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.NotEqual(t, sessions[0], sessions[1])
}

func TestClientAttachReconnect(t *testing.T) {
	var gotReq bridge.AttachRequest
	client := bridge.NewWithTransport(bridge.NewMockTransport(func(path string, payload any) (string, error) {
		gotReq = payload.(bridge.AttachRequest)
		return `{"controllerId":"c","session":"s"}`, nil
	}))

	_, err := client.AttachReconnect(t.Context(), "JOYCON_R", "94:58:CB:00:11:22")
	require.NoError(t, err)
	assert.Equal(t, "94:58:CB:00:11:22", gotReq.Reconnect)
}

func TestClientAttachBadResponse(t *testing.T) {
	client := bridge.NewWithTransport(bridge.NewMockTransport(func(path string, payload any) (string, error) {
		return "not json", nil
	}))
	_, err := client.Attach(t.Context(), "JOYCON_R")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad response")
}

func TestClientAttachBridgeError(t *testing.T) {
	wantErr := &bridge.Error{Status: 503, Title: "Unavailable", Detail: "bluetooth adapter missing"}
	client := bridge.NewWithTransport(bridge.NewMockTransport(func(path string, payload any) (string, error) {
		return "", wantErr
	}))
	_, err := client.Attach(t.Context(), "JOYCON_R")
	var bridgeErr *bridge.Error
	require.ErrorAs(t, err, &bridgeErr)
	assert.Equal(t, 503, bridgeErr.Status)
}

func TestClientControlPaths(t *testing.T) {
	var paths []string
	var nfcPayload bridge.NFCRequest
	client := bridge.NewWithTransport(bridge.NewMockTransport(func(path string, payload any) (string, error) {
		paths = append(paths, path)
		if req, ok := payload.(bridge.NFCRequest); ok {
			nfcPayload = req
		}
		return "", nil
	}))

	ctx := t.Context()
	require.NoError(t, client.Pause(ctx, "ctl-1"))
	require.NoError(t, client.Resume(ctx, "ctl-1"))
	require.NoError(t, client.SetNFC(ctx, "ctl-1", []byte{0xde, 0xad}))
	require.NoError(t, client.Detach(ctx, "ctl-1"))

	assert.Equal(t, []string{
		"ctl/ctl-1/pause",
		"ctl/ctl-1/resume",
		"ctl/ctl-1/nfc",
		"ctl/ctl-1/detach",
	}, paths)
	assert.Equal(t, []byte{0xde, 0xad}, nfcPayload.Data)
}

// In file: internal/mcpserver/server_test.go
package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/weather-alerts/internal/tools"
	"github.com/dileep-u-k/weather-alerts/internal/version"
)

type fixedLookup string

func (f fixedLookup) GetAlerts(_ context.Context, state string) string {
	return string(f) + " " + state
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) func(string) rpcResponse {
	t.Helper()
	table := tools.NewToolManager(nil)
	require.NoError(t, table.Register(tools.NewAlertsTool(fixedLookup("alerts for"))))
	require.NoError(t, table.RegisterResource(tools.EchoResource{}))

	s, err := New(table, version.GetBuildInfo())
	require.NoError(t, err)

	return func(frame string) rpcResponse {
		msg := s.HandleMessage(context.Background(), json.RawMessage(frame))
		raw, err := json.Marshal(msg)
		require.NoError(t, err)
		var resp rpcResponse
		require.NoError(t, json.Unmarshal(raw, &resp))
		return resp
	}
}

func TestToolsList(t *testing.T) {
	call := newTestServer(t)

	resp := call(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Nil(t, resp.Error)

	var result struct {
		Tools []struct {
			Name        string          `json:"name"`
			Description string          `json:"description"`
			InputSchema json.RawMessage `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "get_alerts", result.Tools[0].Name)
	assert.Contains(t, string(result.Tools[0].InputSchema), `"state"`)
}

func TestToolsCallGetAlerts(t *testing.T) {
	call := newTestServer(t)

	resp := call(`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_alerts","arguments":{"state":"NY"}}}`)
	require.Nil(t, resp.Error)

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.Equal(t, "alerts for NY", result.Content[0].Text)
}

func TestToolsCallMissingState(t *testing.T) {
	call := newTestServer(t)

	resp := call(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_alerts","arguments":{}}}`)
	require.Nil(t, resp.Error)

	var result struct {
		IsError bool `json:"isError"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.True(t, result.IsError)
}

func TestResourcesReadEcho(t *testing.T) {
	call := newTestServer(t)

	resp := call(`{"jsonrpc":"2.0","id":4,"method":"resources/read","params":{"uri":"echo://hello"}}`)
	require.Nil(t, resp.Error)

	var result struct {
		Contents []struct {
			URI      string `json:"uri"`
			MIMEType string `json:"mimeType"`
			Text     string `json:"text"`
		} `json:"contents"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "Resource echo: hello", result.Contents[0].Text)
	assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
}

func TestResourceTemplatesList(t *testing.T) {
	call := newTestServer(t)

	resp := call(`{"jsonrpc":"2.0","id":5,"method":"resources/templates/list"}`)
	require.Nil(t, resp.Error)
	assert.Contains(t, string(resp.Result), `echo://{message}`)
}

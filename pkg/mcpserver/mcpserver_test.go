package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/james-see/k5000wave/pkg/harmonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer())
}

func TestLevelsTool(t *testing.T) {
	out, isErr := call(t, handleLevels, map[string]any{"waveform": "square"})
	require.False(t, isErr, out)

	var resp struct {
		Waveform string `json:"waveform"`
		Levels   []int  `json:"levels"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "square", resp.Waveform)
	assert.Equal(t, harmonic.Square().Ints(), resp.Levels)
}

func TestLevelsToolErrors(t *testing.T) {
	out, isErr := call(t, handleLevels, map[string]any{})
	assert.True(t, isErr, out)

	out, isErr = call(t, handleLevels, map[string]any{"waveform": "custom", "params": "1,2,3"})
	assert.True(t, isErr)
	assert.Contains(t, out, "invalid custom parameters")
}

func TestSysExTool(t *testing.T) {
	out, isErr := call(t, handleSysEx, map[string]any{"waveform": "sine", "channel": 3})
	require.False(t, isErr, out)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, harmonic.HarmonicCount)
	assert.Equal(t, "40 02 10 00 0a 02 40 00 00 00 00 7f", lines[0])

	out, isErr = call(t, handleSysEx, map[string]any{"waveform": "sine", "format": "sendmidi", "device": "K5000"})
	require.False(t, isErr, out)
	assert.True(t, strings.HasPrefix(out, `sendmidi dev "K5000" hex syx 40 00`))
}

func TestSysExToolRejects(t *testing.T) {
	_, isErr := call(t, handleSysEx, map[string]any{"waveform": "sine", "channel": 0})
	assert.True(t, isErr)

	_, isErr = call(t, handleSysEx, map[string]any{"waveform": "sine", "format": "midi"})
	assert.True(t, isErr)
}

func TestWaveformsTool(t *testing.T) {
	out, isErr := call(t, handleWaveforms, nil)
	require.False(t, isErr)
	assert.Contains(t, out, "triangle")
	assert.Contains(t, out, "pulse20")
}

// Package mcpserver exposes the harmonic generator as MCP tools over stdio
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/james-see/k5000wave/pkg/converter"
	"github.com/james-see/k5000wave/pkg/converter/devices"
	"github.com/james-see/k5000wave/pkg/harmonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "K5000 Wave MCP"
	serverVersion = "1.0.0"
)

// NewServer builds the MCP server with all tools registered
func NewServer() *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	waveformsTool := mcp.NewTool("k5000_waveforms",
		mcp.WithDescription("Lists the supported waveform models and custom parameter presets."),
	)
	s.AddTool(waveformsTool, handleWaveforms)

	levelsTool := mcp.NewTool("k5000_levels",
		mcp.WithDescription("Computes the 64 harmonic levels (0-127) of a waveform for the Kawai K5000."),
		mcp.WithString("waveform", mcp.Required(), mcp.Description("sine, saw, square, triangle, custom or random.")),
		mcp.WithString("params", mcp.Description("Custom waveform parameters a,b,c,xp,d,e,yp or a preset name. Required for custom.")),
		mcp.WithNumber("seed", mcp.Description("Seed for the random waveform. 0 picks a time based seed.")),
	)
	s.AddTool(levelsTool, handleLevels)

	sysexTool := mcp.NewTool("k5000_sysex",
		mcp.WithDescription("Encodes a waveform as 64 K5000 harmonic level SysEx messages in hex, one per line."),
		mcp.WithString("waveform", mcp.Required(), mcp.Description("sine, saw, square, triangle, custom or random.")),
		mcp.WithString("params", mcp.Description("Custom waveform parameters a,b,c,xp,d,e,yp or a preset name. Required for custom.")),
		mcp.WithNumber("seed", mcp.Description("Seed for the random waveform. 0 picks a time based seed.")),
		mcp.WithNumber("channel", mcp.Description("MIDI channel 1-16 (default 1).")),
		mcp.WithNumber("group", mcp.Description("Tone group (default 0).")),
		mcp.WithNumber("source", mcp.Description("ADD source 0-5 (default 0).")),
		mcp.WithString("format", mcp.Description("hex or sendmidi (default hex).")),
		mcp.WithString("device", mcp.Description("sendmidi device name.")),
	)
	s.AddTool(sysexTool, handleSysEx)

	return s
}

// Serve runs the MCP server on stdin/stdout until the client disconnects
func Serve() error {
	slog.Info("starting MCP server", "name", serverName)
	return server.ServeStdio(NewServer())
}

func handleWaveforms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slog.Debug("[mcp] handling waveforms request")

	presets := make(map[string]string)
	for _, name := range harmonic.Presets() {
		p, _ := harmonic.ParamsFor(name)
		presets[name] = p.String()
	}
	out, err := json.MarshalIndent(map[string]any{
		"waveforms": harmonic.Waveforms(),
		"presets":   presets,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal waveforms: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func requestFrom(request mcp.CallToolRequest) (harmonic.Request, error) {
	waveform, err := request.RequireString("waveform")
	if err != nil {
		return harmonic.Request{}, err
	}
	seed := request.GetInt("seed", 0)
	if seed < 0 {
		return harmonic.Request{}, fmt.Errorf("seed must not be negative")
	}
	return harmonic.Request{
		Waveform: waveform,
		Params:   request.GetString("params", ""),
		Seed:     uint64(seed),
	}, nil
}

func handleLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slog.Debug("[mcp] handling levels request")

	req, err := requestFrom(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	w, levels, err := req.Resolve()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := json.Marshal(map[string]any{"waveform": w, "levels": levels.Ints()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal levels: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func handleSysEx(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slog.Debug("[mcp] handling sysex request")

	req, err := requestFrom(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	addr, err := converter.NewAddress(
		request.GetInt("channel", 1),
		request.GetInt("group", 0),
		request.GetInt("source", 0),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := converter.ParseFormat(request.GetString("format", string(converter.FormatHex)))
	if err != nil || (format != converter.FormatHex && format != converter.FormatSendMIDI) {
		return mcp.NewToolResultError("format must be hex or sendmidi"), nil
	}

	_, levels, err := req.Resolve()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	conv := converter.New(devices.NewK5000())
	var lines []string
	if format == converter.FormatHex {
		lines, err = conv.HexLines(levels, addr)
	} else {
		lines, err = conv.SendMIDILines(levels, addr, request.GetString("device", ""))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode messages: %w", err)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

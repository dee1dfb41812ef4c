// Package main is the entry point for k5000wave CLI
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/james-see/k5000wave/pkg/api"
	"github.com/james-see/k5000wave/pkg/converter"
	"github.com/james-see/k5000wave/pkg/converter/devices"
	"github.com/james-see/k5000wave/pkg/harmonic"
	"github.com/james-see/k5000wave/pkg/mcpserver"
	"github.com/james-see/k5000wave/pkg/render"
	"github.com/james-see/k5000wave/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	channel    int
	group      int
	source     int
	midiDevice string
	seed       uint64
	verbose    bool
	outputFile string
	formatName string
	noChart    bool
	serverPort int
)

// logger is replaced by initLogger once flags are parsed
var logger = slog.Default()

func initLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "k5000wave",
	Short: "Generate Kawai K5000 harmonic levels from waveform models",
	Long: `k5000wave computes the 64 harmonic levels of an additive source from a
waveform model and encodes them as Kawai K5000 SysEx messages.

Waveforms: sine, saw, square, triangle, custom, random.
The custom waveform takes seven comma separated values a,b,c,xp,d,e,yp
or the name of a preset.

Examples:
  k5000wave chart saw
  k5000wave sysex square -c 2 -d "K5000S"
  k5000wave sysex custom 2,1,0,0.5,0,0,0
  k5000wave export triangle -o triangle.syx
  k5000wave decode triangle.syx
  k5000wave tui
  k5000wave serve --port 8080`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(verbose)
	},
}

var levelsCmd = &cobra.Command{
	Use:   "levels <waveform> [params]",
	Short: "Print the harmonic levels as a list",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runLevels,
}

var chartCmd = &cobra.Command{
	Use:   "chart <waveform> [params]",
	Short: "Print the harmonic levels as a bar chart",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runChart,
}

var sysexCmd = &cobra.Command{
	Use:   "sysex <waveform> [params]",
	Short: "Print one SysEx message per harmonic",
	Long: `Prints the level chart followed by one line per harmonic. The default
sendmidi format produces ready to run sendmidi invocations; hex prints the
bare message bytes.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSysEx,
}

var exportCmd = &cobra.Command{
	Use:   "export <waveform> [params]",
	Short: "Write the SysEx messages to a .syx, .mid or .txt file",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runExport,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file|hex>",
	Short: "Decode harmonic messages from a .syx, .mid or hex text file, or a hex argument",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List waveforms and custom parameter presets",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the generator as MCP tools over stdio",
	RunE:  runMCP,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().IntVarP(&channel, "channel", "c", 1, "MIDI channel (1-16)")
	rootCmd.PersistentFlags().IntVarP(&group, "group", "g", 0, "Tone group")
	rootCmd.PersistentFlags().IntVarP(&source, "source", "s", 0, "ADD source (0-5)")
	rootCmd.PersistentFlags().StringVarP(&midiDevice, "device", "d", converter.DefaultMIDIDevice, "sendmidi output device")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for the random waveform (0 = time based)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// sysex command
	sysexCmd.Flags().StringVarP(&formatName, "format", "f", string(converter.FormatSendMIDI), "Line format (sendmidi, hex)")
	sysexCmd.Flags().BoolVar(&noChart, "no-chart", false, "Do not print the level chart")

	// export command
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	_ = exportCmd.MarkFlagRequired("output")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(sysexCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

func getConverter() *converter.Converter {
	return converter.New(devices.NewK5000())
}

func getAddress() (converter.Address, error) {
	return converter.NewAddress(channel, group, source)
}

func computeLevels(args []string) (harmonic.Levels, error) {
	req := harmonic.Request{Waveform: args[0], Seed: seed}
	if len(args) > 1 {
		req.Params = args[1]
	}
	w, levels, err := req.Resolve()
	if err != nil {
		return harmonic.Levels{}, err
	}
	logger.Debug("computed levels", "waveform", w, "levels", render.List(levels))
	return levels, nil
}

func runLevels(cmd *cobra.Command, args []string) error {
	levels, err := computeLevels(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.List(levels))
	return nil
}

func runChart(cmd *cobra.Command, args []string) error {
	levels, err := computeLevels(args)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Chart(levels))
	return nil
}

func runSysEx(cmd *cobra.Command, args []string) error {
	format, err := converter.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if format != converter.FormatSendMIDI && format != converter.FormatHex {
		return fmt.Errorf("format %s is binary, use export instead", format)
	}

	addr, err := getAddress()
	if err != nil {
		return err
	}
	levels, err := computeLevels(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !noChart {
		fmt.Fprintln(out, render.Chart(levels))
	}
	return getConverter().Write(out, format, levels, addr, converter.Options{MIDIDevice: midiDevice})
}

func runExport(cmd *cobra.Command, args []string) error {
	addr, err := getAddress()
	if err != nil {
		return err
	}
	levels, err := computeLevels(args)
	if err != nil {
		return err
	}

	conv := getConverter()
	if err := conv.ExportFile(outputFile, levels, addr, converter.Options{MIDIDevice: midiDevice}); err != nil {
		return err
	}
	logger.Info("exported", "waveform", args[0], "device", conv.GetDevice().Name(), "output", outputFile)
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	input := args[0]
	conv := getConverter()

	var format converter.Format
	data, err := os.ReadFile(input)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// not a file, take the argument as hex or sendmidi lines
		data = []byte(input)
		format = converter.FormatHex
	case err != nil:
		return err
	default:
		format = converter.DetectFormat(input)
		if format == converter.FormatUnknown {
			format = converter.DetectFormatFromContent(data)
		}
	}
	logger.Debug("decoding", "input", input, "format", format, "device", conv.GetDevice().Name())

	params, err := conv.Decode(format, data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "harmonic  level  channel  group  source")
	for _, p := range params {
		fmt.Fprintf(out, "%8d  %5d  %7d  %5d  %6d\n", int(p.Harmonic)+1, p.Level, int(p.Channel)+1, p.Group, p.Source)
	}

	if levels, err := converter.LevelsFrom(params); err == nil {
		fmt.Fprintln(out)
		fmt.Fprint(out, render.Chart(levels))
	} else {
		logger.Warn("messages do not form a complete table", "err", err)
	}
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Waveforms:")
	for _, w := range harmonic.Waveforms() {
		fmt.Fprintf(out, "  %-9s %s\n", w, w.Description())
	}
	fmt.Fprintln(out, "\nCustom presets:")
	for _, name := range harmonic.Presets() {
		p, _ := harmonic.ParamsFor(name)
		fmt.Fprintf(out, "  %-9s %s\n", name, p)
	}
	fmt.Fprintf(out, "\nCustom parameter order: %s\n", strings.Join([]string{"a", "b", "c", "xp", "d", "e", "yp"}, ","))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	addr, err := getAddress()
	if err != nil {
		return err
	}
	return tui.Run(addr)
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// stdout carries the MCP protocol
	return mcpserver.Serve()
}

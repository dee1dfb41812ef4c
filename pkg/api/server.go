// Package api provides the REST API server for k5000wave
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/james-see/k5000wave/pkg/converter"
	"github.com/james-see/k5000wave/pkg/converter/devices"
	"github.com/james-see/k5000wave/pkg/harmonic"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title K5000 Wave API
// @version 1.0
// @description API for generating Kawai K5000 harmonic levels and SysEx messages
// @host localhost:8080
// @BasePath /api/v1

// LevelsResponse is the body of a levels request
type LevelsResponse struct {
	Waveform string `json:"waveform"`
	Levels   []int  `json:"levels"`
}

// SysExResponse is the JSON body of a sysex request in a text format
type SysExResponse struct {
	Waveform string   `json:"waveform"`
	Format   string   `json:"format"`
	Levels   []int    `json:"levels"`
	Messages []string `json:"messages"`
}

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewRouter().Run(fmt.Sprintf(":%d", port))
}

// NewRouter builds the gin engine with all routes registered
func NewRouter() *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/waveforms", listWaveforms)
		v1.GET("/presets", listPresets)
		v1.GET("/levels/:waveform", handleLevels)
		v1.GET("/sysex/:waveform", handleSysEx)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "k5000wave",
	})
}

// listWaveforms godoc
// @Summary List supported waveforms
// @Description Returns the waveform selectors and output formats
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/waveforms [get]
func listWaveforms(c *gin.Context) {
	waveforms := make([]gin.H, 0, len(harmonic.Waveforms()))
	for _, w := range harmonic.Waveforms() {
		waveforms = append(waveforms, gin.H{"id": w, "description": w.Description()})
	}
	c.JSON(http.StatusOK, gin.H{
		"waveforms": waveforms,
		"formats":   converter.GetSupportedFormats(),
	})
}

// listPresets godoc
// @Summary List custom waveform presets
// @Description Returns the built-in parameter sets for the custom waveform
// @Tags info
// @Produce json
// @Success 200 {object} map[string]harmonic.Params
// @Router /api/v1/presets [get]
func listPresets(c *gin.Context) {
	presets := make(map[string]harmonic.Params)
	for _, name := range harmonic.Presets() {
		presets[name], _ = harmonic.ParamsFor(name)
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

// handleLevels godoc
// @Summary Compute harmonic levels
// @Description Returns the 64 harmonic levels for a waveform
// @Tags levels
// @Produce json
// @Param waveform path string true "Waveform (sine, saw, square, triangle, custom, random)"
// @Param params query string false "Custom parameters a,b,c,xp,d,e,yp or preset name"
// @Param seed query int false "Seed for the random waveform"
// @Success 200 {object} LevelsResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/levels/{waveform} [get]
func handleLevels(c *gin.Context) {
	w, levels, err := resolve(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, LevelsResponse{Waveform: string(w), Levels: levels.Ints()})
}

// handleSysEx godoc
// @Summary Encode harmonic levels as SysEx
// @Description Returns one K5000 harmonic message per harmonic. hex and sendmidi
// @Description formats return JSON, syx and midi return a file.
// @Tags sysex
// @Produce json
// @Produce application/octet-stream
// @Param waveform path string true "Waveform (sine, saw, square, triangle, custom, random)"
// @Param params query string false "Custom parameters a,b,c,xp,d,e,yp or preset name"
// @Param seed query int false "Seed for the random waveform"
// @Param format query string false "hex, sendmidi, syx or midi (default: hex)"
// @Param channel query int false "MIDI channel 1-16 (default: 1)"
// @Param group query int false "Tone group (default: 0)"
// @Param source query int false "ADD source 0-5 (default: 0)"
// @Param device query string false "sendmidi device name"
// @Success 200 {object} SysExResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/sysex/{waveform} [get]
func handleSysEx(c *gin.Context) {
	format, err := converter.ParseFormat(c.DefaultQuery("format", string(converter.FormatHex)))
	if err != nil {
		badRequest(c, err)
		return
	}

	addr, err := address(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	w, levels, err := resolve(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	conv := converter.New(devices.NewK5000())
	opts := converter.Options{MIDIDevice: c.Query("device")}

	switch format {
	case converter.FormatHex, converter.FormatSendMIDI:
		var lines []string
		if format == converter.FormatHex {
			lines, err = conv.HexLines(levels, addr)
		} else {
			lines, err = conv.SendMIDILines(levels, addr, opts.MIDIDevice)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, SysExResponse{
			Waveform: string(w),
			Format:   string(format),
			Levels:   levels.Ints(),
			Messages: lines,
		})
	default:
		data, err := conv.Export(format, levels, addr, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		outputName := string(w) + ".syx"
		contentType := "application/octet-stream"
		if format == converter.FormatMIDI {
			outputName = string(w) + ".mid"
			contentType = "audio/midi"
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName))
		c.Data(http.StatusOK, contentType, data)
	}
}

func resolve(c *gin.Context) (harmonic.Waveform, harmonic.Levels, error) {
	req := harmonic.Request{
		Waveform: c.Param("waveform"),
		Params:   c.Query("params"),
	}
	if s := c.Query("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return "", harmonic.Levels{}, fmt.Errorf("invalid seed %q", s)
		}
		req.Seed = seed
	}
	return req.Resolve()
}

func address(c *gin.Context) (converter.Address, error) {
	values := map[string]int{"channel": 1, "group": 0, "source": 0}
	for name := range values {
		s := c.Query(name)
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return converter.Address{}, fmt.Errorf("invalid %s %q", name, s)
		}
		values[name] = v
	}
	return converter.NewAddress(values["channel"], values["group"], values["source"])
}

func badRequest(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	var perr *harmonic.ParseError
	if errors.As(err, &perr) && perr.Index >= 0 {
		body["param_index"] = perr.Index
	}
	c.JSON(http.StatusBadRequest, body)
}

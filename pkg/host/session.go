// Package host drives a plugin instance the way an audio host would: it owns
// the port buffers, connects them once, and runs the instance through
// activate / run / deactivate cycles.
package host

import (
	"context"
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/dsp/gain"
	"github.com/justyntemme/lv2go/pkg/framework/debug"
	"github.com/justyntemme/lv2go/pkg/lilv"
	"github.com/justyntemme/lv2go/pkg/plugins/amp"
)

// Config describes one processing session.
type Config struct {
	SampleRate float64 `mapstructure:"sample-rate"`
	BlockSize  int     `mapstructure:"block-size"`
	Blocks     int     `mapstructure:"blocks"`
	Cycles     int     `mapstructure:"cycles"`
	GainDB     float32 `mapstructure:"gain-db"`
	ToneHz     float64 `mapstructure:"tone-hz"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		BlockSize:  256,
		Blocks:     8,
		Cycles:     2,
		GainDB:     0,
		ToneHz:     440,
	}
}

// Validate rejects settings no session can run with.
func (c Config) Validate() error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate must be positive, got %v", c.SampleRate))
	}
	if c.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("block size must be positive, got %d", c.BlockSize))
	}
	if c.Blocks <= 0 {
		errs = append(errs, fmt.Errorf("blocks must be positive, got %d", c.Blocks))
	}
	if c.Cycles <= 0 {
		errs = append(errs, fmt.Errorf("cycles must be positive, got %d", c.Cycles))
	}
	if c.ToneHz < 0 {
		errs = append(errs, fmt.Errorf("tone frequency must not be negative, got %v", c.ToneHz))
	}
	return errors.Join(errs...)
}

// Layout maps the session's buffers to an instance's port indices.
type Layout struct {
	Gain   uint32
	Input  uint32
	Output uint32

	// MeterURI, when set, names an extension providing *amp.MeterInterface.
	MeterURI string
}

// AmpLayout is the port layout of the amp plugin.
var AmpLayout = Layout{
	Gain:     amp.PortGain,
	Input:    amp.PortInput,
	Output:   amp.PortOutput,
	MeterURI: amp.MeterURI,
}

// CycleReport summarises one activate..deactivate period.
type CycleReport struct {
	Cycle  int
	Frames int
	Peak   float32
	PeakDB float32
	// Metered is true when Peak came from the plugin's meter extension.
	Metered bool
}

// Session owns the memory connected to an instance's ports.
// It is not safe for concurrent use.
type Session struct {
	cfg    Config
	layout Layout
	log    *debug.Logger

	gainDB float32
	input  []float32
	output []float32
	phase  float64
}

// NewSession allocates buffers for cfg. A nil logger discards output.
func NewSession(cfg Config, layout Layout, log *debug.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	if log == nil {
		log = debug.Discard()
	}
	return &Session{
		cfg:    cfg,
		layout: layout,
		log:    log,
		gainDB: cfg.GainDB,
		input:  make([]float32, cfg.BlockSize),
		output: make([]float32, cfg.BlockSize),
	}, nil
}

// Output returns the most recently processed block.
func (s *Session) Output() []float32 {
	return s.output
}

// Run connects the session's buffers to inst and processes cfg.Cycles
// cycles of cfg.Blocks blocks. Cancellation is checked between blocks; a
// cancelled cycle is still deactivated before Run returns.
func (s *Session) Run(ctx context.Context, inst *lilv.Instance) ([]CycleReport, error) {
	if inst == nil {
		return nil, errors.New("no instance to run")
	}
	uri, _ := inst.URI()

	inst.ConnectPort(s.layout.Gain, unsafe.Pointer(&s.gainDB))
	inst.ConnectPort(s.layout.Input, unsafe.Pointer(&s.input[0]))
	inst.ConnectPort(s.layout.Output, unsafe.Pointer(&s.output[0]))

	var meter *amp.MeterInterface
	if s.layout.MeterURI != "" {
		if ptr := inst.ExtensionData(s.layout.MeterURI); ptr != nil {
			meter = (*amp.MeterInterface)(ptr)
		}
	}
	s.log.Debug("running %s: %d cycles x %d blocks of %d frames (meter=%t)",
		uri, s.cfg.Cycles, s.cfg.Blocks, s.cfg.BlockSize, meter != nil)

	reports := make([]CycleReport, 0, s.cfg.Cycles)
	for c := 0; c < s.cfg.Cycles; c++ {
		report, err := s.cycle(ctx, inst, meter, c)
		if err != nil {
			return reports, err
		}
		s.log.Info("cycle %d: %d frames, peak %.4f (%.1f dB)", report.Cycle, report.Frames, report.Peak, report.PeakDB)
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *Session) cycle(ctx context.Context, inst *lilv.Instance, meter *amp.MeterInterface, c int) (CycleReport, error) {
	active := inst.Start()
	defer active.Deactivate()

	report := CycleReport{Cycle: c}
	var measured float32
	for b := 0; b < s.cfg.Blocks; b++ {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("cycle %d interrupted after %d blocks: %w", c, b, err)
		}
		s.fillTone()
		active.Run(uint32(s.cfg.BlockSize))
		report.Frames += s.cfg.BlockSize
		if p := gain.Peak(s.output); p > measured {
			measured = p
		}
	}

	report.Peak = measured
	if meter != nil && meter.Peak != nil {
		report.Peak = meter.Peak(inst.Handle())
		report.Metered = true
	}
	report.PeakDB = gain.LinearToDb32(report.Peak)
	return report, nil
}

// fillTone writes the next block of a unit-amplitude sine into the input buffer.
func (s *Session) fillTone() {
	step := 2 * math.Pi * s.cfg.ToneHz / s.cfg.SampleRate
	for i := range s.input {
		s.input[i] = float32(math.Sin(s.phase))
		s.phase = math.Mod(s.phase+step, 2*math.Pi)
	}
}

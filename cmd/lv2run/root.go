package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/justyntemme/lv2go/pkg/framework/debug"
	"github.com/justyntemme/lv2go/pkg/host"
	"github.com/justyntemme/lv2go/pkg/lilv"
	"github.com/justyntemme/lv2go/pkg/plugins/amp"
)

const envPrefix = "LV2RUN"

// settings is everything the command reads from flags, env and config file.
type settings struct {
	Session  host.Config
	LogLevel string
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "lv2run",
		Short: "Drive the built-in amp plugin through activate/run/deactivate cycles",
		Long: `lv2run instantiates the in-process amp plugin, connects a sine tone to
its input, and runs it for a number of activation cycles, printing the
output peak of each cycle.

Settings come from flags, LV2RUN_* environment variables (for example
LV2RUN_BLOCK_SIZE=512) or a config file given with --config.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			return run(cmd, s)
		},
	}

	defaults := host.DefaultConfig()
	flags := cmd.Flags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.Float64("sample-rate", defaults.SampleRate, "sample rate in Hz")
	flags.Int("block-size", defaults.BlockSize, "frames per run call")
	flags.Int("blocks", defaults.Blocks, "run calls per cycle")
	flags.Int("cycles", defaults.Cycles, "activate/deactivate cycles")
	flags.Float32("gain-db", defaults.GainDB, "amp gain in dB")
	flags.Float64("tone-hz", defaults.ToneHz, "input tone frequency in Hz")
	flags.String("log-level", "info", "debug, info, warn, error or off")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func loadSettings(v *viper.Viper) (settings, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg host.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}
	return settings{Session: cfg, LogLevel: v.GetString("log-level")}, nil
}

func run(cmd *cobra.Command, s settings) error {
	level, err := debug.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	log := debug.New(cmd.ErrOrStderr(), "lv2run", debug.DefaultFlags)
	log.SetLevel(level)

	h, err := amp.Instantiate(s.Session.SampleRate)
	if err != nil {
		return err
	}
	defer amp.Cleanup(h)

	inst, err := lilv.Bind(amp.Descriptor(), h, lilv.WithLogger(log))
	if err != nil {
		return err
	}

	session, err := host.NewSession(s.Session, host.AmpLayout, log)
	if err != nil {
		return err
	}
	reports, err := session.Run(cmd.Context(), inst)
	for _, r := range reports {
		fmt.Fprintf(cmd.OutOrStdout(), "cycle %d: frames=%d peak=%.4f (%.1f dB)\n", r.Cycle, r.Frames, r.Peak, r.PeakDB)
	}
	return err
}

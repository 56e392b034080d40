package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/daq-tools/tracesink/internal/cliconfig"
	"github.com/daq-tools/tracesink/pkg/log"
	"github.com/daq-tools/tracesink/pkg/tracesink"
	"github.com/daq-tools/tracesink/plugins/configwatcher"
)

const helpDescription = `
Collect power, trace, and online-output buffers streamed by an instrument
over a single TCP connection.

The collector accepts exactly one client, then loops forever: each cycle it
receives a power buffer, a traces buffer, and an online buffer, writing every
one to its own file under the output directory (traces/CON_<i>.BIN,
traces/SIG_<i>.BIN, outputs/online_<i>.bin). It stops on a broken connection,
a configured cycle limit, or an interrupt.
`

var exampleUsage = strings.TrimSpace(`
  tracesink --output /data/run42
  tracesink --output /data/run42 --listen 192.168.100.1 --port 4242
  tracesink --config /etc/tracesink/config.toml --max-cycles 100
`)

// levelOf maps a validated config level name to a zerolog level.
func levelOf(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "tracesink",
		Short:   "Collect instrument trace buffers streamed over TCP",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The output directory may be given as the positional argument,
			// matching the original receiver's command line.
			if len(args) == 1 && cfg.OutputDir == "" {
				cfg.OutputDir = args[0]
			}

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags; file and env never override them.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger = logger.Level(levelOf(cfg.LogLevel))
			logger.Info().Interface("config", cfg).Msg("configuration")

			libCfg := tracesink.Config{
				OutputDir:   cfg.OutputDir,
				ListenAddr:  cfg.ListenAddr(),
				ReadTimeout: cfg.ReadTimeout,
				MaxCycles:   cfg.MaxCycles,
				MetricsAddr: cfg.MetricsAddr,
			}
			if cliconfig.FileExists(cfgFile) {
				libCfg.ConfigPath = cfgFile
			}

			adapter := log.NewZerologAdapterWithLogger(logger)

			c, err := tracesink.New(libCfg,
				tracesink.WithLogger(adapter),
				configwatcher.WithConfigWatcher(configwatcher.DefaultConfig()),
			)
			if err != nil {
				return fmt.Errorf("create collector: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := c.Start(ctx); err != nil {
				return fmt.Errorf("start collector: %w", err)
			}

			// Poll for completion so --max-cycles and fatal session errors
			// end the process without an operator signal.
			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						status := c.Status()
						if status == tracesink.StateStopped || status == tracesink.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			crashed := false
			select {
			case <-sigCh:
				// An interrupt is a normal stop, not an error.
				logger.Info().Msg("received signal, stopping...")
			case <-doneCh:
				if c.Status() == tracesink.StateCrashed {
					crashed = true
				}
			}

			if err := c.Stop(); err != nil && !crashed {
				return fmt.Errorf("stop collector: %w", err)
			}
			if crashed {
				return fmt.Errorf("session failed: %w", c.Err())
			}
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.tracesink/config.toml)")
	root.Flags().StringVar(&cfg.OutputDir, "output", "", "root directory for received buffer files")
	root.Flags().StringVar(&cfg.ListenHost, "listen", cfg.ListenHost, "address to bind")
	root.Flags().IntVar(&cfg.Port, "port", cfg.Port, "TCP port to bind")
	root.Flags().DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "per-read timeout on the instrument connection (0 = none)")
	root.Flags().Uint64Var(&cfg.MaxCycles, "max-cycles", cfg.MaxCycles, "stop after this many cycles (0 = unbounded)")
	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address (empty = disabled)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("tracesink")
		os.Exit(1)
	}
}

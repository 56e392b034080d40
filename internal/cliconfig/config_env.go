package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names. Env values override the config file but are
// overridden by explicitly set flags.
const (
	envOutputDir   = "TRACESINK_OUTPUT_DIR"
	envListenHost  = "TRACESINK_LISTEN_HOST"
	envPort        = "TRACESINK_PORT"
	envReadTimeout = "TRACESINK_READ_TIMEOUT"
	envMaxCycles   = "TRACESINK_MAX_CYCLES"
	envMetricsAddr = "TRACESINK_METRICS_ADDR"
	envLogLevel    = "TRACESINK_LOG_LEVEL"
)

// ApplyEnvConfig applies TRACESINK_* environment variables to the config.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("output", os.Getenv(envOutputDir), &cfg.OutputDir)
	s.setString("listen", os.Getenv(envListenHost), &cfg.ListenHost)
	s.setString("metrics-addr", os.Getenv(envMetricsAddr), &cfg.MetricsAddr)
	s.setString("log-level", os.Getenv(envLogLevel), &cfg.LogLevel)

	if v := os.Getenv(envPort); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		s.setInt("port", p, &cfg.Port)
	}
	if v := os.Getenv(envMaxCycles); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		s.setUint64("max-cycles", n, &cfg.MaxCycles)
	}

	return s.setDuration("read-timeout", os.Getenv(envReadTimeout), &cfg.ReadTimeout)
}

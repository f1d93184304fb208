//go:build !tinygo

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile is read when present; a missing default file is not an error.
const DefaultEnvFile = ".env"

type files struct {
	config string
	env    string
}

// Load builds the configuration from the process environment and args
// (without the program name).
func Load(args []string) (Config, error) {
	return LoadFrom(args, os.LookupEnv, os.Stderr)
}

// LoadFrom is Load with an explicit environment and usage output.
func LoadFrom(args []string, lookupEnv func(string) (string, bool), usage io.Writer) (Config, error) {
	// First pass only finds the file flags; flags are applied last.
	scratch := Default()
	var f files
	if err := newFlagSet(&scratch, &f, usage).Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if f.config != "" {
		if err := loadYAML(f.config, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readDotenv(f.env)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := newFlagSet(&cfg, &f, io.Discard).Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newFlagSet(c *Config, f *files, usage io.Writer) *flag.FlagSet {
	set := flag.NewFlagSet("turnclock", flag.ContinueOnError)
	set.SetOutput(usage)

	set.StringVar(&f.config, "config", f.config, "YAML config file")
	if f.env == "" {
		f.env = DefaultEnvFile
	}
	set.StringVar(&f.env, "env", f.env, "dotenv file with "+EnvPrefix+"* variables")

	set.BoolVar(&c.Headless, "headless", c.Headless, "run without opening a window")
	set.IntVar(&c.Hz, "hz", c.Hz, "headless frame rate")
	set.Uint64Var(&c.Ticks, "ticks", c.Ticks, "stop after N frames (0 = run forever)")
	set.IntVar(&c.Scale, "scale", c.Scale, "window scale")
	set.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	set.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (console, json)")
	set.BoolVar(&c.Trace, "trace", c.Trace, "log every display change")
	set.DurationVar(&c.MarqueeSpeed, "marquee-speed", c.MarqueeSpeed, "marquee scroll step")
	set.DurationVar(&c.Refresh, "refresh", c.Refresh, "time display refresh period")
	set.DurationVar(&c.ReadyDelay, "ready-delay", c.ReadyDelay, "how long RDY shows before play")
	set.DurationVar(&c.LongPress, "long-press", c.LongPress, "minor-button hold that ends the game")
	set.DurationVar(&c.PassInterval, "pass-interval", c.PassInterval, "scheduler idle wait between passes")
	set.DurationVar(&c.Debounce, "debounce", c.Debounce, "button debounce")
	set.BoolVar(&c.LampTest, "lamp-test", c.LampTest, "light every face before setup")
	set.Float64Var(&c.Brightness, "brightness", c.Brightness, "LED brightness 0..1")
	return set
}

func loadYAML(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultEnvFile {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return vars, nil
}

func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	vars := []struct {
		key string
		set func(string) error
	}{
		{"HEADLESS", boolSetter(&c.Headless)},
		{"HZ", intSetter(&c.Hz)},
		{"TICKS", uintSetter(&c.Ticks)},
		{"SCALE", intSetter(&c.Scale)},
		{"LOG_LEVEL", stringSetter(&c.LogLevel)},
		{"LOG_FORMAT", stringSetter(&c.LogFormat)},
		{"TRACE", boolSetter(&c.Trace)},
		{"MARQUEE_SPEED", durationSetter(&c.MarqueeSpeed)},
		{"REFRESH", durationSetter(&c.Refresh)},
		{"READY_DELAY", durationSetter(&c.ReadyDelay)},
		{"LONG_PRESS", durationSetter(&c.LongPress)},
		{"PASS_INTERVAL", durationSetter(&c.PassInterval)},
		{"DEBOUNCE", durationSetter(&c.Debounce)},
		{"LAMP_TEST", boolSetter(&c.LampTest)},
		{"BRIGHTNESS", floatSetter(&c.Brightness)},
	}
	for _, v := range vars {
		raw, ok := lookup(EnvPrefix + v.key)
		if !ok || raw == "" {
			continue
		}
		if err := v.set(raw); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, v.key, err)
		}
	}
	return nil
}

func stringSetter(p *string) func(string) error {
	return func(s string) error { *p = s; return nil }
}

func boolSetter(p *bool) func(string) error {
	return func(s string) (err error) { *p, err = strconv.ParseBool(s); return err }
}

func intSetter(p *int) func(string) error {
	return func(s string) (err error) { *p, err = strconv.Atoi(s); return err }
}

func uintSetter(p *uint64) func(string) error {
	return func(s string) (err error) { *p, err = strconv.ParseUint(s, 10, 64); return err }
}

func floatSetter(p *float64) func(string) error {
	return func(s string) (err error) { *p, err = strconv.ParseFloat(s, 64); return err }
}

func durationSetter(p *time.Duration) func(string) error {
	return func(s string) (err error) { *p, err = time.ParseDuration(s); return err }
}

package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestDefaultsAreValid(t *testing.T) {
	c, err := LoadFrom(nil, env(nil), io.Discard)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if c != Default() {
		t.Fatalf("config = %+v, want defaults", c)
	}
	if c.LongPress != 4*time.Second || c.MarqueeSpeed != 300*time.Millisecond || c.Refresh != 50*time.Millisecond {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestLayering(t *testing.T) {
	yml := writeFile(t, "turnclock.yaml", "hz: 120\nrefresh: 100ms\nlong_press: 3s\nbrightness: 0.5\n")
	dotenv := writeFile(t, "test.env", "TURNCLOCK_HZ=90\nTURNCLOCK_READY_DELAY=1s\nTURNCLOCK_TRACE=true\n")
	vars := env(map[string]string{"TURNCLOCK_HZ": "60"})

	c, err := LoadFrom([]string{"-config", yml, "-env", dotenv, "-long-press", "2s"}, vars, io.Discard)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	checks := []struct {
		name      string
		got, want any
	}{
		{"refresh from yaml", c.Refresh, 100 * time.Millisecond},
		{"brightness from yaml", c.Brightness, 0.5},
		{"ready delay from dotenv", c.ReadyDelay, time.Second},
		{"trace from dotenv", c.Trace, true},
		{"process env beats dotenv", c.Hz, 60},
		{"flag beats yaml", c.LongPress, 2 * time.Second},
		{"untouched default", c.MarqueeSpeed, 300 * time.Millisecond},
	}
	for _, ck := range checks {
		if ck.got != ck.want {
			t.Fatalf("%s: got %v, want %v", ck.name, ck.got, ck.want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	badYAML := writeFile(t, "bad.yaml", "refresh: [1, 2\n")
	cases := []struct {
		name string
		args []string
		vars map[string]string
	}{
		{"missing yaml", []string{"-config", filepath.Join(t.TempDir(), "none.yaml")}, nil},
		{"bad yaml", []string{"-config", badYAML}, nil},
		{"missing explicit env file", []string{"-env", filepath.Join(t.TempDir(), "none.env")}, nil},
		{"bad env duration", nil, map[string]string{"TURNCLOCK_REFRESH": "soon"}},
		{"bad flag", []string{"-hz", "fast"}, nil},
		{"unknown flag", []string{"-colour"}, nil},
	}
	for _, tc := range cases {
		if _, err := LoadFrom(tc.args, env(tc.vars), io.Discard); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestValidate(t *testing.T) {
	mutate := []func(*Config){
		func(c *Config) { c.Refresh = 0 },
		func(c *Config) { c.MarqueeSpeed = -time.Millisecond },
		func(c *Config) { c.LongPress = 0 },
		func(c *Config) { c.ReadyDelay = 0 },
		func(c *Config) { c.PassInterval = -1 },
		func(c *Config) { c.Hz = 0 },
		func(c *Config) { c.Brightness = 1.5 },
	}
	for i, m := range mutate {
		c := Default()
		m(&c)
		if err := c.Validate(); !errors.Is(err, ErrInvalid) {
			t.Fatalf("case %d: err = %v, want ErrInvalid", i, err)
		}
	}
	c := Default()
	c.PassInterval = 0
	if err := c.Validate(); err != nil {
		t.Fatalf("busy polling should be allowed: %v", err)
	}
}

func TestTiming(t *testing.T) {
	c := Default()
	c.LongPress = 3 * time.Second
	tm := c.Timing()
	if tm.LongPress != 3*time.Second || tm.Refresh != c.Refresh || tm.ReadyDelay != c.ReadyDelay || tm.MarqueeSpeed != c.MarqueeSpeed {
		t.Fatalf("timing = %+v", tm)
	}
}

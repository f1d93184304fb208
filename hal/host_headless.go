//go:build !tinygo

package hal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"turnclock/input"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig
	Hz   int
	// Ticks stops the runner after that many frames. Zero runs forever.
	Ticks uint64
	// Commands is read line by line for button commands. Nil disables it.
	Commands io.Reader
}

// DefaultTapHold is how long "tap" keeps a button down.
const DefaultTapHold = 80 * time.Millisecond

// RunHeadless runs the core without opening a window. A restart request
// rebuilds the core with newApp and keeps running.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 200
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h, err := newHost(cfg.Host)
	if err != nil {
		return err
	}
	step := newApp(h)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Commands != nil {
		go h.readCommands(cfg.Commands, cancel)
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			err := h.frame(step)
			if errors.Is(err, ErrRestart) {
				step = h.reboot(newApp)
			} else if err != nil {
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// readCommands drives the buttons from text lines until r ends or "quit"
// arrives; then it calls quit.
func (h *hostHAL) readCommands(r io.Reader, quit func()) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		done, err := h.command(line)
		if err != nil {
			h.logger.WriteLineString("console: " + err.Error())
			continue
		}
		if done {
			break
		}
	}
	quit()
}

// command applies one console line: "down B", "up B", "tap B", "hold B DUR"
// or "quit", where B is a button name.
func (h *hostHAL) command(line string) (quit bool, err error) {
	f := strings.Fields(line)
	verb := strings.ToLower(f[0])
	if verb == "quit" || verb == "exit" {
		return true, nil
	}
	if len(f) < 2 {
		return false, fmt.Errorf("%s: missing button", verb)
	}
	b, ok := input.ParseButton(f[1])
	if !ok {
		return false, fmt.Errorf("%s: unknown button %q", verb, f[1])
	}

	switch verb {
	case "down", "press":
		h.press(b, true)
	case "up", "release":
		h.press(b, false)
	case "tap":
		h.hold(b, DefaultTapHold)
	case "hold":
		if len(f) < 3 {
			return false, fmt.Errorf("hold: missing duration")
		}
		d, err := time.ParseDuration(f[2])
		if err != nil || d <= 0 {
			return false, fmt.Errorf("hold: bad duration %q", f[2])
		}
		h.hold(b, d)
	default:
		return false, fmt.Errorf("unknown command %q", verb)
	}
	return false, nil
}

func (h *hostHAL) hold(b input.Button, d time.Duration) {
	h.press(b, true)
	h.clock.AfterFunc(d, func() { h.press(b, false) })
}

package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"turnclock/game"
	"turnclock/input"
)

func TestParseStep(t *testing.T) {
	ops, err := parseStep("hold Minor 4s")
	if err != nil {
		t.Fatalf("parseStep: %v", err)
	}
	want := []op{
		{kind: opPress, button: input.Minor},
		{kind: opWait, d: 4 * time.Second},
		{kind: opRelease, button: input.Minor},
	}
	if len(ops) != len(want) {
		t.Fatalf("ops = %+v", ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("op %d = %+v, want %+v", i, ops[i], want[i])
		}
	}

	ops, err = parseStep("tap large")
	if err != nil || len(ops) != 3 || ops[0].button != input.Major || ops[1].d != tapHold {
		t.Fatalf("tap large = %+v, %v", ops, err)
	}
}

func TestParseStepErrors(t *testing.T) {
	for _, line := range []string{
		"",
		"wait",
		"wait -1s",
		"wait soon",
		"press",
		"press middle",
		"hold minor",
		"hold minor 0s",
		"jump minor",
	} {
		if _, err := parseStep(line); err == nil {
			t.Fatalf("parseStep(%q) succeeded", line)
		}
	}
}

func TestReadScript(t *testing.T) {
	s, ops, err := readScript(strings.NewReader(`
timing:
  long_press: 2s
steps:
  - press minor
  - wait 1s
`))
	if err != nil {
		t.Fatalf("readScript: %v", err)
	}
	if s.Frame != defaultFrame {
		t.Fatalf("frame = %v", s.Frame)
	}
	if tm := s.timing(); tm.LongPress != 2*time.Second || tm.ReadyDelay != 500*time.Millisecond {
		t.Fatalf("timing = %+v", tm)
	}
	if len(ops) != 2 {
		t.Fatalf("ops = %+v", ops)
	}

	if _, _, err := readScript(strings.NewReader("steps: []\n")); !errors.Is(err, errEmptyScript) {
		t.Fatalf("empty script err = %v", err)
	}
	if _, _, err := readScript(strings.NewReader("stepz: [wait 1s]\n")); err == nil {
		t.Fatalf("unknown field accepted")
	}
	if _, _, err := readScript(strings.NewReader("steps: [wait 1s, fly minor]\n")); err == nil || !strings.Contains(err.Error(), "step 2") {
		t.Fatalf("bad step err = %v", err)
	}
}

func TestReplayTwoPlayerScript(t *testing.T) {
	f, err := os.Open("testdata/two_players.yaml")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	s, ops, err := readScript(f)
	if err != nil {
		t.Fatalf("readScript: %v", err)
	}

	res, err := simulate(s, ops, zerolog.InfoLevel)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.failure != nil {
		t.Fatalf("failure: %v", res.failure)
	}
	if res.state != game.StateOver {
		t.Fatalf("state = %v", res.state)
	}
	if len(res.standings) != 2 {
		t.Fatalf("standings = %v", res.standings)
	}
	p1, p2 := res.standings[0], res.standings[1]
	if p1.Color != game.Red || p1.Elapsed != 10*time.Second {
		t.Fatalf("P1 = %v (%v)", p1, p1.Elapsed)
	}
	if p2.Color != game.Green || p2.Elapsed != 6080*time.Millisecond {
		t.Fatalf("P2 = %v (%v)", p2, p2.Elapsed)
	}

	var out bytes.Buffer
	report(&out, res, true, false)
	for _, want := range []string{"state:   GAME_OVER", "P1 RED 0010", "P2 GREEN 0006", "alpha", "[RDY ]"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("report missing %q:\n%s", want, out.String())
		}
	}
}

package hal

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"turnclock/input"
)

func TestRecorderTranscript(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRecorder(clock)

	_ = r.Numeric().Show("0005", true)
	_ = r.Numeric().Show("0005", true)
	clock.Advance(40 * time.Millisecond)
	_ = r.Alpha().ShowStatic("RDY ")
	_ = r.Alpha().ScrollStep('A')
	_ = r.Pixels().Fill(color.RGBA{R: 255, A: 255})
	_ = r.Backlights().Set(input.Minor, false)
	r.Restarter().Restart()

	entries := r.Entries()
	want := []string{"[00:05]", "[RDY ]", "[DY A]", "#ff0000", "off", "requested"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %v", entries)
	}
	for i, e := range entries {
		if e.Value != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, e.Value, want[i])
		}
	}
	if !entries[1].At.Equal(clock.Now()) {
		t.Fatalf("entry time not taken from clock")
	}
	if r.AlphaText() != "DY A" || r.Light(input.Minor) || !r.Light(input.Major) || r.Restarts() != 1 {
		t.Fatalf("recorder state wrong")
	}
}

func TestRecorderFailWith(t *testing.T) {
	r := NewRecorder(clockwork.NewFakeClock())
	busDown := errors.New("bus down")
	r.FailWith("alpha", busDown)
	if err := r.Alpha().ShowStatic("X"); !errors.Is(err, busDown) {
		t.Fatalf("err = %v", err)
	}
	if err := r.Numeric().Show("1", false); err != nil {
		t.Fatalf("numeric failed too: %v", err)
	}
}

// Package marquee drives the 4-character alphanumeric display from a single
// message slot. Producers overwrite the slot; the marquee task renders it.
package marquee

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"turnclock/hal"
	"turnclock/kernel"
)

// DefaultSpeed is the delay between scroll steps.
const DefaultSpeed = 300 * time.Millisecond

// Message is the marquee slot. An empty Text is idle.
type Message struct {
	Text   string
	Speed  time.Duration
	Scroll bool
}

// Idle reports whether there is nothing to show.
func (m Message) Idle() bool { return m.Text == "" }

// Channel is the single-slot mailbox between producers and the marquee task.
//
// It is only touched from the scheduler goroutine and needs no locking.
type Channel struct {
	msg Message
}

// Set replaces the message.
func (c *Channel) Set(text string, speed time.Duration, scroll bool) {
	c.msg = Message{Text: text, Speed: speed, Scroll: scroll}
}

// Scroll is Set with DefaultSpeed and scrolling on.
func (c *Channel) Scroll(text string) {
	c.Set(text, DefaultSpeed, true)
}

// Static is Set with scrolling off.
func (c *Channel) Static(text string) {
	c.Set(text, 0, false)
}

// Clear idles the marquee.
func (c *Channel) Clear() {
	c.msg = Message{}
}

// Current returns the message in the slot.
func (c *Channel) Current() Message {
	return c.msg
}

// Task renders the channel on the alphanumeric display.
type Task struct {
	ch      *Channel
	display hal.AlphaDisplay
	log     zerolog.Logger

	// last is the text last rendered; pos is the next character to scroll in.
	last string
	pos  int
}

// NewTask returns the marquee task.
func NewTask(ch *Channel, display hal.AlphaDisplay, log zerolog.Logger) *Task {
	return &Task{ch: ch, display: display, log: log}
}

func (t *Task) Name() string { return "marquee" }

// Step runs one marquee tick.
//
// A new text (compared by content) restarts at the first character: a
// scrolling text first blanks the window, a static one is shown whole. Later
// ticks scroll one character in, wrapping at the end of the text. The task
// sleeps Speed while a message is set and yields while idle.
func (t *Task) Step(ctx *kernel.Context) {
	msg := t.ch.Current()
	if msg.Idle() {
		return
	}

	var err error
	switch {
	case msg.Text != t.last:
		t.last = msg.Text
		t.pos = 0
		t.log.Debug().Str("text", msg.Text).Bool("scroll", msg.Scroll).Msg("new message")
		if msg.Scroll {
			err = t.display.ShowStatic("")
		} else {
			err = t.display.ShowStatic(msg.Text)
		}
	case msg.Scroll:
		if t.pos >= len(t.last) {
			t.pos = 0
		}
		err = t.display.ScrollStep(t.last[t.pos])
		t.pos++
		if t.pos >= len(t.last) {
			t.pos = 0
		}
	}
	if err != nil {
		ctx.Fatal(fmt.Errorf("marquee: %w", err))
	}
	ctx.Sleep(msg.Speed)
}

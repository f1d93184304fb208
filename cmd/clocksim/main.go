// Command clocksim replays a scripted session against the turn clock on a
// simulated clock and prints the final standings.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"turnclock/internal/applog"
)

func main() {
	var (
		scriptPath = flag.String("script", "", "Session script (YAML), or - for stdin.")
		transcript = flag.Bool("transcript", false, "Print every display, strip and light change.")
		showLog    = flag.Bool("log", false, "Print the device log.")
		logLevel   = flag.String("log-level", "info", "Device log level.")
	)
	flag.Parse()

	if *scriptPath == "" {
		fatalf("usage: clocksim -script session.yaml [-transcript] [-log] [-log-level debug]")
	}
	level, err := applog.ParseLevel(*logLevel)
	if err != nil {
		fatalf("%v", err)
	}

	in := io.Reader(os.Stdin)
	if *scriptPath != "-" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			fatalf("%v", err)
		}
		defer f.Close()
		in = f
	}
	s, ops, err := readScript(in)
	if err != nil {
		fatalf("%v", err)
	}

	res, err := simulate(s, ops, level)
	if err != nil {
		fatalf("replay: %v", err)
	}
	report(os.Stdout, res, *transcript, *showLog)
	if res.failure != nil {
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// report prints the final state, then optionally the transcript and log.
func report(w io.Writer, res result, transcript, log bool) {
	fmt.Fprintf(w, "state:   %s\n", res.state)
	fmt.Fprintf(w, "elapsed: %s\n", res.end.Sub(res.start))
	if res.restarts > 0 {
		fmt.Fprintf(w, "restart requested %d time(s)\n", res.restarts)
	}
	if res.failure != nil {
		fmt.Fprintf(w, "failure: %v\n", res.failure)
	}
	for _, s := range res.standings {
		fmt.Fprintln(w, s)
	}

	if transcript {
		fmt.Fprintln(w)
		for _, e := range res.entries {
			fmt.Fprintf(w, "%10s  %-8s %s\n", offset(e.At.Sub(res.start)), e.Sink, e.Value)
		}
	}
	if log {
		fmt.Fprintln(w)
		for _, l := range res.lines {
			fmt.Fprintln(w, l)
		}
	}
}

func offset(d time.Duration) string {
	return "+" + d.Truncate(time.Millisecond).String()
}

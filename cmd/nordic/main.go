// Command nordic decodes or validates a local Nordic bulletin file.
//
// Usage:
//
//	go run ./cmd/nordic decode [-mode lenient|strict] [-enrich] bulletin.nor
//	go run ./cmd/nordic validate [-mode lenient|strict] bulletin.nor
//
// decode prints one JSON object per event. With -enrich it prints the
// SeismicEvent records the ETL service would publish. validate runs the
// decoder, timestamp and round-trip checks and exits non-zero on failure.
// A file name of "-" reads standard input.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/couchcryptid/nordic-etl/internal/domain"
	"github.com/couchcryptid/nordic-etl/internal/nordic"
	"github.com/google/go-cmp/cmp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: nordic <decode|validate> [flags] FILE")
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	mode := fs.String("mode", "lenient", "parse mode: lenient or strict")
	enrich := fs.Bool("enrich", false, "decode: emit SeismicEvent records")
	verbose := fs.Bool("v", false, "log diagnostics and skipped lines")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "%s: expected exactly one FILE argument\n", args[0])
		return 2
	}

	m, err := nordic.ParseMode(*mode)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	data, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	switch args[0] {
	case "decode":
		if err := decode(data, fs.Arg(0), m, *enrich, logger, stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	case "validate":
		return validate(data, m, logger, stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		return 2
	}
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func decode(data []byte, source string, mode nordic.Mode, enrich bool, logger *slog.Logger, w io.Writer) error {
	enc := json.NewEncoder(w)
	dec := nordic.NewDecoder(bytes.NewReader(data), nordic.Options{Mode: mode, Logger: logger})
	for ev, err := range dec.All() {
		if err != nil {
			return err
		}
		if !enrich {
			if err := enc.Encode(ev); err != nil {
				return err
			}
			continue
		}
		se, err := domain.BuildSeismicEvent(source, ev)
		if err != nil {
			logger.Warn("skipping event", "error", err)
			continue
		}
		if err := enc.Encode(domain.EnrichSeismicEvent(se)); err != nil {
			return err
		}
	}
	events, lines := dec.Stats()
	logger.Info("decoded", "events", events, "lines", lines)
	return nil
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func validate(data []byte, mode nordic.Mode, logger *slog.Logger, w io.Writer) int {
	decodePhase := &phase{name: "decode"}
	diags := map[string]int{}
	events, err := nordic.Decode(bytes.NewReader(data), nordic.Options{
		Mode:   mode,
		Logger: logger,
		OnDiagnostic: func(d nordic.Diagnostic) {
			diags[d.Kind()]++
			decodePhase.errorf("%v", d.Err)
		},
	})
	if err != nil {
		decodePhase.errorf("%v", err)
	}

	timePhase := &phase{name: "timestamps"}
	for _, ev := range events {
		if _, err := ev.OriginTime(); err != nil {
			timePhase.errorf("event at line %d: origin time: %v", ev.Line, err)
			continue
		}
		for i, p := range ev.Picks {
			if _, err := p.ArrivalTime(ev.Effective()); err != nil {
				timePhase.errorf("event at line %d: pick %d (%s): %v", ev.Line, i, p.Station, err)
			}
		}
	}

	roundTrip := checkRoundTrip(events)

	phases := []*phase{decodePhase, timePhase, roundTrip}
	fmt.Fprintf(w, "events: %d\n", len(events))
	for _, kind := range slices.Sorted(maps.Keys(diags)) {
		fmt.Fprintf(w, "diagnostic %s: %d\n", kind, diags[kind])
	}

	code := 0
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			code = 1
		}
		fmt.Fprintf(w, "%-12s %s\n", p.name, status)
		for _, e := range p.errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	return code
}

// checkRoundTrip re-encodes every event and decodes it again. Fields beyond
// the encoders' precision are reported as differences.
func checkRoundTrip(events []nordic.Event) *phase {
	p := &phase{name: "round-trip"}
	for _, ev := range events {
		block, err := nordic.EncodeEvent(ev)
		if err != nil {
			p.errorf("event at line %d: encode: %v", ev.Line, err)
			continue
		}
		again, err := nordic.Decode(strings.NewReader(block), nordic.Options{Mode: nordic.Strict})
		if err != nil {
			p.errorf("event at line %d: decode: %v", ev.Line, err)
			continue
		}
		if len(again) != 1 {
			p.errorf("event at line %d: decoded %d events, want 1", ev.Line, len(again))
			continue
		}
		again[0].Line = ev.Line
		if diff := cmp.Diff(ev, again[0]); diff != "" {
			p.errorf("event at line %d: mismatch (-decoded +re-decoded):\n%s", ev.Line, diff)
		}
	}
	return p
}


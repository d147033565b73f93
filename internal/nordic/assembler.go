package nordic

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Event is one blank-terminated block of a bulletin: its hypocenter, the
// latest refinement, and the phase picks in input order.
type Event struct {
	Line       int         `json:"line"`
	Hypocenter Hypocenter  `json:"hypocenter"`
	Refinement *Refinement `json:"refinement,omitempty"`
	Picks      []PhasePick `json:"picks"`
}

// Effective returns the hypocenter with the refinement applied, if any.
func (e Event) Effective() Hypocenter {
	if e.Refinement == nil {
		return e.Hypocenter
	}
	return e.Refinement.Apply(e.Hypocenter)
}

// OriginTime is the normalized origin time of the effective hypocenter.
func (e Event) OriginTime() (time.Time, error) {
	return e.Effective().OriginTime()
}

// State is the assembler's position within the current event.
type State int

const (
	StateIdle     State = iota // no open event
	StateInHeader              // type-1 seen, header lines expected
	StateInPhases              // type-7 seen, phase cards expected
)

func (s State) String() string {
	switch s {
	case StateInHeader:
		return "in_header"
	case StateInPhases:
		return "in_phases"
	default:
		return "idle"
	}
}

// Mode selects how malformed input is handled.
type Mode int

const (
	// Lenient reports recoverable problems as diagnostics and keeps going.
	// Bad fields become absent, out-of-order cards are dropped, and an event
	// left open at end of input is still emitted.
	Lenient Mode = iota

	// Strict returns the first problem as an error and abandons the open
	// event. Duplicate hypocenters remain warnings in both modes.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// ParseMode parses "strict" or "lenient".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "lenient", "":
		return Lenient, nil
	default:
		return Lenient, errors.New(`invalid mode "` + s + `": want strict or lenient`)
	}
}

// Options configures an Assembler.
type Options struct {
	Mode Mode

	// Logger receives diagnostics at warn level and skipped lines at debug
	// level. Nil discards.
	Logger *slog.Logger

	// OnDiagnostic, when set, is called for every diagnostic in order.
	OnDiagnostic func(Diagnostic)
}

// Assembler turns classified lines into events. It holds only the current
// state and the open event; independent assemblers share nothing.
type Assembler struct {
	opts    Options
	logger  *slog.Logger
	state   State
	current *Event
}

// NewAssembler returns an idle assembler.
func NewAssembler(opts Options) *Assembler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Assembler{opts: opts, logger: logger}
}

// State returns the current state.
func (a *Assembler) State() State { return a.state }

// Feed advances the assembler by one line. It returns the sealed event when
// the line is the blank terminator of an open event. Errors are only
// returned in Strict mode.
func (a *Assembler) Feed(lineNo int, text string) (Event, bool, error) {
	kind, err := Classify(lineNo, text)
	if err != nil {
		return Event{}, false, a.fail(lineNo, err)
	}

	switch kind {
	case KindBlank:
		if a.current == nil {
			a.state = StateIdle
			return Event{}, false, nil
		}
		ev := *a.current
		a.reset()
		return ev, true, nil

	case KindHypocenter:
		if a.state != StateIdle {
			a.report(lineNo, &DuplicateHypocenterWarning{Line: lineNo, Text: text, First: a.current.Line})
			return Event{}, false, nil
		}
		h, derr := DecodeHypocenter(lineNo, text)
		if ok, err := a.accept(lineNo, derr); !ok {
			return Event{}, false, err
		}
		a.current = &Event{Line: lineNo, Hypocenter: h, Picks: []PhasePick{}}
		a.state = StateInHeader

	case KindRefinement:
		if a.state == StateIdle {
			return Event{}, false, a.fail(lineNo, &OutOfOrderError{Line: lineNo, Text: text, Reason: ReasonRefinementBeforeHypocenter})
		}
		ref, derr := DecodeRefinement(lineNo, text)
		if ok, err := a.accept(lineNo, derr); !ok {
			return Event{}, false, err
		}
		a.current.Refinement = &ref

	case KindHeaderTerminator:
		if a.state == StateInHeader {
			a.state = StateInPhases
			return Event{}, false, nil
		}
		a.logger.Debug("header terminator tolerated", "line", lineNo, "state", a.state.String())

	case KindPhase:
		if a.state != StateInPhases {
			return Event{}, false, a.fail(lineNo, &OutOfOrderError{Line: lineNo, Text: text, Reason: ReasonPhaseBeforeTerminator})
		}
		p, derr := DecodePhasePick(lineNo, text)
		if ok, err := a.accept(lineNo, derr); !ok {
			return Event{}, false, err
		}
		a.current.Picks = append(a.current.Picks, p)

	default:
		a.logger.Debug("skipping unsupported line", "line", lineNo, "type", string(typeCode(text)))
	}
	return Event{}, false, nil
}

// Finish handles end of input. An open event is emitted in Lenient mode
// (with an UnterminatedEventError diagnostic) and is an error in Strict mode.
func (a *Assembler) Finish() (Event, bool, error) {
	if a.current == nil {
		return Event{}, false, nil
	}
	err := &UnterminatedEventError{Line: a.current.Line, Picks: len(a.current.Picks)}
	if a.opts.Mode == Strict {
		a.reset()
		return Event{}, false, err
	}
	a.report(err.Line, err)
	ev := *a.current
	a.reset()
	return ev, true, nil
}

// accept applies the mode to a decoder error and reports whether the
// decoded record should be kept. Field errors are reported and the record
// kept in Lenient mode; everything else goes through fail.
func (a *Assembler) accept(lineNo int, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	var fe FieldErrors
	if a.opts.Mode == Lenient && errors.As(err, &fe) {
		for _, e := range fe {
			a.report(lineNo, e)
		}
		return true, nil
	}
	return false, a.fail(lineNo, err)
}

func (a *Assembler) fail(lineNo int, err error) error {
	if a.opts.Mode == Strict {
		a.reset()
		return err
	}
	a.report(lineNo, err)
	return nil
}

func (a *Assembler) report(lineNo int, err error) {
	d := Diagnostic{Line: lineNo, Err: err}
	a.logger.Warn("nordic diagnostic", "line", lineNo, "kind", d.Kind(), "error", err)
	if a.opts.OnDiagnostic != nil {
		a.opts.OnDiagnostic(d)
	}
}

func (a *Assembler) reset() {
	a.current = nil
	a.state = StateIdle
}

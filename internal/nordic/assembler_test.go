package nordic

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler_SingleEvent(t *testing.T) {
	a := NewAssembler(Options{})

	events, err := feedAll(a, hypLine, terminatorLine, sta01Line, sta02Line, "\n")
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, 1, ev.Line)
	assert.Equal(t, Some(2020), ev.Hypocenter.Year)
	assert.Equal(t, Some(10.0), ev.Hypocenter.Depth)
	assert.Nil(t, ev.Refinement)
	require.Len(t, ev.Picks, 2)
	assert.Equal(t, "STA01", ev.Picks[0].Station)
	assert.Equal(t, "STA02", ev.Picks[1].Station)
	assert.Equal(t, StateIdle, a.State())
}

func TestAssembler_StateTransitions(t *testing.T) {
	a := NewAssembler(Options{})
	steps := []struct {
		line string
		want State
	}{
		{"\n", StateIdle},
		{hypLine, StateInHeader},
		{refLine, StateInHeader},
		{card('3', at(1, "comment")), StateInHeader},
		{terminatorLine, StateInPhases},
		{terminatorLine, StateInPhases},
		{sta01Line, StateInPhases},
		{"\n", StateIdle},
	}
	for i, s := range steps {
		_, _, err := a.Feed(i+1, s.line)
		require.NoError(t, err)
		assert.Equal(t, s.want, a.State(), "after line %d", i+1)
	}
}

func TestAssembler_EventWithoutPicks(t *testing.T) {
	a := NewAssembler(Options{Mode: Strict})

	events, err := feedAll(a, hypLine, "\n")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotNil(t, events[0].Picks)
	assert.Empty(t, events[0].Picks)
}

func TestAssembler_BlankLinesOnly(t *testing.T) {
	a := NewAssembler(Options{Mode: Strict})

	events, err := feedAll(a, "\n", "   \n", "\n")
	require.NoError(t, err)
	assert.Empty(t, events)

	_, ok, err := a.Finish()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAssembler_Refinement(t *testing.T) {
	second := card('H', at(16, "13.000"))
	a := NewAssembler(Options{})

	events, err := feedAll(a, hypLine, refLine, second, terminatorLine, "\n")
	require.NoError(t, err)
	require.Len(t, events, 1)

	// The later refinement replaces the earlier one.
	ref := events[0].Refinement
	require.NotNil(t, ref)
	assert.Equal(t, Some(13.0), ref.Second)
	assert.False(t, ref.Latitude.Present())

	eff := events[0].Effective()
	assert.Equal(t, Some(13.0), eff.Second)
	assert.Equal(t, Some(28.5), eff.Latitude)
}

func TestAssembler_RefinementBeforeHypocenter(t *testing.T) {
	t.Run("lenient", func(t *testing.T) {
		var c collector
		a := NewAssembler(Options{OnDiagnostic: c.add})

		events, err := feedAll(a, refLine, hypLine, "\n")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Nil(t, events[0].Refinement)
		assert.Equal(t, []string{"out_of_order"}, c.kinds())
		assert.Equal(t, 1, c.diags[0].Line)
	})

	t.Run("strict", func(t *testing.T) {
		a := NewAssembler(Options{Mode: Strict})

		_, err := feedAll(a, refLine)
		var oe *OutOfOrderError
		require.True(t, errors.As(err, &oe))
		assert.Equal(t, ReasonRefinementBeforeHypocenter, oe.Reason)
		assert.ErrorIs(t, err, ErrStructural)
	})
}

func TestAssembler_PhaseBeforeTerminator(t *testing.T) {
	t.Run("lenient drops the card", func(t *testing.T) {
		var c collector
		a := NewAssembler(Options{OnDiagnostic: c.add})

		events, err := feedAll(a, hypLine, sta01Line, terminatorLine, sta02Line, "\n")
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Len(t, events[0].Picks, 1)
		assert.Equal(t, "STA02", events[0].Picks[0].Station)
		assert.Equal(t, []string{"out_of_order"}, c.kinds())
	})

	t.Run("lenient outside any event", func(t *testing.T) {
		var c collector
		a := NewAssembler(Options{OnDiagnostic: c.add})

		events, err := feedAll(a, sta01Line, "\n")
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.Equal(t, []string{"out_of_order"}, c.kinds())
	})

	t.Run("strict", func(t *testing.T) {
		a := NewAssembler(Options{Mode: Strict})

		_, err := feedAll(a, hypLine, sta01Line)
		var oe *OutOfOrderError
		require.True(t, errors.As(err, &oe))
		assert.Equal(t, ReasonPhaseBeforeTerminator, oe.Reason)
		assert.Equal(t, 2, oe.Line)
		assert.Equal(t, StateIdle, a.State())
	})
}

func TestAssembler_DuplicateHypocenter(t *testing.T) {
	for _, mode := range []Mode{Lenient, Strict} {
		t.Run(mode.String(), func(t *testing.T) {
			var c collector
			a := NewAssembler(Options{Mode: mode, OnDiagnostic: c.add})

			events, err := feedAll(a, hypLine, terminatorLine, hyp2Line, sta01Line, "\n")
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, Some(21), events[0].Hypocenter.Day)
			assert.Len(t, events[0].Picks, 1)

			require.Len(t, c.diags, 1)
			var dw *DuplicateHypocenterWarning
			require.True(t, errors.As(c.diags[0].Err, &dw))
			assert.Equal(t, 3, dw.Line)
			assert.Equal(t, 1, dw.First)
		})
	}
}

func TestAssembler_TerminatorOutsideHeaderIsTolerated(t *testing.T) {
	var c collector
	a := NewAssembler(Options{Mode: Strict, OnDiagnostic: c.add})

	events, err := feedAll(a, terminatorLine, "\n", hypLine, terminatorLine, terminatorLine, sta01Line, "\n")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Len(t, events[0].Picks, 1)
	assert.Empty(t, c.diags)
}

func TestAssembler_FieldErrors(t *testing.T) {
	badLat := splice(hypLine, 23, " 28.5x0")

	t.Run("lenient keeps the record", func(t *testing.T) {
		var c collector
		a := NewAssembler(Options{OnDiagnostic: c.add})

		events, err := feedAll(a, badLat, terminatorLine, sta01Line, "\n")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.False(t, events[0].Hypocenter.Latitude.Present())
		assert.Equal(t, Some(-15.4), events[0].Hypocenter.Longitude)
		assert.Len(t, events[0].Picks, 1)
		assert.Equal(t, []string{"numeric_format"}, c.kinds())
	})

	t.Run("strict fails", func(t *testing.T) {
		a := NewAssembler(Options{Mode: Strict})

		_, err := feedAll(a, badLat)
		assert.ErrorIs(t, err, ErrFieldFormat)
		assert.Equal(t, StateIdle, a.State())
	})
}

func TestAssembler_LineLengthMidEvent(t *testing.T) {
	var c collector
	a := NewAssembler(Options{OnDiagnostic: c.add})

	events, err := feedAll(a, hypLine, terminatorLine, " STA09SZ IP  short\n", sta01Line, "\n")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Len(t, events[0].Picks, 1)
	assert.Equal(t, []string{"line_length"}, c.kinds())
}

func TestAssembler_Finish(t *testing.T) {
	t.Run("lenient emits the open event", func(t *testing.T) {
		var c collector
		a := NewAssembler(Options{OnDiagnostic: c.add})

		_, err := feedAll(a, hypLine, terminatorLine, sta01Line)
		require.NoError(t, err)

		ev, ok, err := a.Finish()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Len(t, ev.Picks, 1)
		assert.Equal(t, []string{"unterminated_event"}, c.kinds())
		assert.Equal(t, StateIdle, a.State())
	})

	t.Run("strict fails", func(t *testing.T) {
		a := NewAssembler(Options{Mode: Strict})

		_, err := feedAll(a, hypLine, terminatorLine, sta01Line)
		require.NoError(t, err)

		_, ok, err := a.Finish()
		assert.False(t, ok)
		var ue *UnterminatedEventError
		require.True(t, errors.As(err, &ue))
		assert.Equal(t, 1, ue.Line)
		assert.Equal(t, 1, ue.Picks)
	})
}

func TestAssembler_EmittedEventsAreIndependent(t *testing.T) {
	a := NewAssembler(Options{})

	events, err := feedAll(a,
		hypLine, terminatorLine, sta01Line, sta02Line, "\n",
		hyp2Line, terminatorLine, sta03Line, sta01Line, sta02Line, "\n",
	)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Len(t, events[0].Picks, 2)
	assert.Len(t, events[1].Picks, 3)
	assert.Equal(t, "STA03", events[1].Picks[0].Station)
	assert.Equal(t, Some(21), events[0].Hypocenter.Day)
}

func TestAssembler_LogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	a := NewAssembler(Options{Logger: logger})

	_, err := feedAll(a, refLine)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "nordic diagnostic")
	assert.Contains(t, buf.String(), "kind=out_of_order")
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "strict", want: Strict},
		{in: " STRICT ", want: Strict},
		{in: "lenient", want: Lenient},
		{in: "", want: Lenient},
		{in: "sloppy", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

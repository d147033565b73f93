package nordic

import (
	"fmt"
	"strconv"
	"strings"
)

// lineBuilder renders fields into an 80-column record. The first field that
// does not fit its span is kept as the error.
type lineBuilder struct {
	buf [RecordWidth]byte
	err error
}

func newLineBuilder(lineType byte) *lineBuilder {
	b := &lineBuilder{}
	for i := range b.buf {
		b.buf[i] = ' '
	}
	b.buf[TypeColumn] = lineType
	return b
}

// put right-justifies s in span.
func (b *lineBuilder) put(name string, span Span, s string) {
	if b.err != nil {
		return
	}
	if len(s) > span.Width() {
		b.err = fmt.Errorf("encode %s: %q does not fit in %d columns", name, s, span.Width())
		return
	}
	copy(b.buf[span.End-len(s):span.End], s)
}

// left left-justifies s in span.
func (b *lineBuilder) left(name string, span Span, s string) {
	if b.err != nil {
		return
	}
	if len(s) > span.Width() {
		b.err = fmt.Errorf("encode %s: %q does not fit in %d columns", name, s, span.Width())
		return
	}
	copy(b.buf[span.Start:], s)
}

func (b *lineBuilder) optInt(name string, span Span, v Optional[int]) {
	if n, ok := v.Get(); ok {
		b.put(name, span, strconv.Itoa(n))
	}
}

func (b *lineBuilder) optFloat(name string, span Span, v Optional[float64], prec int) {
	if f, ok := v.Get(); ok {
		b.put(name, span, strconv.FormatFloat(f, 'f', prec, 64))
	}
}

func (b *lineBuilder) String() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return string(b.buf[:]) + "\n", nil
}

// EncodeHypocenter renders h as a type-1 line using the column table and the
// SEISAN precisions (seconds F4.1, latitude F7.3, longitude F8.3, depth F5.1,
// RMS F4.1, magnitudes F4.1).
func EncodeHypocenter(h Hypocenter) (string, error) {
	c := HypocenterColumns
	b := newLineBuilder('1')
	b.optInt("year", c.Year, h.Year)
	b.optInt("month", c.Month, h.Month)
	b.optInt("day", c.Day, h.Day)
	b.left("fixed time", c.FixedTime, h.FixedTime)
	b.optInt("hour", c.Hour, h.Hour)
	b.optInt("minute", c.Minute, h.Minute)
	b.optFloat("second", c.Second, h.Second, 1)
	b.left("location model", c.LocationModel, h.LocationModel)
	b.left("distance indicator", c.DistanceIndicator, h.DistanceIndicator)
	b.left("event type", c.EventType, h.EventType)
	b.optFloat("latitude", c.Latitude, h.Latitude, 3)
	b.optFloat("longitude", c.Longitude, h.Longitude, 3)
	b.optFloat("depth", c.Depth, h.Depth, 1)
	b.left("depth indicator", c.DepthIndicator, h.DepthIndicator)
	b.left("locating indicator", c.LocatingIndicator, h.LocatingIndicator)
	b.left("locating agency", c.LocatingAgency, h.LocatingAgency)
	b.optInt("station count", c.StationCount, h.StationCount)
	b.optFloat("rms", c.RMS, h.RMS, 1)
	for i, mc := range c.Magnitudes {
		m := h.Magnitudes[i]
		if !m.Value.Present() {
			continue
		}
		b.optFloat("magnitude", mc.Value, m.Value, 1)
		if len(m.Type) > 1 {
			b.left("magnitude type", mc.Type, m.Type[1:])
		}
		b.left("magnitude agency", mc.Agency, m.Agency)
	}
	return b.String()
}

// EncodeRefinement renders ref as a type-H line (seconds F6.3, latitude
// F9.5, longitude F10.5, depth F8.3, RMS F6.3).
func EncodeRefinement(ref Refinement) (string, error) {
	c := RefinementColumns
	b := newLineBuilder('H')
	b.optFloat("second", c.Second, ref.Second, 3)
	b.optFloat("latitude", c.Latitude, ref.Latitude, 5)
	b.optFloat("longitude", c.Longitude, ref.Longitude, 5)
	b.optFloat("depth", c.Depth, ref.Depth, 3)
	b.optFloat("rms", c.RMS, ref.RMS, 3)
	return b.String()
}

// HeaderTerminator returns the type-7 line that precedes the phase cards.
func HeaderTerminator() string {
	return " STAT SP IPHASW D HRMM SECON CODA AMPLIT PERI AZIMU VELO AIN AR TRES W  DIS CAZ7\n"
}

// EncodePhasePick renders p as a phase card with a blank type column
// (seconds F6.2, amplitude F7.1, period F4.2, direction F5.1, velocity F4.1,
// incidence F4.1, residual F5.2, distance F5.0).
func EncodePhasePick(p PhasePick) (string, error) {
	c := PhaseColumns
	b := newLineBuilder(' ')
	b.left("station", c.Station, p.Station)
	b.left("instrument type", c.InstrumentType, p.InstrumentType)
	b.left("component", c.Component, p.Component)
	b.left("onset", c.Onset, p.Onset)
	b.left("phase", c.Phase, p.Phase)
	b.optInt("weight code", c.WeightCode, p.WeightCode)
	b.left("pick mode", c.PickMode, p.PickMode)
	b.left("polarity", c.Polarity, p.Polarity)
	b.optInt("hour", c.Hour, p.Hour)
	b.optInt("minute", c.Minute, p.Minute)
	b.optFloat("second", c.Second, p.Second, 2)
	b.optInt("duration", c.Duration, p.Duration)
	b.optFloat("amplitude", c.Amplitude, p.Amplitude, 1)
	b.optFloat("period", c.Period, p.Period, 2)
	b.optFloat("direction", c.Direction, p.Direction, 1)
	b.optFloat("apparent velocity", c.ApparentVelocity, p.ApparentVelocity, 1)
	b.optFloat("incidence angle", c.IncidenceAngle, p.IncidenceAngle, 1)
	b.optInt("direction residual", c.DirectionResidual, p.DirectionResidual)
	b.optFloat("residual", c.Residual, p.Residual, 2)
	b.optInt("weight", c.Weight, p.Weight)
	b.optFloat("distance", c.Distance, p.Distance, 0)
	b.optInt("azimuth", c.Azimuth, p.Azimuth)
	return b.String()
}

// EncodeEvent renders ev as a complete block: hypocenter, refinement if any,
// header terminator, phase cards and the blank terminator line.
func EncodeEvent(ev Event) (string, error) {
	var sb strings.Builder
	line, err := EncodeHypocenter(ev.Hypocenter)
	if err != nil {
		return "", err
	}
	sb.WriteString(line)
	if ev.Refinement != nil {
		if line, err = EncodeRefinement(*ev.Refinement); err != nil {
			return "", err
		}
		sb.WriteString(line)
	}
	sb.WriteString(HeaderTerminator())
	for i, p := range ev.Picks {
		if line, err = EncodePhasePick(p); err != nil {
			return "", fmt.Errorf("pick %d: %w", i, err)
		}
		sb.WriteString(line)
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

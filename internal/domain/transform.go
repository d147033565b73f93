package domain

import (
	"bytes"
	"fmt"
	"time"

	"github.com/couchcryptid/nordic-etl/internal/nordic"
	"github.com/google/uuid"
)

// idNamespace scopes the name-based event IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/couchcryptid/nordic-etl/seismic-event"))

// midnightWindow is how far before its origin a pick may fall before it is
// treated as belonging to the next day.
const midnightWindow = 12 * time.Hour

// DecodeBulletin runs one assembler over the bulletin text and returns the
// sealed events in input order.
func DecodeBulletin(raw RawBulletin, opts nordic.Options) ([]nordic.Event, error) {
	events, err := nordic.Decode(bytes.NewReader(raw.Value), opts)
	if err != nil {
		return nil, fmt.Errorf("decode bulletin %s: %w", raw.Source(), err)
	}
	return events, nil
}

// BuildSeismicEvent derives the published record from a decoded event. It
// fails only when the origin time is missing or invalid.
func BuildSeismicEvent(source string, ev nordic.Event) (SeismicEvent, error) {
	h := ev.Effective()
	origin, err := h.OriginTime()
	if err != nil {
		return SeismicEvent{}, fmt.Errorf("event at line %d: origin time: %w", ev.Line, err)
	}

	picks := make([]SeismicPick, len(ev.Picks))
	for i, p := range ev.Picks {
		picks[i] = SeismicPick{PhasePick: p, Arrival: arrivalTime(p, h, origin)}
	}

	event := SeismicEvent{
		ID:         generateID(source, ev.Line, origin, h),
		Source:     source,
		Line:       ev.Line,
		OriginTime: origin,
		Latitude:   h.Latitude,
		Longitude:  h.Longitude,
		Depth:      h.Depth,
		Hypocenter: ev.Hypocenter,
		Refinement: ev.Refinement,
		Picks:      picks,
	}
	if m, ok := h.PreferredMagnitude(); ok {
		event.Magnitude = &m
	}
	return event, nil
}

// arrivalTime places the pick on the origin's date, rolling over midnight.
func arrivalTime(p nordic.PhasePick, h nordic.Hypocenter, origin time.Time) *time.Time {
	t, err := p.ArrivalTime(h)
	if err != nil {
		return nil
	}
	if origin.Sub(t) > midnightWindow {
		t = t.AddDate(0, 0, 1)
	}
	return &t
}

// generateID produces a deterministic UUIDv5 from the event's identity.
// Reprocessing the same bulletin yields the same IDs.
func generateID(source string, line int, origin time.Time, h nordic.Hypocenter) string {
	name := fmt.Sprintf("%s|%d|%s|%s|%s", source, line, origin.Format(time.RFC3339Nano), h.Latitude, h.Longitude)
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// EnrichSeismicEvent classifies the event and stamps the processing time.
func EnrichSeismicEvent(event SeismicEvent) SeismicEvent {
	event.EventClass = eventClass(event.Hypocenter.DistanceIndicator)
	event.ProcessedAt = clock.Now()
	return event
}

// eventClass maps the Nordic distance indicator to a class name.
func eventClass(indicator string) string {
	switch indicator {
	case "L":
		return "local"
	case "R":
		return "regional"
	case "D":
		return "distant"
	default:
		return ""
	}
}

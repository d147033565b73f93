package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/couchcryptid/nordic-etl/internal/nordic"
)

// RawBulletin represents an unprocessed message from the source topic. Value
// holds the full text of one Nordic bulletin file.
type RawBulletin struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Source names the bulletin: the message key when set, otherwise its topic
// position.
func (r RawBulletin) Source() string {
	if len(r.Key) > 0 {
		return string(r.Key)
	}
	return fmt.Sprintf("%s/%d/%d", r.Topic, r.Partition, r.Offset)
}

// SeismicPick is a decoded phase pick with its absolute arrival time.
// Arrival is nil when the pick has no usable clock time.
type SeismicPick struct {
	nordic.PhasePick
	Arrival *time.Time `json:"arrival_time,omitempty"`
}

// SeismicEvent is the record published to the sink topic, one per sealed
// Nordic event.
type SeismicEvent struct {
	ID         string                   `json:"id"`
	Source     string                   `json:"source"`
	Line       int                      `json:"line"`
	OriginTime time.Time                `json:"origin_time"`
	Latitude   nordic.Optional[float64] `json:"latitude"`
	Longitude  nordic.Optional[float64] `json:"longitude"`
	Depth      nordic.Optional[float64] `json:"depth"`
	Magnitude  *nordic.Magnitude        `json:"magnitude,omitempty"`
	EventClass string                   `json:"event_class,omitempty"` // "local", "regional", "distant"

	Hypocenter nordic.Hypocenter  `json:"hypocenter"`
	Refinement *nordic.Refinement `json:"refinement,omitempty"`
	Picks      []SeismicPick      `json:"picks"`

	// Geocoding enrichment fields.
	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "reverse", "original", "failed"

	ProcessedAt time.Time `json:"processed_at"`
}

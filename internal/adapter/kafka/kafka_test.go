package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/nordic-etl/internal/domain"
	"github.com/couchcryptid/nordic-etl/internal/nordic"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawBulletin(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("2020-08.nor"),
		Value:     []byte(" 2020  821 15 0 12.3LL\n"),
		Topic:     "nordic-bulletins",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "agency", Value: []byte("IGN")},
		},
	}

	raw := mapMessageToRawBulletin(msg)

	assert.Equal(t, []byte("2020-08.nor"), raw.Key)
	assert.Equal(t, msg.Value, raw.Value)
	assert.Equal(t, "nordic-bulletins", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "IGN", raw.Headers["agency"])
	assert.Nil(t, raw.Commit)
	assert.Equal(t, "2020-08.nor", raw.Source())
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	arrival := time.Date(2020, 8, 21, 15, 0, 14, 520000000, time.UTC)
	event := domain.SeismicEvent{
		ID:         "6f1c1f1e-0000-5000-8000-000000000000",
		Source:     "2020-08.nor",
		Line:       1,
		OriginTime: time.Date(2020, 8, 21, 15, 0, 12, 345000000, time.UTC),
		Latitude:   nordic.Some(28.5),
		Longitude:  nordic.Some(-15.4),
		EventClass: "local",
		Picks: []domain.SeismicPick{{
			PhasePick: nordic.PhasePick{Station: "STA01", Phase: "P"},
			Arrival:   &arrival,
		}},
		ProcessedAt: now,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte(event.ID), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("local"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "2020-08.nor", body["source"])
	assert.Equal(t, "2020-08-21T15:00:12.345Z", body["origin_time"])
	assert.InDelta(t, 28.5, body["latitude"], 0)
	assert.Nil(t, body["depth"], "absent values are null")

	picks, ok := body["picks"].([]any)
	require.True(t, ok)
	require.Len(t, picks, 1)
	pick := picks[0].(map[string]any)
	assert.Equal(t, "STA01", pick["station"])
	assert.Equal(t, "2020-08-21T15:00:14.52Z", pick["arrival_time"])
}

func TestSerializeToMessage_RoundTrip(t *testing.T) {
	event := domain.SeismicEvent{
		ID:        "evt-1",
		Depth:     nordic.Some(10.25),
		Magnitude: &nordic.Magnitude{Value: nordic.Some(3.1), Type: "ML", Agency: "IGN"},
		Picks:     []domain.SeismicPick{},
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	var got domain.SeismicEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, event.Depth, got.Depth)
	assert.Equal(t, event.Magnitude, got.Magnitude)
	assert.False(t, got.Latitude.Present())
}

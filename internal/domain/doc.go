// Package domain models seismic events decoded from Nordic bulletins.
//
// # Data Source
//
// Bulletins are SEISAN catalog-exchange files in the Nordic fixed-width
// format. The upstream collector publishes the full text of one bulletin
// file per Kafka message, keyed by the file name. Decoding of the format
// itself lives in package nordic; this package turns the decoded events into
// the records published downstream.
//
// # Time Conventions
//
// Origin times come from the hypocenter line, with any type-H refinement
// applied, and are normalized to UTC with microsecond precision. Seconds of
// 60.0 and above are clamped to 59.999.
//
// Phase cards carry only hour, minute and second. Arrival times take the
// date of the origin. A pick more than 12 hours before its origin crossed
// midnight and is moved to the following day.
//
// # Event Class
//
// The distance indicator of the hypocenter line maps to a coarse class used
// as the Kafka event_type header:
//
//	L  local
//	R  regional
//	D  distant
//
// Any other value leaves the class empty.
//
// # ID Generation
//
// Event IDs are name-based UUIDs (version 5) of source|line|origin|lat|lon.
// Replaying the same bulletin produces the same IDs, which keeps downstream
// upserts idempotent. See [generateID].
package domain

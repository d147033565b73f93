// Package nordic decodes SEISAN bulletin files in the Nordic fixed-width format.
//
// # Line Types
//
// Every non-blank line is 80 content columns followed by a line terminator.
// The character at column 80 (0-indexed 79) selects the record type:
//
//	'1'  hypocenter line: origin time, location, depth, up to three magnitudes
//	'H'  high-precision refinement of the hypocenter seconds/location/depth/RMS
//	'7'  phase card header; ends the header block of an event
//	' '  phase card (type 4) when the line carries more than five characters
//	     of content; SEISAN also writes an explicit '4' in some files
//
// A blank line ends an event. Macroseismic (2), comment (3), error (E) and
// waveform (6) lines are recognized as unsupported and skipped.
//
// # Missing Values
//
// A field whose columns are all blank is absent, which is distinct from zero.
// Numeric fields are therefore [Optional] values. Single-character codes
// (fixed-time flag, event type, onset, polarity, ...) are carried through as
// opaque strings with blanks trimmed; this package never interprets them.
//
// # Assembly
//
// An [Assembler] consumes classified lines in file order and emits one [Event]
// per blank-terminated block. [Decoder] wraps an io.Reader and exposes the
// events as a forward-only sequence. The [Mode] in [Options] decides whether
// malformed input stops the sequence (Strict) or is reported as a
// [Diagnostic] and skipped (Lenient).
package nordic

package nordic

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DecodeOptionalInt decodes the columns in span as a decimal integer.
// All-blank columns are absent. Columns beyond the end of text count as blank.
func DecodeOptionalInt(lineNo int, text string, span Span) (Optional[int], error) {
	raw := slice(text, span)
	s := strings.TrimSpace(raw)
	if s == "" {
		return None[int](), nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return None[int](), &NumericFormatError{Line: lineNo, Span: span, Raw: raw, Kind: "int"}
	}
	return Some(v), nil
}

// DecodeOptionalFloat decodes the columns in span as a decimal number with an
// explicit decimal point where one is present in the text. Exponents are
// accepted; hexadecimal, infinities and NaN are not.
func DecodeOptionalFloat(lineNo int, text string, span Span) (Optional[float64], error) {
	raw := slice(text, span)
	s := strings.TrimSpace(raw)
	if s == "" {
		return None[float64](), nil
	}
	if !isDecimal(s) {
		return None[float64](), &NumericFormatError{Line: lineNo, Span: span, Raw: raw, Kind: "float"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return None[float64](), &NumericFormatError{Line: lineNo, Span: span, Raw: raw, Kind: "float"}
	}
	return Some(v), nil
}

func isDecimal(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
		case c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

// slice returns the columns of span. Columns count characters, so a line
// carrying non-ASCII text is indexed by rune.
func slice(text string, span Span) string {
	if !isASCII(text) {
		runes := []rune(text)
		if span.Start >= len(runes) {
			return ""
		}
		return string(runes[span.Start:min(span.End, len(runes))])
	}
	if span.Start >= len(text) {
		return ""
	}
	end := min(span.End, len(text))
	return text[span.Start:end]
}

// lineWidth is the length of text in characters.
func lineWidth(text string) int {
	return utf8.RuneCountInString(text)
}

// typeCode returns the character in TypeColumn, or 0 for a shorter line.
func typeCode(text string) rune {
	if isASCII(text) {
		if len(text) <= TypeColumn {
			return 0
		}
		return rune(text[TypeColumn])
	}
	runes := []rune(text)
	if len(runes) <= TypeColumn {
		return 0
	}
	return runes[TypeColumn]
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// fieldReader decodes the fields of one line and collects field-level errors
// so the caller gets a complete record with the failed fields absent.
type fieldReader struct {
	line int
	text string
	errs FieldErrors
}

func (r *fieldReader) optInt(span Span) Optional[int] {
	v, err := DecodeOptionalInt(r.line, r.text, span)
	r.collect(err)
	return v
}

func (r *fieldReader) optFloat(span Span) Optional[float64] {
	v, err := DecodeOptionalFloat(r.line, r.text, span)
	r.collect(err)
	return v
}

// code returns a single-character code with blanks trimmed.
func (r *fieldReader) code(span Span) string {
	return strings.TrimSpace(slice(r.text, span))
}

// str returns the columns with trailing blanks trimmed. Leading blanks are
// kept so right-justified values survive a round trip.
func (r *fieldReader) str(span Span) string {
	return strings.TrimRight(slice(r.text, span), " ")
}

func (r *fieldReader) collect(err error) {
	if err == nil {
		return
	}
	if nf, ok := err.(*NumericFormatError); ok {
		r.errs = append(r.errs, nf)
	}
}

func (r *fieldReader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs
}

package nordic

import "strings"

// LineKind is the routing decision for one raw line.
type LineKind int

const (
	KindUnsupported LineKind = iota
	KindBlank
	KindHypocenter
	KindRefinement
	KindHeaderTerminator
	KindPhase
)

func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindHypocenter:
		return "hypocenter"
	case KindRefinement:
		return "refinement"
	case KindHeaderTerminator:
		return "header_terminator"
	case KindPhase:
		return "phase"
	default:
		return "unsupported"
	}
}

// minPhaseContent is the content length a blank-typed line must exceed to be
// read as a phase card.
const minPhaseContent = 5

// Classify routes a raw line by blankness, length and the type column.
// text includes its terminator. Width is counted in characters; a non-blank
// line of any width other than LineWidth is a LineLengthError.
func Classify(lineNo int, text string) (LineKind, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return KindBlank, nil
	}
	if n := lineWidth(text); n != LineWidth {
		return KindUnsupported, &LineLengthError{Line: lineNo, Text: text, Length: n}
	}

	switch typeCode(text) {
	case '1':
		return KindHypocenter, nil
	case 'H':
		return KindRefinement, nil
	case '7':
		return KindHeaderTerminator, nil
	case ' ', '4':
		if lineWidth(content) > minPhaseContent {
			return KindPhase, nil
		}
	}
	return KindUnsupported, nil
}

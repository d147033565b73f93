package nordic

// Refinement holds the higher-precision origin values of a type-H line.
type Refinement struct {
	Second    Optional[float64] `json:"second"`
	Latitude  Optional[float64] `json:"latitude"`
	Longitude Optional[float64] `json:"longitude"`
	Depth     Optional[float64] `json:"depth"`
	RMS       Optional[float64] `json:"rms"`
}

// DecodeRefinement decodes a type-H line. The caller has already classified
// the line; only a width check is made here.
func DecodeRefinement(lineNo int, text string) (Refinement, error) {
	if n := lineWidth(text); n < RecordWidth {
		return Refinement{}, &LineLengthError{Line: lineNo, Text: text, Length: n}
	}

	c := RefinementColumns
	r := fieldReader{line: lineNo, text: text}
	ref := Refinement{
		Second:    r.optFloat(c.Second),
		Latitude:  r.optFloat(c.Latitude),
		Longitude: r.optFloat(c.Longitude),
		Depth:     r.optFloat(c.Depth),
		RMS:       r.optFloat(c.RMS),
	}
	return ref, r.err()
}

// Apply returns h with every present refinement value written over it.
func (ref Refinement) Apply(h Hypocenter) Hypocenter {
	if ref.Second.Present() {
		h.Second = ref.Second
	}
	if ref.Latitude.Present() {
		h.Latitude = ref.Latitude
	}
	if ref.Longitude.Present() {
		h.Longitude = ref.Longitude
	}
	if ref.Depth.Present() {
		h.Depth = ref.Depth
	}
	if ref.RMS.Present() {
		h.RMS = ref.RMS
	}
	return h
}

package nordic

// Magnitude is one of the three magnitude groups of a hypocenter line.
// Type and Agency are empty whenever Value is absent.
type Magnitude struct {
	Value  Optional[float64] `json:"value"`
	Type   string            `json:"type,omitempty"` // "M" + type letter, e.g. "ML", "MW"
	Agency string            `json:"agency,omitempty"`
}

// Hypocenter is the decoded type-1 line of an event.
type Hypocenter struct {
	Year              Optional[int]     `json:"year"`
	Month             Optional[int]     `json:"month"`
	Day               Optional[int]     `json:"day"`
	FixedTime         string            `json:"fixed_time,omitempty"`
	Hour              Optional[int]     `json:"hour"`
	Minute            Optional[int]     `json:"minute"`
	Second            Optional[float64] `json:"second"`
	LocationModel     string            `json:"location_model,omitempty"`
	DistanceIndicator string            `json:"distance_indicator,omitempty"`
	EventType         string            `json:"event_type,omitempty"`
	Latitude          Optional[float64] `json:"latitude"`
	Longitude         Optional[float64] `json:"longitude"`
	Depth             Optional[float64] `json:"depth"`
	DepthIndicator    string            `json:"depth_indicator,omitempty"`
	LocatingIndicator string            `json:"locating_indicator,omitempty"`
	LocatingAgency    string            `json:"locating_agency,omitempty"`
	StationCount      Optional[int]     `json:"station_count"`
	RMS               Optional[float64] `json:"rms"`
	Magnitudes        [3]Magnitude      `json:"magnitudes"`
}

// DecodeHypocenter decodes a type-1 line. The line must be exactly LineWidth
// characters with '1' in the type column.
//
// Field-level failures are returned as FieldErrors together with the decoded
// record, in which the failed fields are absent.
func DecodeHypocenter(lineNo int, text string) (Hypocenter, error) {
	if n := lineWidth(text); n != LineWidth {
		return Hypocenter{}, &LineLengthError{Line: lineNo, Text: text, Length: n}
	}
	if code := typeCode(text); code != '1' {
		return Hypocenter{}, &LineTypeError{Line: lineNo, Text: text, Want: '1', Got: code}
	}

	c := HypocenterColumns
	r := fieldReader{line: lineNo, text: text}

	var mags [3]Magnitude
	for i, mc := range c.Magnitudes {
		mags[i] = decodeMagnitude(&r, mc)
	}

	h := Hypocenter{
		Year:              r.optInt(c.Year),
		Month:             r.optInt(c.Month),
		Day:               r.optInt(c.Day),
		FixedTime:         r.code(c.FixedTime),
		Hour:              r.optInt(c.Hour),
		Minute:            r.optInt(c.Minute),
		Second:            r.optFloat(c.Second),
		LocationModel:     r.code(c.LocationModel),
		DistanceIndicator: r.code(c.DistanceIndicator),
		EventType:         r.code(c.EventType),
		Latitude:          r.optFloat(c.Latitude),
		Longitude:         r.optFloat(c.Longitude),
		Depth:             r.optFloat(c.Depth),
		DepthIndicator:    r.code(c.DepthIndicator),
		LocatingIndicator: r.code(c.LocatingIndicator),
		LocatingAgency:    r.str(c.LocatingAgency),
		StationCount:      r.optInt(c.StationCount),
		RMS:               r.optFloat(c.RMS),
		Magnitudes:        mags,
	}
	return h, r.err()
}

func decodeMagnitude(r *fieldReader, mc MagnitudeLayout) Magnitude {
	v := r.optFloat(mc.Value)
	if !v.Present() {
		return Magnitude{}
	}
	return Magnitude{
		Value:  v,
		Type:   "M" + r.code(mc.Type),
		Agency: r.str(mc.Agency),
	}
}

// PreferredMagnitude returns the first present magnitude group.
func (h Hypocenter) PreferredMagnitude() (Magnitude, bool) {
	for _, m := range h.Magnitudes {
		if m.Value.Present() {
			return m, true
		}
	}
	return Magnitude{}, false
}

package nordic

// PhasePick is one station observation decoded from a type-4 phase card.
type PhasePick struct {
	Station           string            `json:"station"`
	InstrumentType    string            `json:"instrument_type,omitempty"`
	Component         string            `json:"component,omitempty"`
	Onset             string            `json:"onset,omitempty"`
	Phase             string            `json:"phase"`
	WeightCode        Optional[int]     `json:"weight_code"`
	PickMode          string            `json:"pick_mode,omitempty"`
	Polarity          string            `json:"polarity,omitempty"`
	Hour              Optional[int]     `json:"hour"`
	Minute            Optional[int]     `json:"minute"`
	Second            Optional[float64] `json:"second"`
	Duration          Optional[int]     `json:"duration"`
	Amplitude         Optional[float64] `json:"amplitude"`
	Period            Optional[float64] `json:"period"`
	Direction         Optional[float64] `json:"direction"`
	ApparentVelocity  Optional[float64] `json:"apparent_velocity"`
	IncidenceAngle    Optional[float64] `json:"incidence_angle"`
	DirectionResidual Optional[int]     `json:"direction_residual"`
	Residual          Optional[float64] `json:"residual"`
	Weight            Optional[int]     `json:"weight"`
	Distance          Optional[float64] `json:"distance"`
	Azimuth           Optional[int]     `json:"azimuth"`
}

// DecodePhasePick decodes a type-4 phase card.
func DecodePhasePick(lineNo int, text string) (PhasePick, error) {
	if n := lineWidth(text); n < RecordWidth {
		return PhasePick{}, &LineLengthError{Line: lineNo, Text: text, Length: n}
	}

	c := PhaseColumns
	r := fieldReader{line: lineNo, text: text}
	p := PhasePick{
		Station:           r.code(c.Station),
		InstrumentType:    r.code(c.InstrumentType),
		Component:         r.code(c.Component),
		Onset:             r.code(c.Onset),
		Phase:             r.str(c.Phase),
		WeightCode:        r.optInt(c.WeightCode),
		PickMode:          r.code(c.PickMode),
		Polarity:          r.code(c.Polarity),
		Hour:              r.optInt(c.Hour),
		Minute:            r.optInt(c.Minute),
		Second:            r.optFloat(c.Second),
		Duration:          r.optInt(c.Duration),
		Amplitude:         r.optFloat(c.Amplitude),
		Period:            r.optFloat(c.Period),
		Direction:         r.optFloat(c.Direction),
		ApparentVelocity:  r.optFloat(c.ApparentVelocity),
		IncidenceAngle:    r.optFloat(c.IncidenceAngle),
		DirectionResidual: r.optInt(c.DirectionResidual),
		Residual:          r.optFloat(c.Residual),
		Weight:            r.optInt(c.Weight),
		Distance:          r.optFloat(c.Distance),
		Azimuth:           r.optInt(c.Azimuth),
	}
	return p, r.err()
}

package nordic

const (
	// RecordWidth is the number of content columns in a Nordic line.
	RecordWidth = 80

	// LineWidth is RecordWidth plus the line terminator.
	LineWidth = RecordWidth + 1

	// TypeColumn is the 0-indexed column holding the line type character.
	TypeColumn = 79
)

// Span is a half-open, 0-indexed column range [Start, End).
type Span struct {
	Start int
	End   int
}

// Width returns the number of columns covered by the span.
func (s Span) Width() int { return s.End - s.Start }

// Col returns the single-column span at index i.
func Col(i int) Span { return Span{Start: i, End: i + 1} }

// MagnitudeLayout locates one of the three magnitude groups of a type-1 line.
type MagnitudeLayout struct {
	Value  Span // F4.1
	Type   Span // letter appended to "M"
	Agency Span
}

// HypocenterLayout is the column table of a type-1 line.
type HypocenterLayout struct {
	Year, Month, Day             Span
	FixedTime                    Span
	Hour, Minute, Second         Span
	LocationModel                Span
	DistanceIndicator, EventType Span
	Latitude, Longitude, Depth   Span
	DepthIndicator               Span
	LocatingIndicator            Span
	LocatingAgency               Span
	StationCount                 Span
	RMS                          Span
	Magnitudes                   [3]MagnitudeLayout
}

// RefinementLayout is the column table of a type-H line.
type RefinementLayout struct {
	Second, Latitude, Longitude, Depth, RMS Span
}

// PhaseLayout is the column table of a type-4 phase card.
type PhaseLayout struct {
	Station           Span
	InstrumentType    Span
	Component         Span
	Onset             Span
	Phase             Span
	WeightCode        Span
	PickMode          Span
	Polarity          Span
	Hour, Minute      Span
	Second            Span
	Duration          Span
	Amplitude         Span
	Period            Span
	Direction         Span
	ApparentVelocity  Span
	IncidenceAngle    Span
	DirectionResidual Span
	Residual          Span
	Weight            Span
	Distance          Span
	Azimuth           Span
}

// HypocenterColumns, RefinementColumns and PhaseColumns are shared by the
// decoders and encoders. The offsets are fixed by the format.
var (
	HypocenterColumns = HypocenterLayout{
		Year:              Span{1, 5},
		Month:             Span{6, 8},
		Day:               Span{8, 10},
		FixedTime:         Col(10),
		Hour:              Span{11, 13},
		Minute:            Span{13, 15},
		Second:            Span{16, 20},
		LocationModel:     Col(20),
		DistanceIndicator: Col(21),
		EventType:         Col(22),
		Latitude:          Span{23, 30},
		Longitude:         Span{30, 38},
		Depth:             Span{38, 43},
		DepthIndicator:    Col(43),
		LocatingIndicator: Col(44),
		LocatingAgency:    Span{45, 48},
		StationCount:      Span{48, 51},
		RMS:               Span{51, 55},
		Magnitudes: [3]MagnitudeLayout{
			{Value: Span{55, 59}, Type: Col(59), Agency: Span{60, 63}},
			{Value: Span{63, 67}, Type: Col(67), Agency: Span{68, 71}},
			{Value: Span{71, 75}, Type: Col(75), Agency: Span{76, 79}},
		},
	}

	RefinementColumns = RefinementLayout{
		Second:    Span{16, 22},
		Latitude:  Span{23, 32},
		Longitude: Span{33, 43},
		Depth:     Span{44, 52},
		RMS:       Span{53, 59},
	}

	PhaseColumns = PhaseLayout{
		Station:           Span{1, 6},
		InstrumentType:    Col(6),
		Component:         Col(7),
		Onset:             Col(9),
		Phase:             Span{10, 14},
		WeightCode:        Col(14),
		PickMode:          Col(15),
		Polarity:          Col(16),
		Hour:              Span{18, 20},
		Minute:            Span{20, 22},
		Second:            Span{22, 28},
		Duration:          Span{29, 33},
		Amplitude:         Span{33, 40},
		Period:            Span{41, 45},
		Direction:         Span{46, 51},
		ApparentVelocity:  Span{52, 56},
		IncidenceAngle:    Span{56, 60},
		DirectionResidual: Span{60, 63},
		Residual:          Span{63, 68},
		Weight:            Span{68, 70},
		Distance:          Span{70, 75},
		Azimuth:           Span{76, 79},
	}
)

package nordic

import (
	"math"
	"time"
)

// MaxSecond is the largest seconds value accepted by NormalizeTime. Catalogs
// write 60.0 and above as a rounding artifact of the fixed-width format.
const MaxSecond = 59.999

// ClampSecond limits s to MaxSecond.
func ClampSecond(s float64) float64 {
	if s > MaxSecond {
		return MaxSecond
	}
	return s
}

// NormalizeTime combines calendar fields and fractional seconds into a UTC
// timestamp with microsecond precision. Seconds are clamped to MaxSecond
// before validation.
func NormalizeTime(year, month, day, hour, minute int, second float64) (time.Time, error) {
	sec := ClampSecond(second)
	invalid := func(reason string) error {
		return &InvalidTimestampError{
			Year: year, Month: month, Day: day, Hour: hour, Minute: minute,
			Second: sec, Reason: reason,
		}
	}

	switch {
	case month < 1 || month > 12:
		return time.Time{}, invalid("month out of range")
	case day < 1 || day > daysIn(year, time.Month(month)):
		return time.Time{}, invalid("day out of range")
	case hour < 0 || hour > 23:
		return time.Time{}, invalid("hour out of range")
	case minute < 0 || minute > 59:
		return time.Time{}, invalid("minute out of range")
	case math.IsNaN(sec) || sec < 0:
		return time.Time{}, invalid("second out of range")
	}

	whole := math.Floor(sec)
	micros := math.Round((sec - whole) * 1e6)
	if micros >= 1e6 {
		whole++
		micros -= 1e6
	}
	return time.Date(year, time.Month(month), day, hour, minute, int(whole), int(micros)*int(time.Microsecond), time.UTC), nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// OriginTime normalizes the hypocenter's calendar fields. A missing second
// counts as zero; any other missing field is an InvalidTimestampError.
func (h Hypocenter) OriginTime() (time.Time, error) {
	return timeFromFields(h.Year, h.Month, h.Day, h.Hour, h.Minute, h.Second)
}

// ArrivalTime places the pick on the date of its event's hypocenter.
func (p PhasePick) ArrivalTime(h Hypocenter) (time.Time, error) {
	return timeFromFields(h.Year, h.Month, h.Day, p.Hour, p.Minute, p.Second)
}

func timeFromFields(year, month, day, hour, minute Optional[int], second Optional[float64]) (time.Time, error) {
	y, okY := year.Get()
	mo, okMo := month.Get()
	d, okD := day.Get()
	hr, okH := hour.Get()
	mi, okMi := minute.Get()
	if !okY || !okMo || !okD || !okH || !okMi {
		return time.Time{}, &InvalidTimestampError{
			Year: y, Month: mo, Day: d, Hour: hr, Minute: mi,
			Second: second.Or(0), Reason: "missing calendar field",
		}
	}
	return NormalizeTime(y, mo, d, hr, mi, second.Or(0))
}

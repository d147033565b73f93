package nordic

import "strings"

// Lines of testdata/sample.nor.
const (
	hypLine   = " 2020  821 15 0 12.3LL  28.500 -15.400 10.0  IGN 12 0.4 3.1LIGN 2.9WIGN        1\n"
	refLine   = "                12.345  28.50123  -15.40045   10.250  0.412                    H\n"
	sta01Line = " STA01SZ IP     C 15 0 14.52                                    0.12     45 123 \n"
	sta02Line = " STA02SN ES   2   15 0 16.80                                   -0.30 8   52 210 \n"
	hyp2Line  = " 2020  822  314 60.0LL  27.900 -16.100  5.0  IGN  4 0.2                        1\n"
	sta03Line = " STA03SZ IP   1 D  315  2.10                                    0.05     31  45 \n"
)

var terminatorLine = HeaderTerminator()

// commentLine is a type-3 line whose place name is 80 characters but more
// than 80 bytes.
var commentLine = " LA PALMA, ESPAÑA" + strings.Repeat(" ", TypeColumn-17) + "3\n"

// card builds a full-width line with lineType in the type column and each
// value copied in at its start column.
func card(lineType byte, values ...placed) string {
	b := []byte(strings.Repeat(" ", RecordWidth))
	b[TypeColumn] = lineType
	for _, v := range values {
		copy(b[v.at:], v.s)
	}
	return string(b) + "\n"
}

type placed struct {
	at int
	s  string
}

func at(col int, s string) placed { return placed{at: col, s: s} }

// splice overwrites text starting at col.
func splice(text string, col int, s string) string {
	return text[:col] + s + text[col+len(s):]
}

// feedAll feeds lines starting at line 1 and collects emitted events.
func feedAll(a *Assembler, lines ...string) ([]Event, error) {
	var events []Event
	for i, l := range lines {
		ev, ok, err := a.Feed(i+1, l)
		if err != nil {
			return events, err
		}
		if ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

// collector records diagnostics passed to Options.OnDiagnostic.
type collector struct {
	diags []Diagnostic
}

func (c *collector) add(d Diagnostic) { c.diags = append(c.diags, d) }

func (c *collector) kinds() []string {
	out := make([]string, len(c.diags))
	for i, d := range c.diags {
		out[i] = d.Kind()
	}
	return out
}

// Command genmock generates a synthetic Nordic bulletin and the SeismicEvent
// fixture the ETL service produces from it. Output is fully determined by
// the seed, and records use the domain package so the fixture matches real
// pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -n 50 -seed 42 \
//	  -out data/mock/bulletin.nor \
//	  -json data/mock/bulletin_events.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/nordic-etl/internal/domain"
	"github.com/couchcryptid/nordic-etl/internal/nordic"
	"github.com/jonboulle/clockwork"
)

var baseTime = time.Date(2024, time.April, 26, 0, 0, 0, 0, time.UTC)

// fixtureSource is the Source recorded on fixture events, standing in for a
// Kafka message key.
const fixtureSource = "genmock"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	n := flag.Int("n", 20, "number of events to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	out := flag.String("out", "", "output path for the Nordic bulletin")
	jsonOut := flag.String("json", "", "optional output path for the SeismicEvent JSON fixture")
	flag.Parse()

	if *out == "" || *n <= 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out, -n > 0")
	}

	events := generate(rand.New(rand.NewPCG(*seed, *seed)), *n)

	bulletin, err := render(events)
	if err != nil {
		return fmt.Errorf("rendering bulletin: %w", err)
	}
	if err := os.WriteFile(*out, []byte(bulletin), 0o644); err != nil { //nolint:gosec // fixture is not sensitive
		return fmt.Errorf("writing bulletin: %w", err)
	}
	log.Printf("wrote bulletin: %s (%d events)", *out, len(events))

	if *jsonOut != "" {
		// Set a fixed clock for reproducible ProcessedAt timestamps.
		domain.SetClock(clockwork.NewFakeClockAt(baseTime.Add(48 * time.Hour)))
		defer domain.SetClock(nil)

		fixture, err := buildFixture(bulletin)
		if err != nil {
			return fmt.Errorf("building fixture: %w", err)
		}
		if err := writeJSON(*jsonOut, fixture); err != nil {
			return fmt.Errorf("writing JSON fixture: %w", err)
		}
		log.Printf("wrote JSON fixture: %s", *jsonOut)
		printStats(fixture)
	}
	return nil
}

// distanceClass describes the epicentral distances and source region of one
// distance indicator.
type distanceClass struct {
	indicator      string
	minKm, maxKm   int
	latMin, latMax float64
	lonMin, lonMax float64
}

var classes = []distanceClass{
	{indicator: "L", minKm: 5, maxKm: 400, latMin: 58, latMax: 64, lonMin: 3, lonMax: 12},
	{indicator: "R", minKm: 400, maxKm: 1500, latMin: 66, latMax: 74, lonMin: -10, lonMax: 20},
	{indicator: "D", minKm: 2000, maxKm: 9000, latMin: 27, latMax: 29, lonMin: -18, lonMax: -13},
}

// pickClass returns L, R or D with weights 7:2:1.
func pickClass(rng *rand.Rand) distanceClass {
	switch r := rng.IntN(10); {
	case r < 7:
		return classes[0]
	case r < 9:
		return classes[1]
	default:
		return classes[2]
	}
}

// generate builds n events spaced minutes to hours apart from baseTime.
// Every value is drawn at the encoders' precision so the rendered bulletin
// decodes back to exactly these events.
func generate(rng *rand.Rand, n int) []nordic.Event {
	events := make([]nordic.Event, 0, n)
	// Origin times are tracked in deciseconds, matching the F4.1 seconds field.
	origin := int64(0)
	for range n {
		origin += int64(5+rng.IntN(240))*600 + int64(rng.IntN(600))
		events = append(events, generateEvent(rng, origin))
	}
	return events
}

func generateEvent(rng *rand.Rand, originDs int64) nordic.Event {
	class := pickClass(rng)
	t := baseTime.Add(time.Duration(originDs) * 100 * time.Millisecond)
	ds := int(originDs % 600) // deciseconds within the minute

	h := nordic.Hypocenter{
		Year:              nordic.Some(t.Year()),
		Month:             nordic.Some(int(t.Month())),
		Day:               nordic.Some(t.Day()),
		Hour:              nordic.Some(t.Hour()),
		Minute:            nordic.Some(t.Minute()),
		Second:            nordic.Some(float64(ds) / 10),
		LocationModel:     "L",
		DistanceIndicator: class.indicator,
		Latitude:          nordic.Some(scaled(rng, class.latMin, class.latMax, 1000)),
		Longitude:         nordic.Some(scaled(rng, class.lonMin, class.lonMax, 1000)),
		Depth:             nordic.Some(float64(rng.IntN(400)) / 10),
		LocatingAgency:    "BER",
		RMS:               nordic.Some(float64(rng.IntN(20)) / 10),
	}
	h.Magnitudes[0] = nordic.Magnitude{
		Value:  nordic.Some(float64(5+rng.IntN(50)) / 10),
		Type:   "ML",
		Agency: "BER",
	}
	if class.indicator != "L" {
		h.Magnitudes[1] = nordic.Magnitude{
			Value:  nordic.Some(float64(30+rng.IntN(40)) / 10),
			Type:   "MW",
			Agency: "BER",
		}
	}

	ev := nordic.Event{Hypocenter: h, Picks: []nordic.PhasePick{}}

	// Roughly a third of events carry a relocation.
	if rng.IntN(3) == 0 {
		ev.Refinement = &nordic.Refinement{
			Second:    nordic.Some(float64(ds*100+rng.IntN(100)) / 1000),
			Latitude:  nordic.Some(h.Latitude.Or(0) + float64(rng.IntN(200)-100)/100000),
			Longitude: nordic.Some(h.Longitude.Or(0) + float64(rng.IntN(200)-100)/100000),
			Depth:     nordic.Some(float64(rng.IntN(40000)) / 1000),
			RMS:       nordic.Some(float64(rng.IntN(2000)) / 1000),
		}
		// Rounding the sum back onto the grid keeps the round trip exact.
		ev.Refinement.Latitude = nordic.Some(round(ev.Refinement.Latitude.Or(0), 100000))
		ev.Refinement.Longitude = nordic.Some(round(ev.Refinement.Longitude.Or(0), 100000))
	}

	stations := 2 + rng.IntN(6)
	for s := range stations {
		dist := class.minKm + rng.IntN(class.maxKm-class.minKm)
		azimuth := rng.IntN(360)
		station := fmt.Sprintf("STA%02d", s+1)
		ev.Picks = append(ev.Picks,
			generatePick(rng, originDs, station, "Z", "P", dist, azimuth, 6.0),
			generatePick(rng, originDs, station, "N", "S", dist, azimuth, 3.5),
		)
	}
	ev.Hypocenter.StationCount = nordic.Some(stations)
	return ev
}

// generatePick places an arrival at dist/velocity seconds after the origin.
// Arrivals past midnight carry the next day's hour, as in real bulletins.
func generatePick(rng *rand.Rand, originDs int64, station, component, phase string, dist, azimuth int, velocity float64) nordic.PhasePick {
	travelCs := int64(float64(dist) / velocity * 100)
	arrivalCs := originDs*10 + travelCs + int64(rng.IntN(50))
	dayCs := arrivalCs % (24 * 3600 * 100)

	onset := "I"
	if rng.IntN(4) == 0 {
		onset = "E"
	}
	return nordic.PhasePick{
		Station:        station,
		InstrumentType: "S",
		Component:      component,
		Onset:          onset,
		Phase:          phase,
		WeightCode:     nordic.Some(rng.IntN(4)),
		Hour:           nordic.Some(int(dayCs / 360000)),
		Minute:         nordic.Some(int(dayCs / 6000 % 60)),
		Second:         nordic.Some(float64(dayCs%6000) / 100),
		Residual:       nordic.Some(float64(rng.IntN(100)-50) / 100),
		Distance:       nordic.Some(float64(dist)),
		Azimuth:        nordic.Some(azimuth),
	}
}

// scaled draws a value in [lo, hi) on a 1/unit grid.
func scaled(rng *rand.Rand, lo, hi float64, unit int) float64 {
	steps := int((hi - lo) * float64(unit))
	return round(lo+float64(rng.IntN(steps))/float64(unit), unit)
}

func round(v float64, unit int) float64 {
	n := v * float64(unit)
	if n < 0 {
		return float64(int64(n-0.5)) / float64(unit)
	}
	return float64(int64(n+0.5)) / float64(unit)
}

func render(events []nordic.Event) (string, error) {
	var sb strings.Builder
	for i, ev := range events {
		block, err := nordic.EncodeEvent(ev)
		if err != nil {
			return "", fmt.Errorf("event %d: %w", i, err)
		}
		sb.WriteString(block)
	}
	return sb.String(), nil
}

// buildFixture decodes the rendered bulletin the same way the service does.
func buildFixture(bulletin string) ([]domain.SeismicEvent, error) {
	raw := domain.RawBulletin{Key: []byte(fixtureSource), Value: []byte(bulletin)}
	events, err := domain.DecodeBulletin(raw, nordic.Options{Mode: nordic.Strict})
	if err != nil {
		return nil, err
	}
	out := make([]domain.SeismicEvent, 0, len(events))
	for _, ev := range events {
		se, err := domain.BuildSeismicEvent(raw.Source(), ev)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.EnrichSeismicEvent(se))
	}
	return out, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644) //nolint:gosec // fixture is not sensitive
}

func printStats(events []domain.SeismicEvent) {
	byClass := map[string]int{}
	picks, rolled := 0, 0
	for _, e := range events {
		byClass[e.EventClass]++
		picks += len(e.Picks)
		for _, p := range e.Picks {
			if p.Arrival != nil && p.Arrival.YearDay() != e.OriginTime.YearDay() {
				rolled++
			}
		}
	}

	fmt.Println()
	fmt.Println("=== FIXTURE STATS ===")
	fmt.Printf("Events: %d\n", len(events))
	for _, c := range []string{"local", "regional", "distant"} {
		fmt.Printf("  %-9s %d\n", c, byClass[c])
	}
	fmt.Printf("Picks: %d (%d past midnight)\n", picks, rolled)
}

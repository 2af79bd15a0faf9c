package body

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/orbitlab/orbitsim/internal/vec"
)

// Record is one line of an initial system description:
//
//	COEFF;POWER;RADIUS;(x,y);(vx,vy);(r,g,b);NAME
//
// Mass = Coeff * 10^Power kg. Name may be empty, in which case the
// built body is labeled with its mass.
type Record struct {
	Coeff  float64    `yaml:"coeff"`
	Power  int        `yaml:"power"`
	Radius float64    `yaml:"radius"`
	Pos    [2]float64 `yaml:"pos"`
	Vel    [2]float64 `yaml:"vel"`
	Colour [3]int     `yaml:"colour"`
	Name   string     `yaml:"name,omitempty"`
}

// Mass returns the body mass in kg.
func (r Record) Mass() float64 {
	return r.Coeff * math.Pow(10, float64(r.Power))
}

// Build constructs the live body described by the record.
func (r Record) Build() *Body {
	return New(
		r.Mass(),
		r.Radius,
		vec.Vec2{X: r.Pos[0], Y: r.Pos[1]},
		vec.Vec2{X: r.Vel[0], Y: r.Vel[1]},
		Colour{R: r.Colour[0], G: r.Colour[1], B: r.Colour[2]},
		r.Name,
	)
}

// ParseSystem reads a semicolon-separated system description. The
// first line is a header and is skipped. Malformed records are a
// loading-time failure surfaced to the caller.
func ParseSystem(rd io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(rd)
	var records []Record
	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue // header
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		rec, err := parseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func parseRecord(line string) (Record, error) {
	fields := strings.Split(line, ";")
	if len(fields) != 7 {
		return Record{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}

	var rec Record
	var err error
	if rec.Coeff, err = strconv.ParseFloat(strings.TrimSpace(fields[0]), 64); err != nil {
		return Record{}, fmt.Errorf("mass coefficient: %w", err)
	}
	if rec.Power, err = strconv.Atoi(strings.TrimSpace(fields[1])); err != nil {
		return Record{}, fmt.Errorf("mass power: %w", err)
	}
	if rec.Radius, err = strconv.ParseFloat(strings.TrimSpace(fields[2]), 64); err != nil {
		return Record{}, fmt.Errorf("radius: %w", err)
	}
	if rec.Pos, err = parsePair(fields[3]); err != nil {
		return Record{}, fmt.Errorf("position: %w", err)
	}
	if rec.Vel, err = parsePair(fields[4]); err != nil {
		return Record{}, fmt.Errorf("velocity: %w", err)
	}
	if rec.Colour, err = parseTriple(fields[5]); err != nil {
		return Record{}, fmt.Errorf("colour: %w", err)
	}
	rec.Name = strings.TrimSpace(fields[6])
	return rec, nil
}

func splitTuple(s string, n int) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("%q is not a parenthesized tuple", s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(parts))
	}
	return parts, nil
}

func parsePair(s string) ([2]float64, error) {
	parts, err := splitTuple(s, 2)
	if err != nil {
		return [2]float64{}, err
	}
	var out [2]float64
	for i, p := range parts {
		if out[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
			return [2]float64{}, err
		}
	}
	return out, nil
}

func parseTriple(s string) ([3]int, error) {
	parts, err := splitTuple(s, 3)
	if err != nil {
		return [3]int{}, err
	}
	var out [3]int
	for i, p := range parts {
		if out[i], err = strconv.Atoi(strings.TrimSpace(p)); err != nil {
			return [3]int{}, err
		}
	}
	return out, nil
}

// RandomRecords generates n unnamed bodies with the value ranges used
// for randomized system setup: masses spread over 10^20..10^32 kg,
// radii 1e3..1e6 km, positions within +/-40 x +/-30 AU.
func RandomRecords(n int, rng *rand.Rand) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			Coeff:  float64(rng.Intn(900)+1) / 100.0,
			Power:  (rng.Intn(7) + 10) + (rng.Intn(7) + 10),
			Radius: float64(rng.Intn(999001) + 1000),
			Pos: [2]float64{
				float64(rng.Intn(8001)-4000) / 100.0,
				float64(rng.Intn(6001)-3000) / 100.0,
			},
			Vel: [2]float64{
				float64(rng.Intn(201)-100) / 10000.0,
				float64(rng.Intn(201)-100) / 10000.0,
			},
			Colour: [3]int{
				rng.Intn(231) + 25,
				rng.Intn(231) + 25,
				rng.Intn(231) + 25,
			},
		}
	}
	return records
}

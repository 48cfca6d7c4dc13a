// Package springs estimates horizontal spring stiffness for pile supports
// from the empirical horizontal reaction modulus of the soil.
package springs

import (
	"math"
	"strings"

	"github.com/ansel1/merry"

	"openstruct/internal/calc/calcerr"
)

type SoilType string

const (
	Clay SoilType = "Clay"
	Sand SoilType = "Sand"
)

var soilNames = map[string]SoilType{
	"clay":   Clay,
	"argila": Clay,
	"sand":   Sand,
	"areia":  Sand,
}

// ParseSoilType accepts the English and Portuguese soil names, case-insensitive.
func ParseSoilType(s string) (SoilType, bool) {
	t, ok := soilNames[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// Modulus returns the tabulated reaction modulus m (tf/m⁴).
func Modulus(soil SoilType, spt int) (float64, bool) {
	m, ok := modulus[soil][spt]
	return m, ok
}

type Input struct {
	Support  int     `json:"apoio"`
	Depth    float64 `json:"prof"`     // m
	Diameter float64 `json:"diametro"` // m
	Soil     string  `json:"tipo_solo"`
	SPT      int     `json:"spt"`
}

type Result struct {
	Support int      `json:"apoio"`
	Soil    SoilType `json:"tipo_solo"`
	SPT     int      `json:"spt"`
	Depth   float64  `json:"prof"`  // m
	Area    float64  `json:"area"`  // m²
	M       float64  `json:"m"`     // tf/m⁴
	KSpring float64  `json:"kmola"` // tf/m
}

// Calculate returns the horizontal spring of one support. Checks run in a
// fixed order and the first failure is returned.
func Calculate(in Input) (Result, error) {
	soil, ok := ParseSoilType(in.Soil)
	if !ok {
		return Result{}, calcerr.NotFound("tipo_solo", "invalid soil type %q", in.Soil)
	}
	m, ok := Modulus(soil, in.SPT)
	if !ok {
		return Result{}, calcerr.NotFound("spt", "SPT %d not found for soil type %q", in.SPT, soil)
	}
	if !(in.Depth > 0) {
		return Result{}, calcerr.Invalid("prof", "depth must be greater than zero")
	}
	if !(in.Diameter > 0) {
		return Result{}, calcerr.Invalid("diametro", "diameter must be greater than zero")
	}
	// Unreachable while the tables are keyed from zero.
	if in.SPT < 0 {
		return Result{}, calcerr.Invalid("spt", "SPT cannot be negative")
	}

	area := in.Diameter * 1 // unit-height slice
	return Result{
		Support: in.Support,
		Soil:    soil,
		SPT:     in.SPT,
		Depth:   in.Depth,
		Area:    area,
		M:       round2(m),
		KSpring: round2(m * in.Depth * area),
	}, nil
}

// CalculateAll evaluates supports in order and stops at the first failure,
// naming the support in the error.
func CalculateAll(in []Input) ([]Result, error) {
	if len(in) == 0 {
		return nil, calcerr.Invalid("apoios", "no supports provided")
	}
	out := make([]Result, 0, len(in))
	for _, s := range in {
		res, err := Calculate(s)
		if err != nil {
			return nil, merry.Prependf(err, "support %d", s.Support)
		}
		out = append(out, res)
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package shear dimensions reinforced-concrete beams for shear following the
// NBR 6118 model I: material design strengths, diagonal compression check
// (VRd2), transverse reinforcement sizing (VRd3) and stirrup spacing.
//
// Units follow the usual hand-calculation convention: geometry in cm, forces
// in kN, strengths in MPa and reinforcement ratios in cm²/m.
package shear

import (
	"encoding/json"
	"fmt"
	"math"

	"openstruct/internal/calc/calcerr"
)

// Cover is subtracted from the total height to estimate the effective depth.
const Cover = 5.0 // cm

// Diameters is the catalog of commercial stirrup diameters (mm), ascending.
var Diameters = [...]float64{5.0, 6.3, 8.0, 10.0, 12.5, 16.0, 20.0, 25.0, 32.0, 40.0}

type Factors struct {
	GamaC  float64 `json:"gama_c" yaml:"gama_c"`   // concrete strength reduction
	GamaC2 float64 `json:"gama_c2" yaml:"gama_c2"` // shear force amplification
	GamaS  float64 `json:"gama_s" yaml:"gama_s"`   // steel strength reduction
}

// DefaultFactors returns the code-standard partial safety factors.
func DefaultFactors() Factors {
	return Factors{GamaC: 1.4, GamaC2: 1.4, GamaS: 1.15}
}

type Input struct {
	Name string  `json:"name"`
	Bw   float64 `json:"bw"` // cm
	H    float64 `json:"h"`  // cm
	Vk   float64 `json:"Vk"` // kN
	Factors
	Fywk        float64 `json:"fywk"` // MPa
	Fck         float64 `json:"fck"`  // MPa
	StirrupLegs int     `json:"stirrup_leg"`
}

// UnmarshalJSON decodes in place, so fields missing from data keep the
// values the receiver already holds (the safety factor defaults). The camelCase
// "stirrupLeg" key is accepted as well.
func (in *Input) UnmarshalJSON(data []byte) error {
	type plain Input
	aux := struct {
		*plain
		StirrupLeg *int `json:"stirrupLeg"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.StirrupLeg != nil {
		in.StirrupLegs = *aux.StirrupLeg
	}
	return nil
}

func (in Input) String() string {
	return fmt.Sprintf("%s - %.1f x %.1f cm", in.Name, in.Bw, in.H)
}

// Validate checks every precondition of the calculation, in field order.
func (in Input) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"bw", in.Bw},
		{"h", in.H},
		{"Vk", in.Vk},
		{"fck", in.Fck},
		{"fywk", in.Fywk},
		{"gama_c", in.GamaC},
		{"gama_c2", in.GamaC2},
		{"gama_s", in.GamaS},
	} {
		if !(f.value > 0) {
			return calcerr.Invalid(f.name, "%s must be greater than zero, got %v", f.name, f.value)
		}
	}
	if in.StirrupLegs < 1 {
		return calcerr.Invalid("stirrup_leg", "stirrup_leg must be at least 1, got %d", in.StirrupLegs)
	}
	return nil
}

// EffectiveDepth returns d = h - Cover (cm).
func (in Input) EffectiveDepth() float64 {
	return in.H - Cover
}

// DesignShear returns Vd = Vk * gama_c2 (kN).
func (in Input) DesignShear() float64 {
	return in.Vk * in.GamaC2
}

type MaterialProperties struct {
	Fck     float64 `json:"fck"`
	Fcd     float64 `json:"fcd"`
	Fywd    float64 `json:"fywd"`
	Fctm    float64 `json:"fctm"`
	FctkInf float64 `json:"fctk_inf"`
	Fctd    float64 `json:"fctd"`
}

// Materials derives the design strengths (MPa).
func Materials(fck, gamaC, fywk, gamaS float64) MaterialProperties {
	fctm := 0.3 * math.Pow(fck, 2.0/3.0)
	fctkInf := 0.7 * fctm
	return MaterialProperties{
		Fck:     fck,
		Fcd:     fck / gamaC,
		Fywd:    fywk / gamaS,
		Fctm:    fctm,
		FctkInf: fctkInf,
		Fctd:    fctkInf / gamaC,
	}
}

type CompressionStatus string

const (
	CompressionOK          CompressionStatus = "ok"
	CompressionDisapproved CompressionStatus = "disapproved"
)

type CompressionCheck struct {
	AlphaV2 float64           `json:"alphaV2"`
	Vrd2    float64           `json:"Vrd2"` // kN
	Vd      float64           `json:"Vd"`   // kN
	Status  CompressionStatus `json:"status"`
}

// CheckCompression verifies the compressed concrete struts. alphaV2 is not
// clamped: fck >= 250 MPa yields a non-positive capacity and a disapproved
// status.
func CheckCompression(mp MaterialProperties, bw, d, vd float64) CompressionCheck {
	alphaV2 := 1 - mp.Fck/250
	vrd2 := 0.27 * alphaV2 * (mp.Fcd / 10) * bw * d

	status := CompressionOK
	if vd > vrd2 {
		status = CompressionDisapproved
	}
	return CompressionCheck{
		AlphaV2: alphaV2,
		Vrd2:    vrd2,
		Vd:      vd,
		Status:  status,
	}
}

type TensionStatus string

const (
	TensionMinimum      TensionStatus = "minimum"
	TensionAboveMinimum TensionStatus = "above_minimum"
)

// Describe returns the label engineers expect on a calculation sheet.
func (s TensionStatus) Describe() string {
	switch s {
	case TensionMinimum:
		return "asw = armadura mínima"
	case TensionAboveMinimum:
		return "asw = acima da mínima"
	}
	return string(s)
}

type TensionDesign struct {
	Vc       float64       `json:"Vc"`         // kN
	AswMinCM float64       `json:"asw_min_cm"` // cm²/cm
	AswMinM  float64       `json:"asw_min_m"`  // cm²/m
	VswMin   float64       `json:"Vsw_min"`    // kN
	Vrd3Min  float64       `json:"Vrd3_min"`   // kN
	Status   TensionStatus `json:"status"`
	AswAdot  float64       `json:"asw_adot"` // cm²/m
}

// DesignTension sizes the transverse reinforcement. A design force equal to
// the minimum capacity stays on the minimum reinforcement branch.
func DesignTension(mp MaterialProperties, bw, d, vd, fywk float64) TensionDesign {
	vc := 0.6 * (mp.Fctd / 10) * bw * d
	aswMinCM := 0.2 * mp.Fctm * (bw / fywk)
	aswMinM := aswMinCM * 100
	vswMin := aswMinCM * 0.9 * d * (mp.Fywd / 10)
	vrd3Min := vswMin + vc

	td := TensionDesign{
		Vc:       vc,
		AswMinCM: aswMinCM,
		AswMinM:  aswMinM,
		VswMin:   vswMin,
		Vrd3Min:  vrd3Min,
	}
	if vd <= vrd3Min {
		td.Status = TensionMinimum
		td.AswAdot = aswMinM
	} else {
		td.Status = TensionAboveMinimum
		td.AswAdot = 100 * (vd - vc) / (0.9 * d * (mp.Fywd / 10))
	}
	return td
}

type Spacing struct {
	DiameterMM float64 `json:"diameter_mm"`
	SpacingCM  float64 `json:"spacing_cm"`
}

// Detail returns the maximum stirrup spacing for every catalog diameter.
// Spacings are floored so the provided area never falls below aswAdot.
func Detail(aswAdot float64, legs int) ([]Spacing, error) {
	if !(aswAdot > 0) || math.IsInf(aswAdot, 1) {
		return nil, calcerr.Failed("asw_adot", "adopted reinforcement must be a positive finite value, got %v", aswAdot)
	}
	if legs < 1 {
		return nil, calcerr.Invalid("stirrup_leg", "stirrup_leg must be at least 1, got %d", legs)
	}
	table := make([]Spacing, 0, len(Diameters))
	for _, phi := range Diameters {
		area := float64(legs) * math.Pi * math.Pow(phi/10, 2) / 4 // cm² per stirrup
		table = append(table, Spacing{
			DiameterMM: phi,
			SpacingCM:  math.Floor(area / aswAdot * 100),
		})
	}
	return table, nil
}

type Result struct {
	Name             string             `json:"viga"`
	Input            Input              `json:"entrada"`
	EffectiveDepthCM float64            `json:"d"`
	DesignShearKN    float64            `json:"Vd"`
	Materials        MaterialProperties `json:"results_concrete"`
	Compression      CompressionCheck   `json:"results_compressed_cis"`
	Tension          TensionDesign      `json:"results_tension"`
	Detailing        []Spacing          `json:"results_detailing"`
}

// Calculate runs the whole shear design for one beam. A disapproved
// compression check is reported in the result, not as an error.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	d := in.EffectiveDepth()
	vd := in.DesignShear()
	mp := Materials(in.Fck, in.GamaC, in.Fywk, in.GamaS)
	cc := CheckCompression(mp, in.Bw, d, vd)
	td := DesignTension(mp, in.Bw, d, vd, in.Fywk)

	table, err := Detail(td.AswAdot, in.StirrupLegs)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Name:             in.Name,
		Input:            in,
		EffectiveDepthCM: d,
		DesignShearKN:    vd,
		Materials:        mp,
		Compression:      cc,
		Tension:          td,
		Detailing:        table,
	}, nil
}

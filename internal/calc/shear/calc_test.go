package shear

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openstruct/internal/calc/calcerr"
)

func beamV1() Input {
	return Input{
		Name:        "V1",
		Bw:          14,
		H:           45,
		Vk:          120,
		Factors:     DefaultFactors(),
		Fywk:        500,
		Fck:         30,
		StirrupLegs: 2,
	}
}

func TestCalculateV1(t *testing.T) {
	res, err := Calculate(beamV1())
	require.NoError(t, err)

	assert.Equal(t, "V1", res.Name)
	assert.InDelta(t, 40.0, res.EffectiveDepthCM, 1e-12)
	assert.InDelta(t, 168.0, res.DesignShearKN, 1e-9)

	mp := res.Materials
	assert.InDelta(t, 30/1.4, mp.Fcd, 1e-9)
	assert.InDelta(t, 500/1.15, mp.Fywd, 1e-9)
	assert.InDelta(t, 0.3*math.Pow(30, 2.0/3.0), mp.Fctm, 1e-9)
	assert.InDelta(t, 0.7*mp.Fctm, mp.FctkInf, 1e-9)
	assert.InDelta(t, 0.7*0.3*math.Pow(30, 2.0/3.0)/1.4, mp.Fctd, 1e-9)

	cc := res.Compression
	assert.InDelta(t, 0.88, cc.AlphaV2, 1e-12)
	assert.InDelta(t, 285.12, cc.Vrd2, 1e-9)
	assert.Equal(t, CompressionOK, cc.Status)

	td := res.Tension
	assert.InDelta(t, 48.6607, td.Vc, 1e-4)
	assert.InDelta(t, 0.016220, td.AswMinCM, 1e-6)
	assert.InDelta(t, 1.6220, td.AswMinM, 1e-4)
	assert.InDelta(t, 25.3882, td.VswMin, 1e-4)
	assert.InDelta(t, 74.0488, td.Vrd3Min, 1e-4)
	assert.Equal(t, TensionAboveMinimum, td.Status)
	assert.InDelta(t, 7.6245, td.AswAdot, 1e-4)

	want := []float64{5, 8, 13, 20, 32, 52, 82, 128, 210, 329}
	require.Len(t, res.Detailing, len(want))
	for i, s := range res.Detailing {
		assert.Equal(t, Diameters[i], s.DiameterMM)
		assert.Equal(t, want[i], s.SpacingCM, "diameter %v", s.DiameterMM)
	}
}

func TestCalculateMinimumReinforcement(t *testing.T) {
	in := beamV1()
	in.Vk = 40
	res, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, TensionMinimum, res.Tension.Status)
	assert.Equal(t, res.Tension.AswMinM, res.Tension.AswAdot)
	assert.Equal(t, 24.0, res.Detailing[0].SpacingCM)
	assert.Equal(t, 1549.0, res.Detailing[9].SpacingCM)
}

func TestDesignTensionTieSelectsMinimum(t *testing.T) {
	in := beamV1()
	d := in.EffectiveDepth()
	mp := Materials(in.Fck, in.GamaC, in.Fywk, in.GamaS)
	ref := DesignTension(mp, in.Bw, d, in.DesignShear(), in.Fywk)

	td := DesignTension(mp, in.Bw, d, ref.Vrd3Min, in.Fywk)
	assert.Equal(t, TensionMinimum, td.Status)
	assert.Equal(t, td.AswMinM, td.AswAdot)

	td = DesignTension(mp, in.Bw, d, math.Nextafter(ref.Vrd3Min, math.Inf(1)), in.Fywk)
	assert.Equal(t, TensionAboveMinimum, td.Status)
}

func TestCalculateTieOnInputs(t *testing.T) {
	in := beamV1()
	in.GamaC2 = 1
	mp := Materials(in.Fck, in.GamaC, in.Fywk, in.GamaS)

	in.Vk = DesignTension(mp, in.Bw, in.EffectiveDepth(), 1, in.Fywk).Vrd3Min
	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, TensionMinimum, res.Tension.Status)

	in.Vk = CheckCompression(mp, in.Bw, in.EffectiveDepth(), 1).Vrd2
	res, err = Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, CompressionOK, res.Compression.Status)
}

func TestCheckCompression(t *testing.T) {
	mp := Materials(30, 1.4, 500, 1.15)
	ref := CheckCompression(mp, 14, 40, 0)

	assert.Equal(t, CompressionOK, CheckCompression(mp, 14, 40, ref.Vrd2).Status)
	assert.Equal(t, CompressionDisapproved,
		CheckCompression(mp, 14, 40, math.Nextafter(ref.Vrd2, math.Inf(1))).Status)
}

func TestCheckCompressionHighStrength(t *testing.T) {
	in := beamV1()
	in.Fck = 260
	res, err := Calculate(in)
	require.NoError(t, err)
	assert.True(t, res.Compression.AlphaV2 < 0)
	assert.True(t, res.Compression.Vrd2 < 0)
	assert.Equal(t, CompressionDisapproved, res.Compression.Status)
}

func TestDetail(t *testing.T) {
	for _, asw := range []float64{0.5, 1.622, 7.62, 33.3, 250} {
		for _, legs := range []int{1, 2, 4} {
			table, err := Detail(asw, legs)
			require.NoError(t, err)
			require.Len(t, table, 10)
			for i := 1; i < len(table); i++ {
				assert.True(t, table[i].DiameterMM > table[i-1].DiameterMM)
				assert.True(t, table[i].SpacingCM >= table[i-1].SpacingCM)
			}
		}
	}
}

func TestDetailInvalidReinforcement(t *testing.T) {
	for _, asw := range []float64{0, -1.5, math.Inf(1), math.NaN()} {
		_, err := Detail(asw, 2)
		require.Error(t, err)
		assert.True(t, calcerr.IsComputation(err), "asw %v", asw)
		assert.Equal(t, "asw_adot", calcerr.Field(err))
	}
}

func TestCalculateDegenerateDepth(t *testing.T) {
	for _, h := range []float64{5, 3} {
		in := beamV1()
		in.H = h
		_, err := Calculate(in)
		require.Error(t, err, "h %v", h)
		assert.True(t, calcerr.IsComputation(err))
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		field string
		edit  func(*Input)
	}{
		{"bw", func(in *Input) { in.Bw = 0 }},
		{"h", func(in *Input) { in.H = -45 }},
		{"Vk", func(in *Input) { in.Vk = 0 }},
		{"fck", func(in *Input) { in.Fck = math.NaN() }},
		{"fywk", func(in *Input) { in.Fywk = -500 }},
		{"gama_c", func(in *Input) { in.GamaC = 0 }},
		{"gama_c2", func(in *Input) { in.GamaC2 = 0 }},
		{"gama_s", func(in *Input) { in.GamaS = -1 }},
		{"stirrup_leg", func(in *Input) { in.StirrupLegs = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			in := beamV1()
			tc.edit(&in)
			_, err := Calculate(in)
			require.Error(t, err)
			assert.True(t, calcerr.IsValidation(err))
			assert.Equal(t, tc.field, calcerr.Field(err))
		})
	}
}

func TestValidateReportsFirstField(t *testing.T) {
	in := beamV1()
	in.Bw, in.Fck = 0, 0
	err := in.Validate()
	require.Error(t, err)
	assert.Equal(t, "bw", calcerr.Field(err))
}

func TestCalculateIdempotent(t *testing.T) {
	a, err := Calculate(beamV1())
	require.NoError(t, err)
	b, err := Calculate(beamV1())
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestInputUnmarshalKeepsDefaults(t *testing.T) {
	in := Input{Factors: DefaultFactors()}
	err := json.Unmarshal([]byte(`{"name":"V2","bw":20,"h":60,"Vk":90,"gama_s":1.1,"fywk":500,"fck":25,"stirrupLeg":4}`), &in)
	require.NoError(t, err)

	assert.Equal(t, "V2", in.Name)
	assert.Equal(t, 1.4, in.GamaC)
	assert.Equal(t, 1.4, in.GamaC2)
	assert.Equal(t, 1.1, in.GamaS)
	assert.Equal(t, 4, in.StirrupLegs)

	in = Input{}
	require.NoError(t, json.Unmarshal([]byte(`{"stirrup_leg":2}`), &in))
	assert.Equal(t, 2, in.StirrupLegs)
}

func TestInputString(t *testing.T) {
	assert.Equal(t, "V1 - 14.0 x 45.0 cm", beamV1().String())
}

func TestTensionStatusDescribe(t *testing.T) {
	assert.Equal(t, "asw = armadura mínima", TensionMinimum.Describe())
	assert.Equal(t, "asw = acima da mínima", TensionAboveMinimum.Describe())
}

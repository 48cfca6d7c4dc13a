package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openstruct/internal/calc/calcerr"
	"openstruct/internal/calc/shear"
	"openstruct/internal/respond"
)

func beam(name string, vk float64) shear.Input {
	return shear.Input{
		Name: name, Bw: 14, H: 45, Vk: vk, Factors: shear.DefaultFactors(),
		Fywk: 500, Fck: 30, StirrupLegs: 2,
	}
}

func TestCalculateShearOrder(t *testing.T) {
	in := ShearBatchInput{}
	for i := 0; i < 50; i++ {
		in.Items = append(in.Items, beam(fmt.Sprintf("V%d", i), float64(40+i)))
	}
	res, err := CalculateShear(context.Background(), in, 4)
	require.NoError(t, err)
	require.Len(t, res.Results, len(in.Items))
	for i, r := range res.Results {
		want, err := shear.Calculate(in.Items[i])
		require.NoError(t, err)
		assert.Equal(t, want, r)
	}
}

func TestCalculateShearLowestIndexError(t *testing.T) {
	in := ShearBatchInput{Items: []shear.Input{beam("V0", 100), beam("V1", 100), beam("V2", 100), beam("V3", 100)}}
	in.Items[3].Bw = 0
	in.Items[1].Fck = -1

	for _, workers := range []int{0, 1, 4} {
		_, err := CalculateShear(context.Background(), in, workers)
		require.Error(t, err)
		assert.True(t, calcerr.IsValidation(err))
		assert.Equal(t, "fck", calcerr.Field(err))
		assert.True(t, strings.HasPrefix(err.Error(), "item 1 (V1): "), err.Error())
	}
}

func TestCalculateShearLimits(t *testing.T) {
	_, err := CalculateShear(context.Background(), ShearBatchInput{}, 2)
	assert.Equal(t, "items", calcerr.Field(err))

	_, err = CalculateShear(context.Background(), ShearBatchInput{Items: make([]shear.Input, MaxItems+1)}, 2)
	assert.Equal(t, "items", calcerr.Field(err))
}

func TestCalculateShearCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CalculateShear(ctx, ShearBatchInput{Items: []shear.Input{beam("V1", 100)}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandlerShear(t *testing.T) {
	h := &Handler{Factors: shear.DefaultFactors(), Workers: 2}

	rec := httptest.NewRecorder()
	h.Shear(rec, httptest.NewRequest(http.MethodPost, "/api/tools/shear/batch", strings.NewReader(
		`{"items":[{"name":"V1","bw":14,"h":45,"Vk":120,"fywk":500,"fck":30,"stirrupLeg":2},
		           {"name":"V2","bw":20,"h":60,"Vk":40,"fywk":500,"fck":25,"stirrup_leg":2,"gama_c2":1.0}]}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Results []struct {
			Name string  `json:"viga"`
			Vd   float64 `json:"Vd"`
		} `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res.Results, 2)
	assert.Equal(t, "V1", res.Results[0].Name)
	assert.InDelta(t, 168.0, res.Results[0].Vd, 1e-9)
	assert.InDelta(t, 40.0, res.Results[1].Vd, 1e-9)

	rec = httptest.NewRecorder()
	h.Shear(rec, httptest.NewRequest(http.MethodPost, "/api/tools/shear/batch", strings.NewReader(
		`{"items":[{"name":"V1","bw":14,"h":45,"Vk":120,"fywk":500,"fck":30,"stirrup_leg":0}]}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var e respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	assert.Equal(t, "stirrup_leg", e.Field)

	rec = httptest.NewRecorder()
	h.Shear(rec, httptest.NewRequest(http.MethodPost, "/api/tools/shear/batch", strings.NewReader(`{"items":{}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

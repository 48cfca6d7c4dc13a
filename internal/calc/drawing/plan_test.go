package drawing

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openstruct/internal/calc/calcerr"
	"openstruct/internal/respond"
)

var sample = []Pile{
	{X: 0, Y: 0, Diameter: 0.6, Label: `E1\n350 kN`},
	{X: 3, Y: 0, Diameter: 0.6, Label: "E2\n420 kN"},
	{X: 1.5, Y: 2.5, Diameter: 0.8, Label: "E3"},
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"E1", "350 kN"}, sample[0].Lines())
	assert.Equal(t, []string{"E2", "420 kN"}, sample[1].Lines())
	assert.Equal(t, []string{"E3"}, sample[2].Lines())
	assert.Nil(t, Pile{}.Lines())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		piles []Pile
		field string
	}{
		{nil, "estacas"},
		{[]Pile{{Diameter: 0}}, "diametro"},
		{[]Pile{{Diameter: -1}}, "diametro"},
		{[]Pile{{Diameter: math.NaN()}}, "diametro"},
		{[]Pile{{X: math.Inf(1), Diameter: 1}}, "coord_X"},
		{[]Pile{{Y: math.NaN(), Diameter: 1}}, "coord_Y"},
	}
	for _, tc := range tests {
		err := Validate(tc.piles)
		require.Error(t, err)
		assert.True(t, calcerr.IsValidation(err))
		assert.Equal(t, tc.field, calcerr.Field(err))
	}
	assert.NoError(t, Validate(sample))
}

func TestExtent(t *testing.T) {
	b := extent(sample)
	assert.InDelta(t, -0.3, b.minX, 1e-9)
	assert.InDelta(t, 3.3, b.maxX, 1e-9)
	assert.InDelta(t, -titleOffset-2*titleHeight, b.minY, 1e-9)
	assert.InDelta(t, 2.5+0.4+0.1+0.12, b.maxY, 1e-9)
}

func TestViewFitsPage(t *testing.T) {
	v := newView(extent(sample))
	for _, p := range sample {
		x, y := v.point(p.X, p.Y)
		assert.True(t, x >= margin && x <= pageW-margin, "x=%v", x)
		assert.True(t, y >= margin && y <= pageH-margin, "y=%v", y)
	}
	// y grows downwards on the page
	_, low := v.point(0, 0)
	_, high := v.point(0, 2.5)
	assert.Less(t, high, low)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample, ""))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, Render(&buf, sample[:1], "Bloco B - fundações"))
	assert.NotZero(t, buf.Len())

	assert.Error(t, Render(&buf, nil, ""))
}

func TestHandlerPiles(t *testing.T) {
	h := &Handler{}
	body, err := json.Marshal(sample)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Piles(rec, httptest.NewRequest(http.MethodPost, "/api/tools/drawing/piles?title=Bloco+A", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "estacas_")

	rec = httptest.NewRecorder()
	h.Piles(rec, httptest.NewRequest(http.MethodPost, "/api/tools/drawing/piles",
		strings.NewReader(`[{"coord_X":0,"coord_Y":0,"diametro":0,"texto":"E1"}]`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var e respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	assert.Equal(t, "diametro", e.Field)

	rec = httptest.NewRecorder()
	h.Piles(rec, httptest.NewRequest(http.MethodPost, "/api/tools/drawing/piles", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

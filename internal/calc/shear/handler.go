package shear

import (
	"encoding/json"
	"net/http"

	"github.com/powerman/structlog"

	"openstruct/internal/respond"
)

const MaxBodySize = 10 << 20 // 10MB

var log = structlog.New(structlog.KeyUnit, "shear")

// Handler serves beam shear designs. Factors fill in safety factors a request
// leaves out.
type Handler struct {
	Factors Factors
}

// Decode reads one beam from r, starting from the handler's safety factors.
func (h *Handler) Decode(w http.ResponseWriter, r *http.Request) (Input, bool) {
	input := Input{Factors: h.Factors}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.BadRequest(w, "Invalid request payload")
		return Input{}, false
	}
	return input, true
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	input, ok := h.Decode(w, r)
	if !ok {
		return
	}
	res, err := Calculate(input)
	if err != nil {
		log.Info("calculation rejected", "beam", input.Name, "err", err)
		respond.Error(w, err)
		return
	}
	log.Debug("calculated", "beam", input, "compression", res.Compression.Status, "tension", res.Tension.Status)
	respond.JSON(w, http.StatusOK, res)
}

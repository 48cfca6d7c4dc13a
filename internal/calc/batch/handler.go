package batch

import (
	"encoding/json"
	"net/http"

	"github.com/powerman/structlog"

	"openstruct/internal/calc/shear"
	"openstruct/internal/respond"
)

var log = structlog.New(structlog.KeyUnit, "batch")

type Handler struct {
	Factors shear.Factors
	Workers int
}

// Shear designs {"items":[...]}; every item starts from the handler's
// safety factors.
func (h *Handler) Shear(w http.ResponseWriter, r *http.Request) {
	var raw struct {
		Items []json.RawMessage `json:"items"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, shear.MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respond.BadRequest(w, "Invalid request payload")
		return
	}
	input := ShearBatchInput{Items: make([]shear.Input, len(raw.Items))}
	for i, item := range raw.Items {
		input.Items[i].Factors = h.Factors
		if err := json.Unmarshal(item, &input.Items[i]); err != nil {
			respond.BadRequest(w, "Invalid request payload")
			return
		}
	}

	res, err := CalculateShear(r.Context(), input, h.Workers)
	if err != nil {
		log.Info("batch rejected", "items", len(input.Items), "err", err)
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

package springs

import (
	"encoding/json"
	"net/http"

	"github.com/powerman/structlog"

	"openstruct/internal/respond"
)

const MaxBodySize = 10 << 20 // 10MB

var log = structlog.New(structlog.KeyUnit, "springs")

type Request struct {
	Supports []Input `json:"apoios"`
}

type Response struct {
	Data []Result `json:"dados"`
}

type Handler struct{}

// Decode reads a list of supports from r.
func Decode(w http.ResponseWriter, r *http.Request) (Request, bool) {
	var req Request
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request payload")
		return Request{}, false
	}
	return req, true
}

// Calc answers {"dados": [...]} for {"apoios": [...]}. Each row's tipo_solo
// holds the canonical soil name (Clay or Sand), whichever alias was sent.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	req, ok := Decode(w, r)
	if !ok {
		return
	}
	res, err := CalculateAll(req.Supports)
	if err != nil {
		log.Info("calculation rejected", "err", err)
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, Response{Data: res})
}

package drawing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/powerman/structlog"

	"openstruct/internal/calc/calcerr"
	"openstruct/internal/respond"
)

const MaxBodySize = 10 << 20 // 10MB

var log = structlog.New(structlog.KeyUnit, "drawing")

type Handler struct{}

// Piles accepts a JSON array of piles and answers with the plan as PDF.
// The optional "title" query parameter replaces the default title.
func (h *Handler) Piles(w http.ResponseWriter, r *http.Request) {
	var piles []Pile
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&piles); err != nil {
		respond.BadRequest(w, "Invalid request payload")
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, piles, r.URL.Query().Get("title")); err != nil {
		if !calcerr.IsValidation(err) {
			log.PrintErr("render pile plan", "piles", len(piles), "err", err)
		}
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "estacas_"+uuid.NewString()[:8]+".pdf"))
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.PrintErr("write pile plan", "err", err)
	}
}

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/powerman/structlog"

	"openstruct/internal/calc/shear"
	"openstruct/internal/calc/springs"
	"openstruct/internal/respond"
)

var log = structlog.New(structlog.KeyUnit, "report")

type SpringsRequest struct {
	Meta
	Supports []springs.Input `json:"apoios"`
	Format   string          `json:"format"` // txt, pdf or xlsx
}

type ShearRequest struct {
	Meta
	Beam shear.Input `json:"beam"`
}

// Handler renders downloadable reports. Reports are built in memory and
// streamed; nothing is written to disk.
type Handler struct {
	Factors shear.Factors
	Now     func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) Springs(w http.ResponseWriter, r *http.Request) {
	var req SpringsRequest
	r.Body = http.MaxBytesReader(w, r.Body, springs.MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request payload")
		return
	}
	rows, err := springs.CalculateAll(req.Supports)
	if err != nil {
		respond.Error(w, err)
		return
	}

	req.Meta.Date = h.now()
	var buf bytes.Buffer
	var contentType string
	format := strings.ToLower(req.Format)
	switch format {
	case "", "txt":
		format = "txt"
		contentType = "text/plain; charset=utf-8"
		buf.WriteString(SpringsText(rows, req.Meta.Date))
	case "pdf":
		contentType = "application/pdf"
		err = SpringsPDF(&buf, rows, req.Meta)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = SpringsXLSX(&buf, rows)
	default:
		respond.BadRequest(w, fmt.Sprintf("unsupported report format %q", req.Format))
		return
	}
	if err != nil {
		log.PrintErr("springs report", "format", format, "err", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	download(w, contentType, fmt.Sprintf("relatorio_solo_%s.%s", uuid.NewString(), format), buf.Bytes())
}

func (h *Handler) Shear(w http.ResponseWriter, r *http.Request) {
	req := ShearRequest{Beam: shear.Input{Factors: h.Factors}}
	r.Body = http.MaxBytesReader(w, r.Body, shear.MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request payload")
		return
	}
	res, err := shear.Calculate(req.Beam)
	if err != nil {
		respond.Error(w, err)
		return
	}

	req.Meta.Date = h.now()
	var buf bytes.Buffer
	if err := ShearPDF(&buf, res, req.Meta); err != nil {
		log.PrintErr("shear report", "beam", req.Beam.Name, "err", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	download(w, "application/pdf", fmt.Sprintf("cisalhamento_%s.pdf", uuid.NewString()), buf.Bytes())
}

func download(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.PrintErr("write report", "err", err)
	}
}

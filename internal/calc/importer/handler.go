package importer

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"github.com/powerman/structlog"

	"openstruct/internal/calc/shear"
	"openstruct/internal/respond"
)

const MaxUploadSize = 10 << 20 // 10MB

var log = structlog.New(structlog.KeyUnit, "importer")

// Handler imports workbooks uploaded as the multipart field "file".
type Handler struct {
	Factors shear.Factors
}

func (h *Handler) Springs(w http.ResponseWriter, r *http.Request) {
	file, ok := upload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	res, err := Springs(file)
	if !rowErrors(w, err) {
		return
	}
	res.Errors = Messages(err)
	log.Debug("springs imported", "count", res.Count, "failed", len(res.Errors))
	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) Shear(w http.ResponseWriter, r *http.Request) {
	file, ok := upload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	res, err := Shear(file, h.Factors)
	if !rowErrors(w, err) {
		return
	}
	res.Errors = Messages(err)
	log.Debug("beams imported", "count", res.Count, "failed", len(res.Errors))
	respond.JSON(w, http.StatusOK, res)
}

func upload(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, "File required")
		return nil, false
	}
	return file, true
}

// rowErrors reports whether the import may answer with partial results; any
// error other than collected row failures is written to w.
func rowErrors(w http.ResponseWriter, err error) bool {
	var merr *multierror.Error
	if err == nil || errors.As(err, &merr) {
		return true
	}
	respond.Error(w, err)
	return false
}

// Package respond writes JSON bodies and errors for the HTTP handlers.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"

	"openstruct/internal/calc/calcerr"
)

var log = structlog.New(structlog.KeyUnit, "http")

type ErrorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.PrintErr("encode response", "err", err)
	}
}

// Error maps err to its HTTP status. Server-side failures are logged and
// hidden behind a generic message.
func Error(w http.ResponseWriter, err error) {
	code := merry.HTTPCode(err)
	body := ErrorBody{Error: err.Error(), Field: calcerr.Field(err)}
	if code >= http.StatusInternalServerError {
		log.PrintErr(err)
		body = ErrorBody{Error: http.StatusText(code)}
	}
	JSON(w, code, body)
}

// BadRequest reports a body that could not be decoded.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: msg})
}

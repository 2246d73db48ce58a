package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/folio/internal/application/store"
	domerrors "github.com/amirhosseinghanipour/folio/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusUnprocessableEntity:
		return ErrCodeValidation
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case http.StatusBadGateway:
		return ErrCodeUpstreamFailed
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFailure maps a use-case or gateway error to a response. Validation messages are shown as-is;
// anything else from the content API is reported without its cause, which is logged instead.
func writeFailure(w http.ResponseWriter, log zerolog.Logger, err error, logMsg string) {
	switch {
	case errors.Is(err, domerrors.ErrValidation):
		writeErr(w, http.StatusUnprocessableEntity, "", err.Error())
	case errors.Is(err, domerrors.ErrUnauthorized):
		log.Warn().Err(err).Msg(logMsg)
		writeErr(w, http.StatusUnauthorized, "", "content API rejected the credentials")
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, "", "not found")
	default:
		log.Error().Err(err).Msg(logMsg)
		writeErr(w, http.StatusBadGateway, "", "content API request failed")
	}
}

// writeResult reports a failed store operation. The store already logged the cause.
func writeResult(w http.ResponseWriter, res store.Result) {
	writeErr(w, http.StatusBadGateway, ErrCodeUpstreamFailed, res.Error)
}

package http_impl

import (
	"net/http"

	"github.com/bitcoin-sv/headerchain/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse is the body of every failed request. Data holds the diagnostic fields of the
// error, for example got and required for an undersized batch.
type ErrorResponse struct {
	Status int32                  `json:"status"`
	Code   int32                  `json:"code"`
	Err    string                 `json:"error"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// StatusFromError maps an error code to the HTTP status it is reported with.
func StatusFromError(err error) int {
	switch {
	case errors.IsValidationError(err), errors.Is(err, errors.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errors.ErrUninitialized), errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrAlreadyInitialized):
		return http.StatusConflict
	case errors.Is(err, errors.ErrStorageUnavailable), errors.Is(err, errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func sendError(c echo.Context, err error) error {
	status := StatusFromError(err)

	resp := &ErrorResponse{
		Status: int32(status),
		Code:   int32(errors.ERR_UNKNOWN),
		Err:    err.Error(),
	}

	var tErr *errors.Error
	if errors.As(err, &tErr) {
		resp.Code = int32(tErr.Code())
		resp.Err = tErr.Message()

		if data, ok := tErr.Data().(*errors.ErrData); ok && data != nil {
			resp.Data = *data
		}
	}

	prometheusHTTPErrors.WithLabelValues(errors.ERR(resp.Code).String()).Inc()

	return c.JSON(status, resp)
}

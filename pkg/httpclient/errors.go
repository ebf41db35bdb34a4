package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/mahenabeywickrama/bovita-candles-fe/pkg/errors"
)

// apiErrorBody mirrors the error shape returned by the backend REST API.
// The backend reports failures as either {"message": "..."} or
// {"error": {"code": "...", "message": "..."}} depending on the endpoint.
type apiErrorBody struct {
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. If the body carries a structured message it
// is preserved; otherwise a generic error with the status code and raw body is
// returned.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, endpoint string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", endpoint, resp.StatusCode, err)
	}

	message := ""
	var body apiErrorBody
	if json.Unmarshal(bodyBytes, &body) == nil {
		if body.Error != nil && body.Error.Message != "" {
			message = body.Error.Message
		} else if body.Message != "" {
			message = body.Message
		}
	}
	if message == "" {
		message = string(bodyBytes)
	}

	return mapStatusError(resp.StatusCode, message, endpoint)
}

// mapStatusError translates the backend's HTTP status code into an AppError
// that preserves the error semantics.
func mapStatusError(status int, message, endpoint string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", endpoint, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(endpoint, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualifiedMsg)
	case status == http.StatusConflict:
		return &apperrors.AppError{
			Code:    "ALREADY_EXISTS",
			Message: qualifiedMsg,
			Status:  http.StatusConflict,
			Err:     apperrors.ErrAlreadyExists,
		}
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualifiedMsg)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualifiedMsg)
	case status >= 500:
		return apperrors.Upstream(fmt.Sprintf("%s server error (%d): %s", endpoint, status, message))
	default:
		return &apperrors.AppError{
			Code:    "API_ERROR",
			Message: qualifiedMsg,
			Status:  status,
			Err:     apperrors.ErrUpstream,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// errorEnvelope is the envelope of an error response with undecoded data.
type errorEnvelope struct {
	Status  string          `json:"status"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	message := errorMessage(resp)

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, message)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusMethodNotAllowed:
		return fmt.Errorf("%w: %s", ErrMethodNotAllowed, message)
	case http.StatusUnprocessableEntity:
		return validationError(resp, message)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, message)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), message)
	}
}

// errorMessage prefers the envelope message and falls back to the raw body
// and then to the status text.
func errorMessage(resp *resty.Response) string {
	var env errorEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err == nil && env.Message != nil {
		return *env.Message
	}

	if body := strings.TrimSpace(string(resp.Body())); body != "" {
		return body
	}
	return http.StatusText(resp.StatusCode())
}

func validationError(resp *resty.Response, message string) error {
	verr := &ValidationError{Message: message}

	var env errorEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err == nil && len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, &verr.Fields)
	}
	return verr
}

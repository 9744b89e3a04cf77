package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// ContentTypeJSON is the Content-Type of every API response body.
const ContentTypeJSON = "application/json"

// WriteJSON serializes data to JSON and writes it to w with statusCode.
//
// The body is encoded before any header is written, so an encoding failure
// still produces a clean 500 response. HTML characters are not escaped;
// field and sensor names round-trip as typed.
//
// Returns the number of body bytes written.
//
// Example usage:
//
//	utils.WriteJSON(w, models.NewSuccessResponse(payload, ""), http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)

	return w.Write(buf.Bytes())
}

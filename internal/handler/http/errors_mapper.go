package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/service"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/internal/utils"
	"github.com/MKhiriev/go-agro-keeper/internal/validators"
	"github.com/MKhiriev/go-agro-keeper/models"
)

// Envelope messages of the error responses.
const (
	messageInvalidData        = "The given data was invalid."
	messageInvalidCredentials = "Credentials do not match"
	messageUnauthenticated    = "Unauthenticated."
	messageInvalidJSON        = "Invalid JSON was passed"
	messageRecordNotFound     = "Record not found."
	messageRouteNotFound      = "Not Found."
	messageMethodNotAllowed   = "Method Not Allowed."
	messageServerError        = "Server Error"
)

// errorStatusMap is matched top to bottom, so sentinels that may wrap a
// store error (ErrUnauthenticated wraps ErrRecordNotFound for a revoked
// token) come first.
var errorStatusMap = []struct {
	err    error
	status int
}{
	{validators.ErrValidationFailed, http.StatusUnprocessableEntity},
	{validators.ErrUnsupportedType, http.StatusInternalServerError},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},
	{service.ErrVersionIsNotSpecified, http.StatusInternalServerError},

	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidID, http.StatusNotFound},
	{ErrRouteNotFound, http.StatusNotFound},
	{ErrMethodNotAllowed, http.StatusMethodNotAllowed},

	{store.ErrRecordNotFound, http.StatusNotFound},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

// messageMap holds the envelope message of every non-500 status. Errors in
// the same status class share the message, except 401 where login failures
// and the authentication gate are told apart.
var messageMap = map[int]string{
	http.StatusUnprocessableEntity: messageInvalidData,
	http.StatusUnauthorized:        messageUnauthenticated,
	http.StatusBadRequest:          messageInvalidJSON,
	http.StatusNotFound:            messageRecordNotFound,
	http.StatusMethodNotAllowed:    messageMethodNotAllowed,
}

func statusFromError(err error) int {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error, status int) string {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return messageInvalidCredentials
	case errors.Is(err, ErrRouteNotFound):
		return messageRouteNotFound
	}
	if message, ok := messageMap[status]; ok {
		return message
	}
	return messageServerError
}

// writeError answers r with the error envelope for err. Validation errors
// expose their field messages as data; every other error carries null.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	var data any
	var fieldErrors validators.Errors
	if errors.As(err, &fieldErrors) {
		data = fieldErrors
	}

	if _, werr := utils.WriteJSON(w, models.NewErrorResponse(data, messageFromError(err, status)), status); werr != nil {
		log.Err(werr).Msg("error writing error response")
	}
}

// writeSuccess answers r with the success envelope.
func writeSuccess(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	if _, err := utils.WriteJSON(w, models.NewSuccessResponse(data, message), status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

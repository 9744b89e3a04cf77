package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-agro-keeper/internal/service"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/internal/utils"
	"github.com/MKhiriev/go-agro-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func serveWithoutToken(router http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

// nextRecorder is a terminal handler remembering the user it saw.
type nextRecorder struct {
	called bool
	user   models.User
}

func (n *nextRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.called = true
	n.user, _ = utils.GetUserFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestAuth_ValidToken(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), testToken).Return(testUser, nil)

	next := &nextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	assert.Equal(t, testUser, next.user)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		authErr    error
		expectCall bool
	}{
		{name: "missing header"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "bearer without token", header: "Bearer "},
		{name: "unknown token", header: "Bearer " + testToken, authErr: service.ErrUnauthenticated, expectCall: true},
		{
			name:       "revoked token",
			header:     "Bearer " + testToken,
			authErr:    fmt.Errorf("%w: %w", service.ErrUnauthenticated, store.ErrRecordNotFound),
			expectCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			if tt.expectCall {
				m.auth.EXPECT().Authenticate(gomock.Any(), testToken).Return(models.User{}, tt.authErr)
			}

			next := &nextRecorder{}
			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.auth(next).ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, next.called)

			env := decodeEnvelope(t, rec.Body)
			assert.Equal(t, models.StatusError, env.Status)
			assert.Equal(t, "Unauthenticated.", env.message())
		})
	}
}

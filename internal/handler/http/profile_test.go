package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/go-agro-keeper/internal/validators"
	"github.com/MKhiriev/go-agro-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetProfile(t *testing.T) {
	router, m := newAuthorizedRouter(t)

	m.profile.EXPECT().GetProfile(gomock.Any(), testUser).Return(testUser, nil)

	rec := serve(router, http.MethodGet, "/profile", "")

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeData[map[string]map[string]any](t, decodeEnvelope(t, rec.Body))
	assert.Equal(t, "ann@example.com", payload["user"]["email"])
	assert.NotContains(t, payload["user"], "password")
}

func TestUpdateProfile(t *testing.T) {
	router, m := newAuthorizedRouter(t)

	name := "Annie"
	updated := testUser
	updated.Name = name
	m.profile.EXPECT().
		UpdateProfile(gomock.Any(), testUser, models.ProfileUpdateRequest{Name: &name}).
		Return(updated, nil)

	rec := serve(router, http.MethodPost, "/profile", `{"name":"Annie"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeData[models.UserPayload](t, decodeEnvelope(t, rec.Body))
	assert.Equal(t, "Annie", payload.User.Name)
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	router, m := newAuthorizedRouter(t)

	m.profile.EXPECT().
		UpdateProfile(gomock.Any(), testUser, gomock.Any()).
		Return(models.User{}, validators.FieldError("email", "The email has already been taken."))

	rec := serve(router, http.MethodPost, "/profile", `{"email":"bob@example.com"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	data := decodeData[map[string][]string](t, decodeEnvelope(t, rec.Body))
	assert.Equal(t, []string{"The email has already been taken."}, data["email"])
}

func TestProfile_RequiresToken(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Times(0)

	rec := serveWithoutToken(h.Init(), http.MethodGet, "/profile")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthenticated.", decodeEnvelope(t, rec.Body).message())
}

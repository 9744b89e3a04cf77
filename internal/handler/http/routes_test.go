package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-agro-keeper/internal/config"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/service"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/auth/logout"},
		{http.MethodGet, "/profile"},
		{http.MethodPost, "/profile"},
		{http.MethodGet, "/fields"},
		{http.MethodPost, "/fields"},
		{http.MethodGet, "/fields/1"},
		{http.MethodPatch, "/fields/1"},
		{http.MethodDelete, "/fields/1"},
		{http.MethodGet, "/fields/1/sensors"},
		{http.MethodGet, "/sensors"},
		{http.MethodPost, "/sensors"},
		{http.MethodGet, "/sensors/1"},
		{http.MethodPatch, "/sensors/1"},
		{http.MethodDelete, "/sensors/1"},
	}

	h, _ := newTestHandler(t)
	router := h.Init()

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := serveWithoutToken(router, rt.method, rt.path)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Unauthenticated.", decodeEnvelope(t, rec.Body).message())
		})
	}
}

func TestInit_PublicRoutesSkipGate(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Times(0)
	m.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.Token{SignedString: "a"}, nil)
	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Token{SignedString: "b"}, nil)

	router := h.Init()

	assert.Equal(t, http.StatusCreated, serveWithoutToken(router, http.MethodPost, "/auth/register").Code)
	assert.Equal(t, http.StatusOK, serveWithoutToken(router, http.MethodPost, "/auth/login").Code)
}

func TestInit_UnknownRoute(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, path := range []string{"/nope", "/auth/unknown"} {
		rec := serveWithoutToken(h.Init(), http.MethodGet, path)

		require.Equal(t, http.StatusNotFound, rec.Code, path)
		env := decodeEnvelope(t, rec.Body)
		assert.Equal(t, models.StatusError, env.Status)
		assert.Equal(t, "Not Found.", env.message())
	}
}

func TestInit_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	for _, rt := range []struct{ method, path string }{
		{http.MethodGet, "/auth/login"},
		{http.MethodPost, "/version"},
		{http.MethodDelete, "/profile"},
	} {
		rec := serveWithoutToken(router, rt.method, rt.path)

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, rt.method+" "+rt.path)
		assert.Equal(t, "Method Not Allowed.", decodeEnvelope(t, rec.Body).message())
	}
}

func TestInit_FallbacksInsideResourceRoutes(t *testing.T) {
	router, _ := newAuthorizedRouter(t)

	rec := serve(router, http.MethodPut, "/fields/1", `{}`)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed.", decodeEnvelope(t, rec.Body).message())

	rec = serve(router, http.MethodGet, "/sensors/1/unknown", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found.", decodeEnvelope(t, rec.Body).message())
}

func TestInit_TraceIDHeader(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1")

	rec := serveWithoutToken(h.Init(), http.MethodGet, "/version")

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

// newSQLiteRouter wires the real services over an in-memory database.
func newSQLiteRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := store.NewConnect(ctx, config.DB{DSN: dsn}, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:     "sign-key",
			TokenHashKey:     "hash-key",
			TokenIssuer:      "go-agro-keeper",
			TokenDuration:    time.Hour,
			PasswordHashCost: bcrypt.MinCost,
			Version:          "test",
		},
	}
	services, err := service.NewServices(store.NewStorages(db, log), cfg, models.NewAppBuildInfo("", "", ""), log)
	require.NoError(t, err)

	return NewHandler(services, config.Server{RequestTimeout: 5 * time.Second}, log).Init()
}

func request(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAPI_FieldAndSensorLifecycle(t *testing.T) {
	router := newSQLiteRouter(t)

	rec := request(router, http.MethodPost, "/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token := decodeData[models.TokenResponse](t, decodeEnvelope(t, rec.Body)).Token
	require.NotEmpty(t, token)

	rec = request(router, http.MethodPost, "/fields", token, `{"name":"North"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	field := decodeData[models.FieldPayload](t, decodeEnvelope(t, rec.Body)).Field
	assert.Equal(t, "North", field.Name)

	rec = request(router, http.MethodPost, "/sensors", token,
		fmt.Sprintf(`{"name":"Probe","lat":48.5,"lng":35.1,"status":"active","field_id":%d}`, field.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sensor := decodeData[models.SensorPayload](t, decodeEnvelope(t, rec.Body)).Sensor

	rec = request(router, http.MethodPost, "/sensors", token, `{"name":"Lost","lat":1,"lng":1,"status":"active","field_id":999}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeData[map[string][]string](t, decodeEnvelope(t, rec.Body)), "field_id")

	rec = request(router, http.MethodPatch, fmt.Sprintf("/sensors/%d", sensor.ID), token, `{"name":"Probe","status":"inactive"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[models.SensorPayload](t, decodeEnvelope(t, rec.Body)).Sensor
	assert.Equal(t, "inactive", updated.Status)
	assert.Equal(t, 48.5, updated.Lat)

	rec = request(router, http.MethodGet, fmt.Sprintf("/fields/%d/sensors", field.ID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[models.FieldWithSensorsPayload](t, decodeEnvelope(t, rec.Body)).Field.Sensors, 1)

	rec = request(router, http.MethodGet, "/fields", "not-a-token", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthenticated.", decodeEnvelope(t, rec.Body).message())

	rec = request(router, http.MethodDelete, fmt.Sprintf("/fields/%d", field.ID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = request(router, http.MethodGet, fmt.Sprintf("/sensors/%d", sensor.ID), token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_LogoutRevokesTokens(t *testing.T) {
	router := newSQLiteRouter(t)

	rec := request(router, http.MethodPost, "/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decodeData[models.TokenResponse](t, decodeEnvelope(t, rec.Body)).Token

	rec = request(router, http.MethodPost, "/auth/login", "", `{"email":"ann@example.com","password":"Secret#123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decodeData[models.TokenResponse](t, decodeEnvelope(t, rec.Body)).Token

	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/profile", first, "").Code)
	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/profile", second, "").Code)

	rec = request(router, http.MethodPost, "/auth/logout", second, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "You are logged out", decodeEnvelope(t, rec.Body).message())

	assert.Equal(t, http.StatusUnauthorized, request(router, http.MethodGet, "/profile", first, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, http.MethodGet, "/profile", second, "").Code)

	rec = request(router, http.MethodPost, "/auth/login", "", `{"email":"ann@example.com","password":"Wrong#123"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Credentials do not match", decodeEnvelope(t, rec.Body).message())
}

func TestAPI_RegisterDuplicateEmail(t *testing.T) {
	router := newSQLiteRouter(t)

	require.Equal(t, http.StatusCreated, request(router, http.MethodPost, "/auth/register", "", registerBody).Code)

	rec := request(router, http.MethodPost, "/auth/register", "", registerBody)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeData[map[string][]string](t, decodeEnvelope(t, rec.Body)), "email")
}

func TestAPI_UpdateUnknownResource(t *testing.T) {
	router := newSQLiteRouter(t)

	rec := request(router, http.MethodPost, "/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token := decodeData[models.TokenResponse](t, decodeEnvelope(t, rec.Body)).Token

	tests := []struct {
		path string
		body string
	}{
		{path: "/fields/999", body: `{}`},
		{path: "/sensors/999", body: `{"status":"off"}`},
		{path: "/sensors/999", body: `{"lat":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path+" "+tt.body, func(t *testing.T) {
			rec := request(router, http.MethodPatch, tt.path, token, tt.body)

			require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
			assert.Equal(t, "Record not found.", decodeEnvelope(t, rec.Body).message())
		})
	}
}

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-agro-keeper/internal/config"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/utils"
	"github.com/MKhiriev/go-agro-keeper/models"
)

type httpAPIAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// envelope is the success envelope with typed data.
type envelope[T any] struct {
	Status  string  `json:"status"`
	Message *string `json:"message"`
	Data    T       `json:"data"`
}

// NewHTTPAPIAdapter constructs the HTTP implementation of [APIAdapter].
// It normalises and validates the base URL from cfg.HTTPAddress and
// configures the underlying client with cfg.RequestTimeout. token may be
// empty.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPAPIAdapter(cfg config.ClientAdapter, token string, logger *logger.Logger) (APIAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpAPIAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	a.SetToken(token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [APIAdapter]. The token is whitespace-trimmed.
func (h *httpAPIAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [APIAdapter].
func (h *httpAPIAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// send executes one API call and returns the decoded envelope data.
// body is sent as JSON when not nil.
func send[T any](ctx context.Context, h *httpAPIAdapter, method, path string, body any) (T, error) {
	var zero T

	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return zero, fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Int("status", resp.StatusCode()).Str("path", path).Msg("api call failed")
		return zero, err
	}

	var env envelope[T]
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return zero, fmt.Errorf("%w: %s %s: %w", ErrUnexpectedResponse, method, path, err)
	}
	if env.Status != models.StatusSuccess {
		return zero, fmt.Errorf("%w: status %q", ErrUnexpectedResponse, env.Status)
	}

	return env.Data, nil
}

// Register implements [APIAdapter]. POST /auth/register.
func (h *httpAPIAdapter) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	data, err := send[models.TokenResponse](ctx, h, http.MethodPost, "/auth/register", req)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	h.SetToken(data.Token)
	return data.Token, nil
}

// Login implements [APIAdapter]. POST /auth/login.
func (h *httpAPIAdapter) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	data, err := send[models.TokenResponse](ctx, h, http.MethodPost, "/auth/login", req)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	h.SetToken(data.Token)
	return data.Token, nil
}

// Logout implements [APIAdapter]. POST /auth/logout.
func (h *httpAPIAdapter) Logout(ctx context.Context) error {
	if _, err := send[json.RawMessage](ctx, h, http.MethodPost, "/auth/logout", nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	h.SetToken("")
	return nil
}

func (h *httpAPIAdapter) Profile(ctx context.Context) (models.User, error) {
	data, err := send[models.UserPayload](ctx, h, http.MethodGet, "/profile", nil)
	return data.User, err
}

func (h *httpAPIAdapter) UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (models.User, error) {
	data, err := send[models.UserPayload](ctx, h, http.MethodPost, "/profile", req)
	return data.User, err
}

func (h *httpAPIAdapter) ListFields(ctx context.Context) ([]models.Field, error) {
	data, err := send[models.FieldsPayload](ctx, h, http.MethodGet, "/fields", nil)
	return data.Fields, err
}

func (h *httpAPIAdapter) CreateField(ctx context.Context, req models.FieldRequest) (models.Field, error) {
	data, err := send[models.FieldPayload](ctx, h, http.MethodPost, "/fields", req)
	return data.Field, err
}

func (h *httpAPIAdapter) GetField(ctx context.Context, id int64) (models.Field, error) {
	data, err := send[models.FieldPayload](ctx, h, http.MethodGet, fieldPath(id), nil)
	return data.Field, err
}

func (h *httpAPIAdapter) UpdateField(ctx context.Context, id int64, req models.FieldRequest) (models.Field, error) {
	data, err := send[models.FieldPayload](ctx, h, http.MethodPatch, fieldPath(id), req)
	return data.Field, err
}

func (h *httpAPIAdapter) DeleteField(ctx context.Context, id int64) error {
	_, err := send[json.RawMessage](ctx, h, http.MethodDelete, fieldPath(id), nil)
	return err
}

func (h *httpAPIAdapter) GetFieldWithSensors(ctx context.Context, id int64) (models.FieldWithSensors, error) {
	data, err := send[models.FieldWithSensorsPayload](ctx, h, http.MethodGet, fieldPath(id)+"/sensors", nil)
	return data.Field, err
}

func (h *httpAPIAdapter) ListSensors(ctx context.Context) ([]models.Sensor, error) {
	data, err := send[models.SensorsPayload](ctx, h, http.MethodGet, "/sensors", nil)
	return data.Sensors, err
}

func (h *httpAPIAdapter) CreateSensor(ctx context.Context, req models.SensorCreateRequest) (models.Sensor, error) {
	data, err := send[models.SensorPayload](ctx, h, http.MethodPost, "/sensors", req)
	return data.Sensor, err
}

func (h *httpAPIAdapter) GetSensor(ctx context.Context, id int64) (models.Sensor, error) {
	data, err := send[models.SensorPayload](ctx, h, http.MethodGet, sensorPath(id), nil)
	return data.Sensor, err
}

func (h *httpAPIAdapter) UpdateSensor(ctx context.Context, id int64, req models.SensorUpdateRequest) (models.Sensor, error) {
	data, err := send[models.SensorPayload](ctx, h, http.MethodPatch, sensorPath(id), req)
	return data.Sensor, err
}

func (h *httpAPIAdapter) DeleteSensor(ctx context.Context, id int64) error {
	_, err := send[json.RawMessage](ctx, h, http.MethodDelete, sensorPath(id), nil)
	return err
}

// Version implements [APIAdapter]. GET /version answers plain text, not an
// envelope.
func (h *httpAPIAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

func fieldPath(id int64) string {
	return fmt.Sprintf("/fields/%d", id)
}

func sensorPath(id int64) string {
	return fmt.Sprintf("/sensors/%d", id)
}

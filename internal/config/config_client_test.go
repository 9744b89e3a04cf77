package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateDotEnv(t *testing.T) {
	t.Helper()
	clearEnvVars(t)
	t.Setenv(dotEnvPathEnv, filepath.Join(t.TempDir(), "missing.env"))
}

func TestGetClientConfig_Defaults(t *testing.T) {
	isolateDotEnv(t)

	cfg, rest, err := GetClientConfig([]string{"fields"})
	require.NoError(t, err)
	assert.Equal(t, DefaultClientAddress, cfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultClientRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, []string{"fields"}, rest)
}

func TestGetClientConfig_EnvAndFlags(t *testing.T) {
	isolateDotEnv(t)
	t.Setenv("ADAPTER_ADDRESS", "http://env:8080")
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "3s")
	t.Setenv("AGRO_TOKEN", "env-token")

	cfg, rest, err := GetClientConfig([]string{"-a", "http://flag:9090", "sensor", "get", "4"})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:9090", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, []string{"sensor", "get", "4"}, rest)
}

func TestGetClientConfig_Invalid(t *testing.T) {
	isolateDotEnv(t)

	_, _, err := GetClientConfig([]string{"-a", ""})
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)

	_, _, err = GetClientConfig([]string{"-nope"})
	require.Error(t, err)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultDotEnvPath = ".env"
	dotEnvPathEnv     = "DOTENV_PATH"
)

func dotEnvPath() string {
	if path := os.Getenv(dotEnvPathEnv); path != "" {
		return path
	}
	return defaultDotEnvPath
}

// loadDotEnv reads KEY=VALUE pairs from path into the process environment.
// Variables already present in the environment are not overwritten.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading dotenv file %q: %w", path, err)
	}

	return nil
}

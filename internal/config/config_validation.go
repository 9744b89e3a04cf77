// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// bcrypt accepts costs in [4, 31].
const (
	minPasswordHashCost = 4
	maxPasswordHashCost = 31
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Every violated group
// is reported.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	switch {
	case cfg.App.TokenSignKey == "":
		errs = append(errs, fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs))
	case cfg.App.TokenHashKey == "":
		errs = append(errs, fmt.Errorf("%w: token hash key is required", ErrInvalidAppConfigs))
	case cfg.App.TokenDuration <= 0:
		errs = append(errs, fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs))
	case cfg.App.PasswordHashCost < minPasswordHashCost || cfg.App.PasswordHashCost > maxPasswordHashCost:
		errs = append(errs, fmt.Errorf("%w: password hash cost must be between %d and %d",
			ErrInvalidAppConfigs, minPasswordHashCost, maxPasswordHashCost))
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs))
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: address and positive request timeout are required", ErrInvalidServerConfigs))
	}

	if cfg.Workers.TokenPruneInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: token prune interval must be positive", ErrInvalidWorkerConfigs))
	}

	return errors.Join(errs...)
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

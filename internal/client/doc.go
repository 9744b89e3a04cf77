// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client runtime.
//
// It maps command words to [adapter.APIAdapter] calls and prints the results
// as indented JSON.
package client

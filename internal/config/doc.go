// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Server configuration is assembled from multiple sources; later sources
// override non-zero fields of earlier ones:
//  1. Built-in defaults
//  2. JSON or YAML config file (-c / CONFIG)
//  3. Environment variables, including those loaded from a .env file
//  4. Command-line flags
//
// The main entry points are [GetStructuredConfig] for the API server and
// [GetClientConfig] for the command-line client.
package config

// Package config provides configuration loading, merging, and validation
// facilities for the vault server and its clients.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file
//  2. Environment variables
//  3. Command-line flags
//  4. Config file (JSON, TOML or YAML)
//
// The main entry points are [GetServerConfig] for the API server and
// [GetClientConfig] for the terminal clients. Both fill unset fields with
// role defaults before validating.
package config

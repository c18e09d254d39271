// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package provider talks JSON-RPC to Rootstock nodes through the hardened
// transport and knows the chain constants for both public networks.
package provider

import (
	"fmt"
	"strings"

	"github.com/rskvault/rskvault/internal/security"
)

// Network names accepted throughout the CLI and config.
const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// Rootstock chain IDs.
const (
	ChainIDMainnet uint64 = 30
	ChainIDTestnet uint64 = 31
)

// Public node endpoints, used when no RPC URL is configured.
const (
	DefaultRPCMainnet = "https://public-node.rsk.co"
	DefaultRPCTestnet = "https://public-node.testnet.rsk.co"
)

const (
	alchemyMainnetBase = "https://rootstock-mainnet.g.alchemy.com/v2/"
	alchemyTestnetBase = "https://rootstock-testnet.g.alchemy.com/v2/"
)

// ErrUnknownNetwork is returned for any network name other than mainnet or
// testnet.
var ErrUnknownNetwork = fmt.Errorf("unknown network (use %s or %s)", NetworkMainnet, NetworkTestnet)

// NormalizeNetwork lowercases and validates a network name.
func NormalizeNetwork(network string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(network)) {
	case NetworkMainnet:
		return NetworkMainnet, nil
	case NetworkTestnet:
		return NetworkTestnet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}
}

// ChainID returns the chain ID registered for the named network.
func ChainID(network string) (uint64, error) {
	n, err := NormalizeNetwork(network)
	if err != nil {
		return 0, err
	}
	if n == NetworkMainnet {
		return ChainIDMainnet, nil
	}
	return ChainIDTestnet, nil
}

// DefaultRPCURL returns the public node endpoint for the named network.
func DefaultRPCURL(network string) (string, error) {
	n, err := NormalizeNetwork(network)
	if err != nil {
		return "", err
	}
	if n == NetworkMainnet {
		return DefaultRPCMainnet, nil
	}
	return DefaultRPCTestnet, nil
}

// AlchemyURL builds the per-network Alchemy endpoint with the key as the
// final path segment. The resulting URL is a credential; it must only be
// handed to the hardened client, whose logging masks that segment.
func AlchemyURL(network string, key security.APIKey) (string, error) {
	n, err := NormalizeNetwork(network)
	if err != nil {
		return "", err
	}
	raw, err := key.Expose()
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", fmt.Errorf("%w: empty api key", ErrRPC)
	}
	if n == NetworkMainnet {
		return alchemyMainnetBase + raw, nil
	}
	return alchemyTestnetBase + raw, nil
}

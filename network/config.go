package network

import (
	"fmt"
	"strings"
	"time"
)

// RPCConfig holds the connection parameters for a full node's RPC
// interface. URL, when set, wins over Host/Port (useful for tests).
type RPCConfig struct {
	URL        string        `json:"url"`
	Host       string        `json:"host"`
	Port       uint16        `json:"port"`
	CertPath   string        `json:"cert_path"`
	KeyPath    string        `json:"key_path"`
	CACertPath string        `json:"ca_cert_path"`
	Timeout    time.Duration `json:"-"`
}

// NetworkPresets contains default RPC configurations for known networks.
// Both assume a node running on the same machine.
var NetworkPresets = map[string]RPCConfig{
	"mainnet": {Host: "localhost", Port: 8555},
	"testnet": {Host: "localhost", Port: 8555},
}

// ResolveConfig merges RPC configuration from three sources with
// decreasing priority: explicit overrides, environment variables
// (CHIAVAULT_NODE_URL, CHIAVAULT_NODE_HOST, CHIAVAULT_NODE_PORT,
// CHIAVAULT_NODE_CERT, CHIAVAULT_NODE_KEY), then network presets.
func ResolveConfig(overrides *RPCConfig, env map[string]string, networkName string) (*RPCConfig, error) {
	result, ok := NetworkPresets[networkName]
	if !ok {
		result = RPCConfig{}
	}

	if env != nil {
		if v := env["CHIAVAULT_NODE_URL"]; v != "" {
			result.URL = v
		}
		if v := env["CHIAVAULT_NODE_HOST"]; v != "" {
			result.Host = v
		}
		if v := env["CHIAVAULT_NODE_PORT"]; v != "" {
			var port uint16
			if _, err := fmt.Sscanf(v, "%d", &port); err != nil {
				return nil, fmt.Errorf("%w: CHIAVAULT_NODE_PORT=%q", ErrInvalidConfig, v)
			}
			result.Port = port
		}
		if v := env["CHIAVAULT_NODE_CERT"]; v != "" {
			result.CertPath = v
		}
		if v := env["CHIAVAULT_NODE_KEY"]; v != "" {
			result.KeyPath = v
		}
	}

	if overrides != nil {
		if overrides.URL != "" {
			result.URL = overrides.URL
		}
		if overrides.Host != "" {
			result.Host = overrides.Host
		}
		if overrides.Port != 0 {
			result.Port = overrides.Port
		}
		if overrides.CertPath != "" {
			result.CertPath = overrides.CertPath
		}
		if overrides.KeyPath != "" {
			result.KeyPath = overrides.KeyPath
		}
		if overrides.CACertPath != "" {
			result.CACertPath = overrides.CACertPath
		}
		if overrides.Timeout != 0 {
			result.Timeout = overrides.Timeout
		}
	}

	if _, err := result.baseURL(); err != nil {
		return nil, err
	}
	return &result, nil
}

// baseURL resolves the request base, without a trailing slash.
func (c RPCConfig) baseURL() (string, error) {
	if c.URL != "" {
		return strings.TrimSuffix(c.URL, "/"), nil
	}
	if c.Host == "" || c.Port == 0 {
		return "", fmt.Errorf("%w: host and port (or url) required", ErrInvalidConfig)
	}
	return fmt.Sprintf("https://%s:%d", c.Host, c.Port), nil
}

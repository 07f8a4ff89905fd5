package network

import "errors"

var (
	// ErrConnectionFailed indicates the node could not be reached.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrInvalidResponse indicates the node's response could not be decoded.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrRPCFailed indicates the node answered with success=false.
	ErrRPCFailed = errors.New("network: rpc call failed")

	// ErrInvalidConfig indicates incomplete or malformed RPC configuration.
	ErrInvalidConfig = errors.New("network: invalid rpc configuration")
)

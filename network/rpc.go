package network

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/chiavault/libchiavault-go/coin"
)

// Client talks to a full node's HTTPS RPC interface. Every endpoint is a
// POST of a JSON object to a method path; responses carry a success flag
// and an optional error string.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

var _ FullNodeService = (*Client)(nil)

// NewClient creates a full-node RPC client from the given configuration.
// When certificate paths are configured the client authenticates with
// mutual TLS, which is what a production node requires.
func NewClient(cfg RPCConfig) (*Client, error) {
	baseURL, err := cfg.baseURL()
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}
	if cfg.CertPath != "" {
		tlsConfig, err := buildTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		transport.TLSClientConfig = tlsConfig
	}

	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout, Transport: transport},
		log:     zerolog.Nop(),
	}, nil
}

// SetLogger attaches a structured logger; the default discards everything.
func (c *Client) SetLogger(log zerolog.Logger) {
	c.log = log
}

// GetSyncState implements FullNodeService.
func (c *Client) GetSyncState(ctx context.Context) (*SyncState, error) {
	var resp struct {
		rpcEnvelope
		BlockchainState struct {
			Sync SyncState `json:"sync"`
			Peak struct {
				Height uint32 `json:"height"`
			} `json:"peak"`
		} `json:"blockchain_state"`
	}

	if err := c.post(ctx, "get_blockchain_state", struct{}{}, &resp); err != nil {
		return nil, err
	}

	state := resp.BlockchainState.Sync
	if state.PeakHeight == 0 {
		state.PeakHeight = resp.BlockchainState.Peak.Height
	}
	return &state, nil
}

// GetCoinRecords implements FullNodeService.
func (c *Client) GetCoinRecords(ctx context.Context, puzzleHashes []coin.Bytes32, includeSpent bool) ([]coin.CoinRecord, error) {
	req := struct {
		PuzzleHashes      []coin.Bytes32 `json:"puzzle_hashes"`
		IncludeSpentCoins bool           `json:"include_spent_coins"`
	}{PuzzleHashes: puzzleHashes, IncludeSpentCoins: includeSpent}

	var resp struct {
		rpcEnvelope
		CoinRecords []coin.CoinRecord `json:"coin_records"`
	}

	if err := c.post(ctx, "get_coin_records_by_puzzle_hashes", req, &resp); err != nil {
		return nil, err
	}

	c.log.Debug().
		Int("puzzle_hashes", len(puzzleHashes)).
		Int("records", len(resp.CoinRecords)).
		Msg("coin records fetched")
	return resp.CoinRecords, nil
}

// PushTx implements FullNodeService.
func (c *Client) PushTx(ctx context.Context, bundle json.RawMessage) (string, error) {
	req := struct {
		SpendBundle json.RawMessage `json:"spend_bundle"`
	}{SpendBundle: bundle}

	var resp struct {
		rpcEnvelope
		Status string `json:"status"`
	}

	if err := c.post(ctx, "push_tx", req, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// rpcEnvelope is the common success/error framing of every response.
type rpcEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (e rpcEnvelope) envelope() rpcEnvelope { return e }

// envelopeCarrier lets post inspect the framing of any response struct
// that embeds rpcEnvelope.
type envelopeCarrier interface {
	envelope() rpcEnvelope
}

// post sends one RPC request and decodes the response. Transport failures
// return ErrConnectionFailed; undecodable or unsuccessful responses return
// ErrInvalidResponse and ErrRPCFailed respectively.
func (c *Client) post(ctx context.Context, method string, reqBody any, result envelopeCarrier) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("network: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("network: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: %s: HTTP %d: %s", ErrConnectionFailed, method, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidResponse, method, err)
	}

	if env := result.envelope(); !env.Success {
		return fmt.Errorf("%w: %s: %s", ErrRPCFailed, method, env.Error)
	}
	return nil
}

// buildTLSConfig loads the client certificate pair and, when provided,
// the node's CA certificate.
func buildTLSConfig(cfg RPCConfig) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertPath, cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("network: load client certificate: %w", err)
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if cfg.CACertPath != "" {
		caPEM, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("network: read CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("network: parse CA certificate: no certificates found")
		}
		tlsConfig.RootCAs = pool
	} else {
		// Node certificates are self-signed by default.
		tlsConfig.InsecureSkipVerify = true
	}

	return tlsConfig, nil
}

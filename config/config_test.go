package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNetwork(t *testing.T) {
	mainnet, err := GetNetwork("mainnet")
	require.NoError(t, err)
	assert.Equal(t, "xch", mainnet.AddressPrefix)

	testnet, err := GetNetwork("testnet")
	require.NoError(t, err)
	assert.Equal(t, "txch", testnet.AddressPrefix)
	assert.NotEqual(t, mainnet.GenesisChallenge, testnet.GenesisChallenge,
		"networks must have distinct signing domains")

	_, err = GetNetwork("simnet")
	assert.ErrorIs(t, err, ErrInvalidNetwork)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr error
	}{
		{"valid", func(p *Params) {}, nil},
		{"empty name", func(p *Params) { p.Name = "" }, ErrEmptyName},
		{"empty prefix", func(p *Params) { p.AddressPrefix = "" }, ErrEmptyPrefix},
		{"uppercase prefix", func(p *Params) { p.AddressPrefix = "XCH" }, ErrInvalidPrefix},
		{"digit in prefix", func(p *Params) { p.AddressPrefix = "xch1" }, ErrInvalidPrefix},
		{"zero genesis challenge", func(p *Params) { p.GenesisChallenge = [32]byte{} }, ErrEmptyGenesisChallenge},
		{"zero hidden puzzle hash", func(p *Params) { p.HiddenPuzzleHash = [32]byte{} }, ErrEmptyHiddenPuzzleHash},
		{"zero max cost", func(p *Params) { p.MaxBlockCost = 0 }, ErrZeroMaxBlockCost},
		{"zero cost limit", func(p *Params) { p.CostLimitPercent = 0 }, ErrInvalidCostLimit},
		{"cost limit above 100", func(p *Params) { p.CostLimitPercent = 101 }, ErrInvalidCostLimit},
		{"zero batch size", func(p *Params) { p.ScanBatchSize = 0 }, ErrInvalidBatchSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MainNet
			tt.mutate(&p)
			err := Validate(p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCostCeiling(t *testing.T) {
	p := MainNet
	assert.Equal(t, uint64(5500000000), p.CostCeiling(), "default is half the block ceiling")

	p.CostLimitPercent = 100
	assert.Equal(t, p.MaxBlockCost, p.CostCeiling())
}

func TestLoadCustomNetwork(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.json")
	content := `{
		"name": "simulator",
		"address_prefix": "sim",
		"genesis_challenge": "0x1111111111111111111111111111111111111111111111111111111111111111",
		"hidden_puzzle_hash": "0x2222222222222222222222222222222222222222222222222222222222222222",
		"max_block_cost": 1000000,
		"cost_limit_percent": 25,
		"cost_per_byte": 100,
		"scan_batch_size": 50
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	p, err := LoadCustomNetwork(path)
	require.NoError(t, err)
	assert.Equal(t, "simulator", p.Name)
	assert.Equal(t, "sim", p.AddressPrefix)
	assert.Equal(t, uint64(250000), p.CostCeiling())
}

func TestLoadCustomNetwork_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "broken"}`), 0600))

	_, err := LoadCustomNetwork(path)
	assert.ErrorIs(t, err, ErrEmptyPrefix)

	_, err = LoadCustomNetwork(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

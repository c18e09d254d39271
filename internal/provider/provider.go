// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync/atomic"

	"github.com/rskvault/rskvault/internal/security"
)

// Provider is a JSON-RPC client bound to one endpoint. All traffic goes
// through the hardened security.Client, so request logging and TLS policy
// are inherited rather than reimplemented here.
type Provider struct {
	client *security.Client
	url    string
	nextID atomic.Uint64
}

// New returns a provider for the named network. An empty rpcURL selects the
// public node endpoint; enforceTLS only matters for custom URLs since the
// defaults are all https.
func New(network, rpcURL string, enforceTLS bool) (*Provider, error) {
	if rpcURL == "" {
		var err error
		rpcURL, err = DefaultRPCURL(network)
		if err != nil {
			return nil, err
		}
	}
	client := security.NewHTTPClientWithConfig(enforceTLS)
	if err := client.ValidateURL(rpcURL); err != nil {
		return nil, err
	}
	return &Provider{client: client, url: rpcURL}, nil
}

// NewWithClient binds a provider to an existing client and URL. Used by
// tests and by callers that already hold a configured client.
func NewWithClient(rpcURL string, client *security.Client) *Provider {
	return &Provider{client: client, url: rpcURL}
}

// URL returns the endpoint this provider talks to.
func (p *Provider) URL() string { return p.url }

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// call performs one round trip and returns the raw result field, which may
// be JSON null. Node-side failures come back as *RPCError.
func (p *Provider) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      p.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	resp, err := p.client.PostJSON(ctx, p.url, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %s", ErrRPC, method, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %v", ErrRPC, method, err)
	}

	var decoded rpcResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode %s response: %v", ErrRPC, method, err)
	}
	if decoded.Error != nil {
		return nil, decoded.Error
	}
	return decoded.Result, nil
}

// Call performs one JSON-RPC round trip and decodes the result field into
// result (ignored when nil). A null result counts as an error here; methods
// where null is meaningful use the raw form. errors.Is(err, ErrRPC)
// classifies node-side failures.
func (p *Provider) Call(ctx context.Context, result any, method string, params ...any) error {
	raw, err := p.call(ctx, method, params)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if isNullResult(raw) {
		return fmt.Errorf("%w: %s returned no result", ErrRPC, method)
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("%w: decode %s result: %v", ErrRPC, method, err)
	}
	return nil
}

func isNullResult(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// callQuantity handles the common result shape: a single hex quantity.
func (p *Provider) callQuantity(ctx context.Context, method string, params ...any) (*big.Int, error) {
	var out string
	if err := p.Call(ctx, &out, method, params...); err != nil {
		return nil, err
	}
	return DecodeQuantity(out)
}

// ChainID fetches the chain ID the node reports.
func (p *Provider) ChainID(ctx context.Context) (uint64, error) {
	v, err := p.callQuantity(ctx, "eth_chainId")
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: chain id out of range", ErrRPC)
	}
	return v.Uint64(), nil
}

// BlockNumber fetches the latest block height.
func (p *Provider) BlockNumber(ctx context.Context) (uint64, error) {
	v, err := p.callQuantity(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: block number out of range", ErrRPC)
	}
	return v.Uint64(), nil
}

// GasPrice fetches the node's suggested gas price in wei.
func (p *Provider) GasPrice(ctx context.Context) (*big.Int, error) {
	return p.callQuantity(ctx, "eth_gasPrice")
}

// Balance fetches the latest balance of address in wei.
func (p *Provider) Balance(ctx context.Context, address string) (*big.Int, error) {
	return p.callQuantity(ctx, "eth_getBalance", address, "latest")
}

// TransactionCount fetches the next nonce for address. The pending tag
// counts queued transactions, so back-to-back sends do not collide.
func (p *Provider) TransactionCount(ctx context.Context, address string) (uint64, error) {
	v, err := p.callQuantity(ctx, "eth_getTransactionCount", address, "pending")
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: transaction count out of range", ErrRPC)
	}
	return v.Uint64(), nil
}

// EstimateGas asks the node to estimate gas for a value-transfer shaped
// call. Value may be nil.
func (p *Provider) EstimateGas(ctx context.Context, from, to string, value *big.Int) (uint64, error) {
	msg := map[string]string{"from": from, "to": to}
	if value != nil {
		msg["value"] = EncodeQuantity(value)
	}
	v, err := p.callQuantity(ctx, "eth_estimateGas", msg)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: gas estimate out of range", ErrRPC)
	}
	return v.Uint64(), nil
}

// SendRawTransaction broadcasts a signed transaction (0x-prefixed hex) and
// returns the transaction hash the node assigned.
func (p *Provider) SendRawTransaction(ctx context.Context, rawHex string) (string, error) {
	var hash string
	if err := p.Call(ctx, &hash, "eth_sendRawTransaction", rawHex); err != nil {
		return "", err
	}
	return hash, nil
}

// Receipt is the subset of a transaction receipt the CLI reports.
type Receipt struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     string `json:"blockNumber"`
	GasUsed         string `json:"gasUsed"`
	Status          string `json:"status"`
	From            string `json:"from"`
	To              string `json:"to"`
}

// Succeeded reports whether the transaction executed without reverting.
func (r *Receipt) Succeeded() bool { return r.Status == "0x1" }

// TransactionReceipt fetches the receipt for hash. A nil receipt with nil
// error means the transaction is still pending.
func (p *Provider) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	raw, err := p.call(ctx, "eth_getTransactionReceipt", []any{hash})
	if err != nil {
		return nil, err
	}
	if isNullResult(raw) {
		return nil, nil
	}
	var rec Receipt
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode receipt: %v", ErrRPC, err)
	}
	return &rec, nil
}

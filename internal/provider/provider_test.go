// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rskvault/rskvault/internal/security"
)

// fakeNode answers JSON-RPC with canned results per method and records the
// requests it saw.
type fakeNode struct {
	t       *testing.T
	results map[string]string // method -> raw JSON result
	errors  map[string]*RPCError
	seen    []rpcRequest
}

func (f *fakeNode) handler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JSONRPC string            `json:"jsonrpc"`
		ID      uint64            `json:"id"`
		Method  string            `json:"method"`
		Params  []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		f.t.Errorf("decode request: %v", err)
		return
	}
	if req.JSONRPC != "2.0" {
		f.t.Errorf("jsonrpc version = %q, want 2.0", req.JSONRPC)
	}
	f.seen = append(f.seen, rpcRequest{ID: req.ID, Method: req.Method})

	w.Header().Set("Content-Type", "application/json")
	if rpcErr, ok := f.errors[req.Method]; ok {
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID, "error": rpcErr}
		json.NewEncoder(w).Encode(resp)
		return
	}
	result, ok := f.results[req.Method]
	if !ok {
		result = "null"
	}
	w.Write([]byte(`{"jsonrpc":"2.0","id":` + encodeID(req.ID) + `,"result":` + result + `}`))
}

func encodeID(id uint64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func newFakeNode(t *testing.T, results map[string]string) (*fakeNode, *Provider) {
	t.Helper()
	node := &fakeNode{t: t, results: results, errors: map[string]*RPCError{}}
	srv := httptest.NewServer(http.HandlerFunc(node.handler))
	t.Cleanup(srv.Close)
	p := NewWithClient(srv.URL, security.NewHTTPClientWithConfig(false))
	return node, p
}

func TestProviderQuantityCalls(t *testing.T) {
	_, p := newFakeNode(t, map[string]string{
		"eth_chainId":             `"0x1e"`,
		"eth_blockNumber":         `"0x6b1a2a"`,
		"eth_gasPrice":            `"0x3e252e0"`,
		"eth_getBalance":          `"0xde0b6b3a7640000"`,
		"eth_getTransactionCount": `"0x7"`,
		"eth_estimateGas":         `"0x5208"`,
	})
	ctx := context.Background()

	if got, err := p.ChainID(ctx); err != nil || got != 30 {
		t.Errorf("ChainID = %d, %v; want 30", got, err)
	}
	if got, err := p.BlockNumber(ctx); err != nil || got != 7019050 {
		t.Errorf("BlockNumber = %d, %v; want 7019050", got, err)
	}
	if got, err := p.GasPrice(ctx); err != nil || got.Cmp(big.NewInt(65164000)) != 0 {
		t.Errorf("GasPrice = %v, %v; want 65164000", got, err)
	}
	if got, err := p.Balance(ctx, "0x1111111111111111111111111111111111111111"); err != nil || FormatRBTC(got) != "1" {
		t.Errorf("Balance = %v, %v; want 1 RBTC", got, err)
	}
	if got, err := p.TransactionCount(ctx, "0x1111111111111111111111111111111111111111"); err != nil || got != 7 {
		t.Errorf("TransactionCount = %d, %v; want 7", got, err)
	}
	if got, err := p.EstimateGas(ctx, "0x1111111111111111111111111111111111111111", "0x2222222222222222222222222222222222222222", big.NewInt(1)); err != nil || got != 21000 {
		t.Errorf("EstimateGas = %d, %v; want 21000", got, err)
	}
}

func TestProviderRequestIDsIncrease(t *testing.T) {
	node, p := newFakeNode(t, map[string]string{"eth_blockNumber": `"0x1"`})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := p.BlockNumber(ctx); err != nil {
			t.Fatalf("BlockNumber: %v", err)
		}
	}
	if len(node.seen) != 3 {
		t.Fatalf("saw %d requests, want 3", len(node.seen))
	}
	for i := 1; i < len(node.seen); i++ {
		if node.seen[i].ID <= node.seen[i-1].ID {
			t.Errorf("request ids not increasing: %d then %d", node.seen[i-1].ID, node.seen[i].ID)
		}
	}
}

func TestProviderNodeError(t *testing.T) {
	node, p := newFakeNode(t, nil)
	node.errors["eth_gasPrice"] = &RPCError{Code: -32000, Message: "insufficient funds"}

	_, err := p.GasPrice(context.Background())
	if !errors.Is(err, ErrRPC) {
		t.Fatalf("err = %v, want ErrRPC kind", err)
	}
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Code != -32000 {
		t.Errorf("err = %v, want *RPCError with code -32000", err)
	}
}

func TestProviderNullResult(t *testing.T) {
	_, p := newFakeNode(t, nil) // every method answers null

	if _, err := p.BlockNumber(context.Background()); !errors.Is(err, ErrRPC) {
		t.Errorf("null quantity err = %v, want ErrRPC", err)
	}

	// A null receipt means the transaction is pending, not an error.
	rec, err := p.TransactionReceipt(context.Background(), "0xabcd")
	if err != nil {
		t.Fatalf("TransactionReceipt: %v", err)
	}
	if rec != nil {
		t.Errorf("pending receipt = %+v, want nil", rec)
	}
}

func TestProviderReceipt(t *testing.T) {
	_, p := newFakeNode(t, map[string]string{
		"eth_getTransactionReceipt": `{
			"transactionHash": "0x11deff473af1bba4c9ca9a9cd48247306b7a0f4bf5fefec0d7a8306ca40e79c0",
			"blockNumber": "0x6b1a2a",
			"gasUsed": "0x5208",
			"status": "0x1",
			"from": "0x1111111111111111111111111111111111111111",
			"to": "0x2222222222222222222222222222222222222222"
		}`,
	})

	rec, err := p.TransactionReceipt(context.Background(), "0x11deff")
	if err != nil {
		t.Fatalf("TransactionReceipt: %v", err)
	}
	if rec == nil {
		t.Fatalf("receipt is nil")
	}
	if !rec.Succeeded() {
		t.Errorf("Succeeded() = false for status 0x1")
	}
	if rec.GasUsed != "0x5208" {
		t.Errorf("GasUsed = %q, want 0x5208", rec.GasUsed)
	}
}

func TestProviderSendRawTransaction(t *testing.T) {
	_, p := newFakeNode(t, map[string]string{
		"eth_sendRawTransaction": `"0x33f2f792c2c0a1fc14637c1bbdb5e550e1fee0c07f1f5b2b6ec9528373b04b45"`,
	})

	hash, err := p.SendRawTransaction(context.Background(), "0xf86c0985")
	if err != nil {
		t.Fatalf("SendRawTransaction: %v", err)
	}
	if hash != "0x33f2f792c2c0a1fc14637c1bbdb5e550e1fee0c07f1f5b2b6ec9528373b04b45" {
		t.Errorf("hash = %q", hash)
	}
}

func TestProviderHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	p := NewWithClient(srv.URL, security.NewHTTPClientWithConfig(false))

	if _, err := p.BlockNumber(context.Background()); !errors.Is(err, ErrRPC) {
		t.Errorf("bad gateway err = %v, want ErrRPC", err)
	}
}

func TestNewProviderDefaults(t *testing.T) {
	p, err := New(NetworkMainnet, "", true)
	if err != nil {
		t.Fatalf("New mainnet: %v", err)
	}
	if p.URL() != DefaultRPCMainnet {
		t.Errorf("url = %q, want %q", p.URL(), DefaultRPCMainnet)
	}

	if _, err := New("regtest", "", true); !errors.Is(err, ErrUnknownNetwork) {
		t.Errorf("unknown network err = %v, want ErrUnknownNetwork", err)
	}

	// Enforced mode refuses a plain-http custom endpoint before any I/O.
	if _, err := New(NetworkTestnet, "http://localhost:4444", true); !errors.Is(err, security.ErrTransport) {
		t.Errorf("plain http err = %v, want security.ErrTransport", err)
	}
}

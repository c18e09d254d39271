// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rskvault/rskvault/internal/security"
)

// Transfer is one historical asset movement touching a wallet.
type Transfer struct {
	From      string
	To        string
	Asset     string
	Value     string
	Hash      string
	Timestamp time.Time
	Incoming  bool
}

// HistoryClient queries the Alchemy transfer index. The plain node RPC has
// no per-address history, so this needs a stored Alchemy key.
type HistoryClient struct {
	client *security.Client
	url    string
}

// NewHistoryClient builds a client for the named network using the given
// Alchemy key.
func NewHistoryClient(network string, key security.APIKey) (*HistoryClient, error) {
	url, err := AlchemyURL(network, key)
	if err != nil {
		return nil, err
	}
	return &HistoryClient{client: security.NewHTTPClient(), url: url}, nil
}

// NewHistoryClientWithURL binds directly to an endpoint. Test seam.
func NewHistoryClientWithURL(url string, client *security.Client) *HistoryClient {
	return &HistoryClient{client: client, url: url}
}

type assetTransferParams struct {
	FromBlock    string   `json:"fromBlock"`
	FromAddress  string   `json:"fromAddress,omitempty"`
	ToAddress    string   `json:"toAddress,omitempty"`
	Category     []string `json:"category"`
	WithMetadata bool     `json:"withMetadata"`
}

type assetTransfersResult struct {
	Transfers []rawTransfer `json:"transfers"`
}

type rawTransfer struct {
	From     string     `json:"from"`
	To       string     `json:"to"`
	Asset    string     `json:"asset"`
	Value    flexString `json:"value"`
	Hash     string     `json:"hash"`
	Metadata struct {
		BlockTimestamp string `json:"blockTimestamp"`
	} `json:"metadata"`
}

// flexString tolerates the index returning value as either a JSON string or
// a number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// AssetTransfers fetches external and token transfers touching address,
// both directions, newest first, at most limit entries (0 means all).
func (h *HistoryClient) AssetTransfers(ctx context.Context, address string, limit int) ([]Transfer, error) {
	outgoing, err := h.fetch(ctx, assetTransferParams{
		FromBlock:    "0x0",
		FromAddress:  address,
		Category:     []string{"external", "erc20"},
		WithMetadata: true,
	})
	if err != nil {
		return nil, err
	}
	incoming, err := h.fetch(ctx, assetTransferParams{
		FromBlock:    "0x0",
		ToAddress:    address,
		Category:     []string{"external", "erc20"},
		WithMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	merged := make([]Transfer, 0, len(outgoing)+len(incoming))
	for _, t := range outgoing {
		merged = append(merged, convertTransfer(t, false))
	}
	for _, t := range incoming {
		merged = append(merged, convertTransfer(t, true))
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func (h *HistoryClient) fetch(ctx context.Context, params assetTransferParams) ([]rawTransfer, error) {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "alchemy_getAssetTransfers",
		Params:  []assetTransferParams{params},
	}

	resp, err := h.client.PostJSON(ctx, h.url, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w: transfer index returned status %s", ErrRPC, resp.Status)
	}

	var decoded struct {
		Result *assetTransfersResult `json:"result"`
		Error  *RPCError             `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode transfer response: %v", ErrRPC, err)
	}
	if decoded.Error != nil {
		return nil, decoded.Error
	}
	if decoded.Result == nil {
		return nil, nil
	}
	return decoded.Result.Transfers, nil
}

func convertTransfer(raw rawTransfer, incoming bool) Transfer {
	t := Transfer{
		From:     raw.From,
		To:       raw.To,
		Asset:    raw.Asset,
		Value:    string(raw.Value),
		Hash:     raw.Hash,
		Incoming: incoming,
	}
	if t.Asset == "" {
		t.Asset = "RBTC"
	}
	if ts, err := time.Parse(time.RFC3339, raw.Metadata.BlockTimestamp); err == nil {
		t.Timestamp = ts
	}
	return t
}

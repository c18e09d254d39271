// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"context"
	"fmt"
	"os"

	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/provider"
	"github.com/rskvault/rskvault/internal/security"
	"github.com/rskvault/rskvault/internal/wallet"
)

// CheckStatus classifies a doctor check result.
type CheckStatus int

const (
	StatusOK CheckStatus = iota
	StatusWarn
	StatusFail
)

// String returns the status label used in doctor output.
func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarn:
		return "warn"
	default:
		return "fail"
	}
}

// CheckResult is one line of doctor output.
type CheckResult struct {
	Name   string
	Status CheckStatus
	Detail string
}

// Pinger covers the store connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ChainReader covers the RPC reachability check.
type ChainReader interface {
	ChainID(ctx context.Context) (uint64, error)
}

// KeyLookup covers the provider key presence check.
type KeyLookup interface {
	GetAPIKey(provider, network string) (*model.APIKeyRecord, error)
}

// DoctorDeps carries the live handles the doctor probes. Nil fields turn
// the corresponding check into a failure or a warning rather than a panic.
type DoctorDeps struct {
	ConfigFile string
	Store      Pinger
	Keys       KeyLookup
	Chain      ChainReader
}

// RunDoctor runs every health check and returns the results in display
// order. It never aborts early; each check reports independently.
func RunDoctor(ctx context.Context, cfg Config, deps DoctorDeps) []CheckResult {
	return []CheckResult{
		checkConfigFile(deps.ConfigFile),
		checkWalletFile(cfg.Wallet.File),
		checkDatabase(ctx, cfg, deps.Store),
		checkTLS(cfg),
		checkRPC(ctx, cfg, deps.Chain),
		checkAPIKey(cfg, deps.Keys),
	}
}

func checkConfigFile(path string) CheckResult {
	r := CheckResult{Name: "config file"}
	if path == "" {
		r.Status = StatusWarn
		r.Detail = "no config file found, defaults in use"
		return r
	}
	if _, err := os.Stat(path); err != nil {
		r.Status = StatusFail
		r.Detail = fmt.Sprintf("%s: %v", path, err)
		return r
	}
	r.Status = StatusOK
	r.Detail = path
	return r
}

func checkWalletFile(path string) CheckResult {
	r := CheckResult{Name: "wallet file"}
	if path == "" {
		r.Status = StatusWarn
		r.Detail = "no wallet file configured"
		return r
	}
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		r.Status = StatusWarn
		r.Detail = "not created yet, run 'rskvault wallet create'"
		return r
	}
	if err != nil {
		r.Status = StatusFail
		r.Detail = err.Error()
		return r
	}

	data, err := wallet.NewKeystore(path).Load()
	if err != nil {
		r.Status = StatusFail
		r.Detail = fmt.Sprintf("unreadable: %v", err)
		return r
	}

	if RuntimeOS != "windows" {
		if perm := fi.Mode().Perm(); perm&0o077 != 0 {
			r.Status = StatusWarn
			r.Detail = fmt.Sprintf("permissions %04o are wider than 0600", perm)
			return r
		}
	}

	r.Status = StatusOK
	r.Detail = fmt.Sprintf("%d wallet(s)", len(data.Wallets))
	return r
}

func checkDatabase(ctx context.Context, cfg Config, store Pinger) CheckResult {
	r := CheckResult{Name: "database"}
	if store == nil {
		r.Status = StatusFail
		r.Detail = "store not initialized"
		return r
	}
	if err := store.Ping(ctx); err != nil {
		r.Status = StatusFail
		r.Detail = fmt.Sprintf("%s unreachable: %v", cfg.Database.Type, err)
		return r
	}
	r.Status = StatusOK
	r.Detail = cfg.Database.Type
	return r
}

func checkTLS(cfg Config) CheckResult {
	r := CheckResult{Name: "tls enforcement"}
	if !cfg.RPC.EnforceTLS {
		r.Status = StatusWarn
		r.Detail = "disabled, plaintext RPC endpoints are accepted"
		return r
	}
	url := cfg.RPC.URL
	if url == "" {
		if def, err := provider.DefaultRPCURL(cfg.Network); err == nil {
			url = def
		}
	}
	if url != "" {
		if err := security.NewHTTPClientWithConfig(true).ValidateURL(url); err != nil {
			r.Status = StatusFail
			r.Detail = fmt.Sprintf("configured RPC URL rejected: %v", err)
			return r
		}
	}
	r.Status = StatusOK
	r.Detail = "enabled"
	return r
}

func checkRPC(ctx context.Context, cfg Config, chain ChainReader) CheckResult {
	r := CheckResult{Name: "rpc endpoint"}
	if chain == nil {
		r.Status = StatusFail
		r.Detail = "no provider available"
		return r
	}
	want, err := provider.ChainID(cfg.Network)
	if err != nil {
		r.Status = StatusFail
		r.Detail = err.Error()
		return r
	}
	got, err := chain.ChainID(ctx)
	if err != nil {
		r.Status = StatusFail
		r.Detail = fmt.Sprintf("unreachable: %v", err)
		return r
	}
	if got != want {
		r.Status = StatusFail
		r.Detail = fmt.Sprintf("node reports chain id %d, %s expects %d", got, cfg.Network, want)
		return r
	}
	r.Status = StatusOK
	r.Detail = fmt.Sprintf("chain id %d", got)
	return r
}

func checkAPIKey(cfg Config, keys KeyLookup) CheckResult {
	r := CheckResult{Name: "alchemy api key"}
	if keys == nil {
		r.Status = StatusWarn
		r.Detail = "store not initialized"
		return r
	}
	rec, err := keys.GetAPIKey("alchemy", cfg.Network)
	if err != nil {
		r.Status = StatusFail
		r.Detail = err.Error()
		return r
	}
	if rec == nil {
		r.Status = StatusWarn
		r.Detail = "not stored, history queries are disabled"
		return r
	}
	r.Status = StatusOK
	r.Detail = security.APIKeyFromSecret(rec.Key).Masked()
	return r
}

// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package provider

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/rskvault/rskvault/internal/security"
)

// ErrRPC is the kind for failures the node reports or responses that do not
// decode. Transport failures keep their security.ErrTransport kind.
var ErrRPC = errors.New("rpc call failed")

// RPCError is a JSON-RPC error object as returned by the node. Its message
// is sanitized at decode time, before it can reach any sink.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, security.Sanitize(e.Message))
}

func (e *RPCError) Unwrap() error { return ErrRPC }

// EncodeQuantity renders a non-negative integer as a JSON-RPC quantity:
// 0x-prefixed, minimal digits, "0x0" for zero and nil.
func EncodeQuantity(v *big.Int) string {
	if v == nil || v.Sign() == 0 {
		return "0x0"
	}
	return "0x" + v.Text(16)
}

// EncodeUint64 renders v as a JSON-RPC quantity.
func EncodeUint64(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}

// DecodeQuantity parses a 0x-prefixed hex quantity.
func DecodeQuantity(s string) (*big.Int, error) {
	body, ok := strings.CutPrefix(s, "0x")
	if !ok || body == "" {
		return nil, fmt.Errorf("%w: malformed quantity %q", ErrRPC, s)
	}
	v, ok := new(big.Int).SetString(body, 16)
	if !ok {
		return nil, fmt.Errorf("%w: malformed quantity %q", ErrRPC, s)
	}
	return v, nil
}

// DecodeUint64 parses a 0x-prefixed hex quantity that must fit in 64 bits.
func DecodeUint64(s string) (uint64, error) {
	body, ok := strings.CutPrefix(s, "0x")
	if !ok || body == "" {
		return 0, fmt.Errorf("%w: malformed quantity %q", ErrRPC, s)
	}
	v, err := strconv.ParseUint(body, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed quantity %q", ErrRPC, s)
	}
	return v, nil
}

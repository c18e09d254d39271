// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Reference transaction from the chain id 1 replay protection rollout,
// reproducible by any RFC 6979 signer.
func eip155ReferenceTx() *LegacyTx {
	return &LegacyTx{
		Nonce:    9,
		GasPrice: big.NewInt(20000000000),
		Gas:      21000,
		To:       "0x3535353535353535353535353535353535353535",
		Value:    new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil),
		ChainID:  1,
	}
}

func TestLegacyTxSigHash(t *testing.T) {
	sighash, err := eip155ReferenceTx().SigHash()
	if err != nil {
		t.Fatalf("SigHash: %v", err)
	}
	const want = "daf5a779ae972f972197303d7b574746c7ef83eadac0f2791ad23db92e4c8e53"
	if got := hex.EncodeToString(sighash); got != want {
		t.Errorf("sighash = %s, want %s", got, want)
	}
}

func TestSignTxReferenceVector(t *testing.T) {
	key, err := FromPrivateKeyHex("4646464646464646464646464646464646464646464646464646464646464646")
	if err != nil {
		t.Fatalf("FromPrivateKeyHex: %v", err)
	}
	defer key.Zero()

	signed, err := key.SignTx(eip155ReferenceTx())
	if err != nil {
		t.Fatalf("SignTx: %v", err)
	}

	if got := signed.V.Uint64(); got != 37 {
		t.Errorf("v = %d, want 37", got)
	}
	const wantRaw = "0xf86c098504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83"
	if got := signed.RawHex(); got != wantRaw {
		t.Errorf("raw tx = %s\nwant %s", got, wantRaw)
	}
}

func TestSignTxDeterministic(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer key.Zero()

	tx := &LegacyTx{
		Nonce:    3,
		GasPrice: big.NewInt(65164000),
		Gas:      21000,
		To:       "0x3535353535353535353535353535353535353535",
		Value:    big.NewInt(1),
		ChainID:  30,
	}

	first, err := key.SignTx(tx)
	if err != nil {
		t.Fatalf("first SignTx: %v", err)
	}
	second, err := key.SignTx(tx)
	if err != nil {
		t.Fatalf("second SignTx: %v", err)
	}
	if first.RawHex() != second.RawHex() {
		t.Errorf("signing is not deterministic")
	}
	if first.Hash != second.Hash {
		t.Errorf("hash differs between identical signings")
	}
}

func TestSignTxRecoversToSender(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer key.Zero()

	tx := &LegacyTx{
		Nonce:    0,
		GasPrice: big.NewInt(59240000),
		Gas:      21000,
		To:       "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		Value:    big.NewInt(1000),
		ChainID:  31,
	}

	signed, err := key.SignTx(tx)
	if err != nil {
		t.Fatalf("SignTx: %v", err)
	}

	recid := signed.V.Uint64() - tx.ChainID*2 - 35
	if recid > 1 {
		t.Fatalf("v = %v does not fold back to a recovery id", signed.V)
	}

	compact := make([]byte, 65)
	compact[0] = byte(27 + recid)
	signed.R.FillBytes(compact[1:33])
	signed.S.FillBytes(compact[33:65])

	sighash, err := tx.SigHash()
	if err != nil {
		t.Fatalf("SigHash: %v", err)
	}
	pub, _, err := ecdsa.RecoverCompact(compact, sighash)
	if err != nil {
		t.Fatalf("RecoverCompact: %v", err)
	}
	if got := pubkeyToAddress(pub.SerializeUncompressed()); got != key.Address() {
		t.Errorf("recovered sender %s, want %s", got, key.Address())
	}
}

func TestSignTxRejectsBadRecipient(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer key.Zero()

	tx := &LegacyTx{To: "35353535", GasPrice: big.NewInt(1), Gas: 21000, ChainID: 30}
	if _, err := key.SignTx(tx); !errors.Is(err, ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestSignTxContractCreation(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer key.Zero()

	tx := &LegacyTx{
		GasPrice: big.NewInt(60000000),
		Gas:      400000,
		Data:     []byte{0x60, 0x80, 0x60, 0x40},
		ChainID:  30,
	}
	signed, err := key.SignTx(tx)
	if err != nil {
		t.Fatalf("SignTx: %v", err)
	}
	if v := signed.V.Uint64(); v != 95 && v != 96 {
		t.Errorf("v = %d, want 95 or 96 for chain 30", v)
	}
	if len(signed.Raw) == 0 {
		t.Errorf("empty raw transaction")
	}
}

// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/scrypt"

	"github.com/rskvault/rskvault/internal/security"
)

// scrypt work factors. These match the scrypt recommended parameters the
// wallet format was created with; changing them invalidates every stored
// record, so they are constants rather than configuration.
const (
	scryptN = 1 << 17
	scryptR = 8
	scryptP = 1

	keyLen    = 32
	saltLen   = 16
	ivLen     = 16
	blockSize = 16
)

// deriveKey turns a password and salt into the AES-256 key. The caller owns
// zeroing the returned slice.
func deriveKey(password []byte, salt []byte) ([]byte, error) {
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return key, nil
}

// EncryptPrivateKey seals a private key under a password. It draws a fresh
// 16-byte salt and IV from crypto/rand on every call, derives the AES-256
// key via scrypt, pads the plaintext PKCS#7-style and encrypts in CBC mode.
// The three blobs are returned independently; the persisted record encodes
// each on its own.
//
// A plaintext already aligned to the block size still receives a full
// padding block, so decryption can always validate and strip padding.
func EncryptPrivateKey(privateKey []byte, password security.Password) (ciphertext, iv, salt []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err = rand.Read(salt); err != nil {
		return nil, nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	iv = make([]byte, ivLen)
	if _, err = rand.Read(iv); err != nil {
		return nil, nil, nil, fmt.Errorf("generate iv: %w", err)
	}

	var key []byte
	err = password.Use(func(pw []byte) error {
		var derr error
		key, derr = deriveKey(pw, salt)
		return derr
	})
	if err != nil {
		return nil, nil, nil, err
	}
	defer zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	padded := pad(privateKey)
	defer zero(padded)
	ciphertext = make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return ciphertext, iv, salt, nil
}

// DecryptPrivateKey reverses EncryptPrivateKey given the stored blobs and a
// freshly supplied password. Malformed input sizes and bad padding both
// surface as ErrIntegrity: the caller cannot tell a wrong password from a
// corrupted record, and no partial plaintext ever escapes.
//
// The returned slice is the caller's to zero; wrap it in a Secret or clear
// it as soon as the key has been used.
func DecryptPrivateKey(ciphertext, iv, salt []byte, password security.Password) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext not block aligned", ErrIntegrity)
	}
	if len(iv) != ivLen {
		return nil, fmt.Errorf("%w: bad iv length", ErrIntegrity)
	}
	if len(salt) != saltLen {
		return nil, fmt.Errorf("%w: bad salt length", ErrIntegrity)
	}

	var key []byte
	err := password.Use(func(pw []byte) error {
		var derr error
		key, derr = deriveKey(pw, salt)
		return derr
	})
	if err != nil {
		return nil, err
	}
	defer zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plain, err := unpad(padded)
	if err != nil {
		zero(padded)
		return nil, err
	}
	out := make([]byte, len(plain))
	copy(out, plain)
	zero(padded)
	return out, nil
}

// pad appends PKCS#7 padding: n bytes of value n, where n is 1..blockSize.
// Aligned input gets a full extra block.
func pad(in []byte) []byte {
	n := blockSize - len(in)%blockSize
	out := make([]byte, len(in)+n)
	copy(out, in)
	for i := len(in); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// unpad validates and strips PKCS#7 padding. The returned slice aliases the
// input.
func unpad(in []byte) ([]byte, error) {
	if len(in) == 0 || len(in)%blockSize != 0 {
		return nil, fmt.Errorf("%w: bad length", ErrIntegrity)
	}
	n := int(in[len(in)-1])
	if n == 0 || n > blockSize || n > len(in) {
		return nil, fmt.Errorf("%w: bad padding", ErrIntegrity)
	}
	for _, b := range in[len(in)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrIntegrity)
		}
	}
	return in[:len(in)-n], nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

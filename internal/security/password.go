// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import "bytes"

// Password is a Secret specialized for confirm-password flows. It inherits
// the container's redaction and clearing behavior and adds value equality.
type Password struct {
	Secret
}

// NewPassword takes ownership of a plaintext password.
func NewPassword(in string) Password { return Password{FromString(in)} }

// PasswordFromBytes copies raw prompt bytes into a Password so the caller
// can zero its own buffer immediately.
func PasswordFromBytes(in []byte) Password { return Password{FromBytes(in)} }

// Equal reports byte-wise equality of the current contents. Two cleared
// passwords compare equal. The comparison is not constant-time: this type
// confirms user re-entry, it does not authenticate against stored data.
func (p Password) Equal(other Password) bool {
	return bytes.Equal(p.Secret, other.Secret)
}

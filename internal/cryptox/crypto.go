// Package cryptox holds the hashing used to index identity tokens.
package cryptox

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// DigestSize is the length of an identity digest in bytes.
const DigestSize = blake2b.Size256

// IdentityDigest returns the BLAKE2b-256 digest of an identity token. The
// ledger indexes tokens by digest so a token can be bound to at most one
// account without using the raw token as a storage key.
func IdentityDigest(token []byte) [DigestSize]byte {
	return blake2b.Sum256(token)
}

// IdentityDigestHex is IdentityDigest in lowercase hex.
func IdentityDigestHex(token []byte) string {
	d := IdentityDigest(token)
	return hex.EncodeToString(d[:])
}

// Fingerprint is a short prefix of the digest, safe to put in logs.
func Fingerprint(token []byte) string {
	return IdentityDigestHex(token)[:12]
}

package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
)

// Passwords are stored as base64(salt || HMAC-SHA256(salt, password)): a
// random 32-byte salt keys an HMAC over the UTF-8 password bytes and the
// salt is prepended to the digest before encoding.  The verifier splits the
// stored blob, re-derives the digest with the embedded salt and compares in
// constant time.

const saltLen = 32

// HashPassword derives and encodes the stored form of a password using a
// freshly generated random salt.
func HashPassword(plain string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return encodePassword(plain, salt), nil
}

// VerifyPassword reports whether plain matches the stored hash.  Malformed
// stored values verify as false rather than erroring, so login failures
// stay indistinguishable from unknown accounts.
func VerifyPassword(stored, plain string) bool {
	blob, err := base64.StdEncoding.DecodeString(stored)
	if err != nil || len(blob) <= saltLen {
		return false
	}
	salt, digest := blob[:saltLen], blob[saltLen:]
	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(plain))
	return subtle.ConstantTimeCompare(mac.Sum(nil), digest) == 1
}

func encodePassword(plain string, salt []byte) string {
	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(plain))
	digest := mac.Sum(nil)
	blob := make([]byte, 0, len(salt)+len(digest))
	blob = append(blob, salt...)
	blob = append(blob, digest...)
	return base64.StdEncoding.EncodeToString(blob)
}

// ErrBadHash is returned by SplitStoredHash for values that cannot contain
// a salt and digest.
var ErrBadHash = errors.New("malformed password hash")

// SplitStoredHash exposes the salt and digest halves of a stored password
// value.  Used by tests and migration tooling.
func SplitStoredHash(stored string) (salt, digest []byte, err error) {
	blob, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return nil, nil, err
	}
	if len(blob) <= saltLen {
		return nil, nil, ErrBadHash
	}
	return blob[:saltLen], blob[saltLen:], nil
}

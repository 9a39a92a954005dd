// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// sign returns HMAC-SHA256(salt, value).
func sign(value, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(value))
	return h.Sum(nil)
}

// GenerateAdminKey derives the key that lets an election's creator close it.
// Deterministic, so nothing needs to be stored.
func GenerateAdminKey(electionID, salt string) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sign(electionID, salt)), "=")
}

// ValidateAdminKey checks adminKey in constant time.
func ValidateAdminKey(electionID, adminKey, salt string) error {
	expected := GenerateAdminKey(electionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateShareSlug creates the short public slug voters use to reach an
// election. It is the base62 form of the first 8 bytes of the HMAC.
func GenerateShareSlug(electionID, salt string) string {
	return base62Encode(sign(electionID, salt)[:8])
}

// base62Encode interprets up to 8 bytes as a big-endian integer
func base62Encode(data []byte) string {
	var buf [8]byte
	copy(buf[8-min(len(data), 8):], data)
	num := binary.BigEndian.Uint64(buf[:])

	if num == 0 {
		return "0"
	}

	var out []byte
	for ; num > 0; num /= 62 {
		out = append([]byte{base62Chars[num%62]}, out...)
	}
	return string(out)
}

// HashIP keeps a salted, truncated fingerprint of a voter's address so that
// ballots never store the raw IP.
func HashIP(ip, salt string) string {
	return hex.EncodeToString(sign(ip, salt)[:8])
}

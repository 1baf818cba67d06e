package services

import (
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCodec turns a plaintext password into a stored digest and checks
// candidates against stored digests. The user store only depends on this
// interface, so the encoding scheme can be swapped without touching the
// store contract.
type PasswordCodec interface {
	Encode(plain string) (string, error)
	Matches(plain, digest string) bool
}

const legacySalt = "junglepets_salt"

// Base64Codec reproduces the original storefront scheme: base64 of the
// plaintext with a fixed salt appended. This is a reversible encoding, NOT
// a hash — it exists only so digests stay comparable with data written by
// the original implementation. Do not use it for anything that needs real
// password security; use BcryptCodec instead.
type Base64Codec struct{}

func (Base64Codec) Encode(plain string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(plain + legacySalt)), nil
}

func (c Base64Codec) Matches(plain, digest string) bool {
	encoded, _ := c.Encode(plain)
	return encoded == digest
}

// BcryptCodec is the one-way salted alternative. Digests written with it
// are not compatible with Base64Codec data.
type BcryptCodec struct{}

func (BcryptCodec) Encode(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (BcryptCodec) Matches(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
